package home

import (
	"net/http"

	"github.com/m04kA/SMC-WebsiteService/internal/api/handlers"
	"github.com/m04kA/SMC-WebsiteService/internal/view"
)

type Handler struct {
	renderer handlers.Renderer
	logger   handlers.Logger
}

func NewHandler(renderer handlers.Renderer, logger handlers.Logger) *Handler {
	return &Handler{
		renderer: renderer,
		logger:   logger,
	}
}

// Handle GET /
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusOK, view.ViewIndex, nil); err != nil {
		h.logger.Error("GET / - Failed to render index: %v", err)
	}
}
