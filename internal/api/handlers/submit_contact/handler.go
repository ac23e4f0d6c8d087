package submit_contact

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WebsiteService/internal/api/handlers"
	submitContact "github.com/m04kA/SMC-WebsiteService/internal/usecase/submit_contact"
	"github.com/m04kA/SMC-WebsiteService/internal/view"
)

const msgMissingFields = "Please fill in your name, email and message."

type Handler struct {
	useCase  SubmitContactUseCase
	renderer handlers.Renderer
	logger   Logger
}

func NewHandler(useCase SubmitContactUseCase, renderer handlers.Renderer, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleForm GET /contact
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusOK, view.ViewContact, FormData{}); err != nil {
		h.logger.Error("GET /contact - Failed to render form: %v", err)
	}
}

// Handle POST /contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /contact - Failed to parse form: %v", err)
		handlers.RenderErrorView(w, h.renderer, h.logger, http.StatusBadRequest, view.ViewError, handlers.MsgInternalError)
		return
	}

	req := &submitContact.Request{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Message: r.PostFormValue("message"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, submitContact.ErrInvalidInput):
			h.logger.Warn("POST /contact - Invalid input: %v", err)
			h.renderForm(w, http.StatusBadRequest, FormData{
				Name:    req.Name,
				Email:   req.Email,
				Message: req.Message,
				Error:   msgMissingFields,
			})

		default:
			h.logger.Error("POST /contact - Failed to submit contact: %v", err)
			handlers.RenderErrorView(w, h.renderer, h.logger, http.StatusInternalServerError, view.ViewError, handlers.MsgInternalError)
		}
		return
	}

	h.logger.Info("POST /contact - Message accepted: name=%q", result.Name)
	if err := h.renderer.Render(w, http.StatusOK, view.ViewThankYou, ThankYouData{Name: result.Name}); err != nil {
		h.logger.Error("POST /contact - Failed to render thank you view: %v", err)
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, data FormData) {
	if err := h.renderer.Render(w, status, view.ViewContact, data); err != nil {
		h.logger.Error("POST /contact - Failed to re-render form: %v", err)
	}
}
