package send_test_email

import (
	"fmt"
	"net/http"
)

// Проверочный эндпоинт почтового транспорта: отправляет письмо
// администратору синхронно и возвращает результат как есть.

type Handler struct {
	service NotifierService
	logger  Logger
}

func NewHandler(service NotifierService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /test-email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if err := h.service.SendTest(r.Context()); err != nil {
		h.logger.Error("GET /test-email - Failed to send test email: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintf(w, "Failed to send test email: %v\n", err)
		return
	}

	h.logger.Info("GET /test-email - Test email sent successfully")
	fmt.Fprintln(w, "Test email sent successfully")
}
