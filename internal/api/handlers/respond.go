package handlers

import "net/http"

// Renderer интерфейс рендеринга HTML-представлений
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MsgInternalError текст общей ошибки для пользователя.
// Детали остаются в логах.
const MsgInternalError = "We could not process your request. Please try again later."

// ErrorData данные для шаблона страницы ошибки
type ErrorData struct {
	Message string
}

// RenderErrorView отрисовывает страницу ошибки. Если не удалось даже это,
// отвечает plain text, чтобы клиент не остался без ответа.
func RenderErrorView(w http.ResponseWriter, renderer Renderer, logger Logger, status int, errorView string, message string) {
	if err := renderer.Render(w, status, errorView, ErrorData{Message: message}); err != nil {
		logger.Error("Failed to render error view: %v", err)
		http.Error(w, message, status)
	}
}
