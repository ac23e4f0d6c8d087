package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена представлений, известные рендереру
const (
	ViewIndex              = "index.html"
	ViewContact            = "contact.html"
	ViewThankYou           = "thank_you.html"
	ViewAppointment        = "appointment.html"
	ViewAppointmentConfirm = "appointment_confirm.html"
	ViewError              = "error.html"
)

// Renderer рендерит HTML-представления из встроенных шаблонов
type Renderer struct {
	templates *template.Template
}

// NewRenderer разбирает встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render пишет представление name с данными data и статусом status.
// Шаблон сначала рендерится в буфер, чтобы ошибка рендеринга
// не оставила клиенту полуотданную страницу.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("view: failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
