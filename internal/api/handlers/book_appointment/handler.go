package book_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WebsiteService/internal/api/handlers"
	bookAppointment "github.com/m04kA/SMC-WebsiteService/internal/usecase/book_appointment"
	"github.com/m04kA/SMC-WebsiteService/internal/view"
)

const (
	msgMissingFields = "Please fill in all the fields."
	msgSlotTaken     = "This time slot is already taken. Please pick another date or time."
)

type Handler struct {
	useCase  BookAppointmentUseCase
	renderer handlers.Renderer
	logger   Logger
}

func NewHandler(useCase BookAppointmentUseCase, renderer handlers.Renderer, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		renderer: renderer,
		logger:   logger,
	}
}

// HandleForm GET /appointment
func (h *Handler) HandleForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusOK, view.ViewAppointment, FormData{}); err != nil {
		h.logger.Error("GET /appointment - Failed to render form: %v", err)
	}
}

// Handle POST /appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Warn("POST /appointment - Failed to parse form: %v", err)
		handlers.RenderErrorView(w, h.renderer, h.logger, http.StatusBadRequest, view.ViewError, handlers.MsgInternalError)
		return
	}

	req := &bookAppointment.Request{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Date:    r.PostFormValue("date"),
		Time:    r.PostFormValue("time"),
		Service: r.PostFormValue("service"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointment - Slot taken: date=%q, time=%q", req.Date, req.Time)
			h.renderForm(w, http.StatusConflict, FormData{
				Name:    req.Name,
				Email:   req.Email,
				Date:    req.Date,
				Time:    req.Time,
				Service: req.Service,
				Error:   msgSlotTaken,
			})

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointment - Invalid input: %v", err)
			h.renderForm(w, http.StatusBadRequest, FormData{
				Name:    req.Name,
				Email:   req.Email,
				Date:    req.Date,
				Time:    req.Time,
				Service: req.Service,
				Error:   msgMissingFields,
			})

		default:
			// Отказ хранилища — фатален для запроса: тихо потерять запись
			// хуже, чем показать ошибку
			h.logger.Error("POST /appointment - Failed to book appointment: date=%q, time=%q, error=%v",
				req.Date, req.Time, err)
			handlers.RenderErrorView(w, h.renderer, h.logger, http.StatusInternalServerError, view.ViewError, handlers.MsgInternalError)
		}
		return
	}

	h.logger.Info("POST /appointment - Appointment booked: id=%d, date=%q, time=%q",
		result.ID, result.Date, result.Time)
	confirm := ConfirmData{
		Name:    result.Name,
		Date:    result.Date,
		Time:    result.Time,
		Service: result.Service,
	}
	if err := h.renderer.Render(w, http.StatusOK, view.ViewAppointmentConfirm, confirm); err != nil {
		h.logger.Error("POST /appointment - Failed to render confirmation view: %v", err)
	}
}

func (h *Handler) renderForm(w http.ResponseWriter, status int, data FormData) {
	if err := h.renderer.Render(w, status, view.ViewAppointment, data); err != nil {
		h.logger.Error("POST /appointment - Failed to re-render form: %v", err)
	}
}
