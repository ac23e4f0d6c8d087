package book_appointment

import (
	"context"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetBySlot(ctx context.Context, date, timeOfDay string) (*domain.Appointment, error)
}

// Notifier интерфейс асинхронных уведомлений администратора
type Notifier interface {
	AppointmentBooked(a *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
