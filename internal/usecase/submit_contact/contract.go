package submit_contact

import "github.com/m04kA/SMC-WebsiteService/internal/domain"

// Notifier интерфейс асинхронных уведомлений администратора
type Notifier interface {
	ContactReceived(m domain.ContactMessage)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
