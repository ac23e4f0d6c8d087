package notifier

import (
	"context"

	"github.com/m04kA/SMC-WebsiteService/internal/infra/mail"
)

// MailSender интерфейс почтового транспорта (SMTP, SendGrid, noop)
type MailSender interface {
	Send(ctx context.Context, msg mail.Message) error
	Name() string
}

// Metrics интерфейс метрик доставки уведомлений
type Metrics interface {
	ObserveNotification(transport string, err error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
