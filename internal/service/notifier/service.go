package notifier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
	"github.com/m04kA/SMC-WebsiteService/internal/infra/mail"
)

const (
	// DefaultQueueSize размер очереди уведомлений по умолчанию
	DefaultQueueSize = 64

	// DefaultSendTimeout ограничение на одну попытку доставки
	DefaultSendTimeout = 10 * time.Second
)

// Service асинхронный отправщик уведомлений администратору.
//
// Контракт: постановка уведомления в очередь никогда не блокирует
// HTTP-запрос и никогда не возвращает ошибку на путь запроса.
// Ошибка доставки логируется, считается в метриках и проглатывается —
// пользователь уже получил свой ответ. Повторов нет.
type Service struct {
	sender      MailSender
	adminEmail  string
	sendTimeout time.Duration
	queue       chan mail.Message
	logger      Logger
	metrics     Metrics // может быть nil, если метрики выключены
}

// Config настройки сервиса уведомлений
type Config struct {
	AdminEmail  string
	QueueSize   int
	SendTimeout time.Duration
}

// NewService создает сервис уведомлений. Доставку выполняет воркер,
// который нужно запустить отдельно через Run.
func NewService(sender MailSender, cfg Config, logger Logger, metrics Metrics) *Service {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = DefaultSendTimeout
	}

	return &Service{
		sender:      sender,
		adminEmail:  cfg.AdminEmail,
		sendTimeout: cfg.SendTimeout,
		queue:       make(chan mail.Message, cfg.QueueSize),
		logger:      logger,
		metrics:     metrics,
	}
}

// Run запускает воркер доставки. Блокирует до отмены контекста,
// после чего дорабатывает уже поставленные в очередь уведомления.
func (s *Service) Run(ctx context.Context) {
	s.logger.Info("Notifier: worker started (transport=%s, queue=%d, timeout=%s)",
		s.sender.Name(), cap(s.queue), s.sendTimeout)

	for {
		select {
		case msg := <-s.queue:
			s.deliver(msg)
		case <-ctx.Done():
			s.drain()
			s.logger.Info("Notifier: worker stopped")
			return
		}
	}
}

// drain доставляет оставшиеся в очереди уведомления при остановке
func (s *Service) drain() {
	for {
		select {
		case msg := <-s.queue:
			s.deliver(msg)
		default:
			return
		}
	}
}

// deliver выполняет одну попытку доставки с ограничением по времени
func (s *Service) deliver(msg mail.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
	defer cancel()

	err := s.sender.Send(ctx, msg)
	if s.metrics != nil {
		s.metrics.ObserveNotification(s.sender.Name(), err)
	}
	if err != nil {
		// Доставка не удалась, запрос уже отвечен. Логируем с контекстом
		// (тема письма) для ручного восстановления и идем дальше.
		s.logger.Error("Notifier: delivery failed (transport=%s, subject=%q): %v",
			s.sender.Name(), msg.Subject, err)
		return
	}

	s.logger.Info("Notifier: delivered (transport=%s, subject=%q)", s.sender.Name(), msg.Subject)
}

// enqueue ставит письмо в очередь. Не блокирует: при переполненной
// очереди уведомление отбрасывается с записью в лог.
func (s *Service) enqueue(msg mail.Message) {
	select {
	case s.queue <- msg:
	default:
		if s.metrics != nil {
			s.metrics.ObserveNotification(s.sender.Name(), ErrQueueFull)
		}
		s.logger.Error("Notifier: queue full, dropping notification (subject=%q)", msg.Subject)
	}
}

// ContactReceived ставит в очередь уведомление о новом сообщении с формы контактов
func (s *Service) ContactReceived(m domain.ContactMessage) {
	s.enqueue(mail.Message{
		To:      s.adminEmail,
		ReplyTo: m.Email,
		Subject: contactSubject(m),
		Body:    contactBody(m),
	})
}

// AppointmentBooked ставит в очередь уведомление о новой записи на прием
func (s *Service) AppointmentBooked(a *domain.Appointment) {
	s.enqueue(mail.Message{
		To:      s.adminEmail,
		ReplyTo: a.Email,
		Subject: appointmentSubject(a),
		Body:    appointmentBody(a),
	})
}

// SendTest синхронно отправляет тестовое письмо администратору.
// Используется эндпоинтом проверки почтового транспорта.
func (s *Service) SendTest(ctx context.Context) error {
	sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	err := s.sender.Send(sendCtx, mail.Message{
		To:      s.adminEmail,
		Subject: "Test Email from SMC-WebsiteService",
		Body:    "This is a test email sent by the website backend.",
	})
	if s.metrics != nil {
		s.metrics.ObserveNotification(s.sender.Name(), err)
	}
	return err
}
