package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"time"
)

// SMTPSender отправляет письма через SMTP (submission, STARTTLS + PLAIN auth).
// Без username аутентификация пропускается — режим локального релея (Mailpit).
type SMTPSender struct {
	host     string
	addr     string
	username string
	password string
	from     string
	timeout  time.Duration
}

// NewSMTPSender создает SMTP-отправителя.
// timeout ограничивает и установку соединения, и всю SMTP-сессию,
// чтобы зависший сервер не держал ресурсы бесконечно.
func NewSMTPSender(host string, port int, username, password, from string, timeout time.Duration) *SMTPSender {
	return &SMTPSender{
		host:     host,
		addr:     fmt.Sprintf("%s:%d", host, port),
		username: username,
		password: password,
		from:     from,
		timeout:  timeout,
	}
}

// Name возвращает имя транспорта (для логов и метрик)
func (s *SMTPSender) Name() string {
	return "smtp"
}

// Send отправляет письмо в рамках одной SMTP-сессии
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("%w: empty recipient", ErrInvalidMessage)
	}

	dialer := &net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSendFailed, s.addr, err)
	}

	// Дедлайн на всю сессию, а не только на установку соединения
	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		conn.Close()
		return fmt.Errorf("%w: set deadline: %v", ErrSendFailed, err)
	}

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("%w: smtp handshake: %v", ErrSendFailed, err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.host}); err != nil {
			return fmt.Errorf("%w: starttls: %v", ErrSendFailed, err)
		}
	}

	if s.username != "" {
		auth := smtp.PlainAuth("", s.username, s.password, s.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("%w: auth: %v", ErrSendFailed, err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("%w: mail from: %v", ErrSendFailed, err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("%w: rcpt to: %v", ErrSendFailed, err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%w: data: %v", ErrSendFailed, err)
	}
	if _, err := w.Write(buildMessage(s.from, msg)); err != nil {
		return fmt.Errorf("%w: write body: %v", ErrSendFailed, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: close body: %v", ErrSendFailed, err)
	}

	return client.Quit()
}
