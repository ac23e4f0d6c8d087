package mail

import "fmt"

// Message письмо для отправки администратору
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

// buildMessage собирает минимальное RFC 5322 сообщение.
// Достаточно для SMTP-релеев и Mailpit в локальной разработке.
func buildMessage(from string, msg Message) []byte {
	headers := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n",
		from,
		msg.To,
		msg.Subject,
	)
	if msg.ReplyTo != "" {
		headers += fmt.Sprintf("Reply-To: %s\r\n", msg.ReplyTo)
	}
	return []byte(headers + "\r\n" + msg.Body + "\r\n")
}
