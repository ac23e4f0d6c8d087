package mail

import "errors"

var (
	// ErrSendFailed возвращается при ошибке доставки письма (сеть, аутентификация, rate limit)
	ErrSendFailed = errors.New("mail: failed to send message")

	// ErrInvalidMessage возвращается, когда письмо не может быть отправлено (нет получателя)
	ErrInvalidMessage = errors.New("mail: invalid message")
)
