package domain

// Business validation constants
const (
	MaxNameLength    = 200
	MaxEmailLength   = 320
	MaxServiceLength = 200
	MaxMessageLength = 5000

	// Максимальная длина токенов даты и времени формы.
	// Токены хранятся как есть, ограничение только защищает таблицу.
	MaxDateLength = 32
	MaxTimeLength = 32
)
