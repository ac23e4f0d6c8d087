package book_appointment

import "time"

// Request модель запроса на бронирование слота.
// Date и Time — непрозрачные токены формы, передаются в хранилище как есть.
type Request struct {
	Name    string
	Email   string
	Date    string
	Time    string
	Service string
}

// Response модель ответа с созданной записью
type Response struct {
	ID      int64
	Name    string
	Email   string
	Date    string
	Time    string
	Service string

	CreatedAt time.Time
}
