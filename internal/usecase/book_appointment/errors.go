package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных (пустые обязательные поля)
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrSlotTaken возвращается, когда слот (date, time) уже забронирован
	ErrSlotTaken = errors.New("book_appointment: slot is already taken")

	// ErrInternal возвращается при внутренних ошибках usecase (недоступность хранилища)
	ErrInternal = errors.New("book_appointment: internal error")
)
