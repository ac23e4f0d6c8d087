package submit_contact

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных (пустые обязательные поля)
var ErrInvalidInput = errors.New("submit_contact: invalid input data")
