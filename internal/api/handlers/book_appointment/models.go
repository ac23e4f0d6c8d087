package book_appointment

// FormData данные формы записи для шаблона.
// Error заполняется при повторном показе формы (занятый слот, пустые поля).
type FormData struct {
	Name    string
	Email   string
	Date    string
	Time    string
	Service string
	Error   string
}

// ConfirmData данные страницы подтверждения записи
type ConfirmData struct {
	Name    string
	Date    string
	Time    string
	Service string
}
