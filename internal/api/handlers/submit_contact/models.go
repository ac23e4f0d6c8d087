package submit_contact

// FormData данные формы контактов для шаблона.
// Error заполняется при повторном показе формы с сообщением об ошибке.
type FormData struct {
	Name    string
	Email   string
	Message string
	Error   string
}

// ThankYouData данные страницы подтверждения
type ThankYouData struct {
	Name string
}
