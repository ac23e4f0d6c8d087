package submit_contact

// Request модель запроса с формы контактов
type Request struct {
	Name    string
	Email   string
	Message string
}

// Response модель подтверждения приема сообщения
type Response struct {
	Name string
}
