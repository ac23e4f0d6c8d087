package notifier

import (
	"fmt"

	"github.com/m04kA/SMC-WebsiteService/internal/domain"
)

// Шаблоны писем администратору. Тексты фиксированные, на английском —
// это язык клиентского сайта.

func contactSubject(m domain.ContactMessage) string {
	return fmt.Sprintf("New Contact Form Submission from %s", m.Name)
}

func contactBody(m domain.ContactMessage) string {
	return fmt.Sprintf("Name: %s\nClient Email: %s\nMessage:\n%s", m.Name, m.Email, m.Message)
}

func appointmentSubject(a *domain.Appointment) string {
	return fmt.Sprintf("New Appointment Booking from %s", a.Name)
}

func appointmentBody(a *domain.Appointment) string {
	return fmt.Sprintf(
		"A new appointment has been booked.\n\nName: %s\nClient Email: %s\nService: %s\nDate: %s\nTime: %s\n",
		a.Name, a.Email, a.Service, a.Date, a.Time,
	)
}
