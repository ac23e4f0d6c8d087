package domain

// ContactMessage represents a submitted contact form.
// It is never persisted, only forwarded to the administrator.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}
