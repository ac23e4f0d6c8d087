package domain

import "time"

// Appointment represents a booked appointment slot.
// Date and Time are opaque string tokens taken from the form as-is:
// the slot identity is the raw (Date, Time) pair, without parsing
// or normalization.
type Appointment struct {
	ID      int64
	Name    string
	Email   string
	Date    string
	Time    string
	Service string

	CreatedAt time.Time
}
