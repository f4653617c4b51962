package model

import "time"

// Appointment is a point-in-time meeting with an optional contact.
// Its reminder is anchored on the appointment date.
type Appointment struct {
	// ID is the unique identifier for this appointment.
	ID string `json:"id" db:"id"`

	// Title is the human-readable summary of the appointment.
	Title string `json:"title" db:"title"`

	// Date is when the appointment takes place.
	Date time.Time `json:"date" db:"date"`

	// Contact is the optional person or organization the appointment
	// is with.
	Contact string `json:"contact" db:"contact"`

	// Notes is optional free-form text.
	Notes string `json:"notes" db:"notes"`

	// CreatedAt is when the appointment was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the appointment was last modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
