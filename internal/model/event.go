package model

import "time"

// Event is a calendar entry with a start and end time. Its reminder is
// anchored on the start time.
type Event struct {
	// ID is the unique identifier for this event.
	ID string `json:"id" db:"id"`

	// Title is the human-readable summary of the event.
	Title string `json:"title" db:"title"`

	// Description is the optional long-form body text.
	Description string `json:"description" db:"description"`

	// StartDate is when the event begins.
	StartDate time.Time `json:"start_date" db:"start_date"`

	// EndDate is when the event ends.
	EndDate time.Time `json:"end_date" db:"end_date"`

	// Location is the optional venue.
	Location string `json:"location" db:"location"`

	// CreatedAt is when the event was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the event was last modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
