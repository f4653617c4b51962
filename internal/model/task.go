package model

import "time"

// Task is a user-created to-do item. A task with a due date carries a
// reminder anchored on that date; completed tasks never remind.
type Task struct {
	// ID is the unique identifier for this task.
	ID string `json:"id" db:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title" db:"title"`

	// Description is the optional long-form body text.
	Description string `json:"description" db:"description"`

	// DueDate is the optional deadline anchoring the task's reminder.
	DueDate *time.Time `json:"due_date,omitempty" db:"due_date"`

	// IsCompleted marks the task as done. Completed tasks are excluded
	// from reminder computation and from default list views.
	IsCompleted bool `json:"is_completed" db:"is_completed"`

	// CreatedAt is when the task was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the task was last modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
