package store

import (
	"context"
	"time"

	"github.com/winimoid/organext/internal/model"
)

// TaskFilter controls filtering and pagination for task queries.
type TaskFilter struct {
	IncludeCompleted bool
	Query            *string    // search title + description
	DueBefore        *time.Time // only tasks due strictly before this instant
	Limit            int
	Offset           int
}

// Store defines the persistence interface for tasks, events, appointments,
// settings, and AI conversations. All list queries return rows ordered by
// creation time, descending.
type Store interface {
	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error
	GetTaskByID(ctx context.Context, id string) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)

	// GetRemindableTasks returns every open task that has a due date,
	// regardless of how far out it is. Used by the background rescan.
	GetRemindableTasks(ctx context.Context) ([]model.Task, error)

	// === Events ===

	CreateEvent(ctx context.Context, event model.Event) (model.Event, error)
	UpdateEvent(ctx context.Context, event model.Event) error
	DeleteEvent(ctx context.Context, id string) error
	GetEventByID(ctx context.Context, id string) (*model.Event, error)
	GetEvents(ctx context.Context) ([]model.Event, error)

	// === Appointments ===

	CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error)
	UpdateAppointment(ctx context.Context, appt model.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	GetAppointmentByID(ctx context.Context, id string) (*model.Appointment, error)
	GetAppointments(ctx context.Context) ([]model.Appointment, error)

	// === Settings ===

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// === Conversations ===

	CreateConversation(ctx context.Context, conv model.Conversation) (model.Conversation, error)
	GetConversations(ctx context.Context) ([]model.Conversation, error)
	DeleteConversation(ctx context.Context, id string) error
	AddChatMessage(ctx context.Context, msg model.ChatMessage) (model.ChatMessage, error)
	GetChatMessages(ctx context.Context, conversationID string) ([]model.ChatMessage, error)

	// === Maintenance ===

	// ResetAll deletes every record from the tasks, events, appointments,
	// and conversations tables. Settings are preserved.
	ResetAll(ctx context.Context) error
}
