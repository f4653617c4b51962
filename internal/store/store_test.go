package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/store"
	"github.com/winimoid/organext/tests/testutil"
)

func strPtr(s string) *string { return &s }

func TestTaskCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	due := time.Now().Add(24 * time.Hour).UTC()
	created, err := s.CreateTask(ctx, model.Task{
		Title:       "Buy groceries",
		Description: "milk, eggs",
		DueDate:     &due,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries", got.Title)
	require.NotNil(t, got.DueDate)
	assert.WithinDuration(t, due, *got.DueDate, time.Second)

	got.Title = "Buy groceries and bread"
	got.IsCompleted = true
	require.NoError(t, s.UpdateTask(ctx, *got))

	updated, err := s.GetTaskByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy groceries and bread", updated.Title)
	assert.True(t, updated.IsCompleted)

	require.NoError(t, s.DeleteTask(ctx, created.ID))
	_, err = s.GetTaskByID(ctx, created.ID)
	assert.Error(t, err)
}

func TestTaskValidationAndNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTask(ctx, model.Task{Title: "   "})
	assert.Error(t, err, "blank titles are rejected")

	err = s.UpdateTask(ctx, model.Task{ID: "missing", Title: "x"})
	assert.Error(t, err)

	err = s.DeleteTask(ctx, "missing")
	assert.Error(t, err)
}

func TestGetTasksFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	soon := time.Now().Add(time.Hour).UTC()
	later := time.Now().Add(72 * time.Hour).UTC()

	_, err := s.CreateTask(ctx, model.Task{Title: "Write report", DueDate: &soon})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, model.Task{Title: "Plan trip", Description: "book hotel", DueDate: &later})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, model.Task{Title: "Old chore", IsCompleted: true})
	require.NoError(t, err)

	open, err := s.GetTasks(ctx, store.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, open, 2, "completed tasks are excluded by default")

	all, err := s.GetTasks(ctx, store.TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byQuery, err := s.GetTasks(ctx, store.TaskFilter{Query: strPtr("hotel")})
	require.NoError(t, err)
	require.Len(t, byQuery, 1, "query matches descriptions too")
	assert.Equal(t, "Plan trip", byQuery[0].Title)

	cutoff := time.Now().Add(24 * time.Hour)
	dueSoon, err := s.GetTasks(ctx, store.TaskFilter{DueBefore: &cutoff})
	require.NoError(t, err)
	require.Len(t, dueSoon, 1)
	assert.Equal(t, "Write report", dueSoon[0].Title)

	limited, err := s.GetTasks(ctx, store.TaskFilter{IncludeCompleted: true, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestGetRemindableTasks(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	due := time.Now().Add(time.Hour).UTC()
	_, err := s.CreateTask(ctx, model.Task{Title: "Open with due date", DueDate: &due})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, model.Task{Title: "Open without due date"})
	require.NoError(t, err)
	_, err = s.CreateTask(ctx, model.Task{Title: "Completed", DueDate: &due, IsCompleted: true})
	require.NoError(t, err)

	remindable, err := s.GetRemindableTasks(ctx)
	require.NoError(t, err)
	require.Len(t, remindable, 1)
	assert.Equal(t, "Open with due date", remindable[0].Title)
}

func TestEventCRUDAndValidation(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	start := time.Now().Add(time.Hour).UTC()
	created, err := s.CreateEvent(ctx, model.Event{
		Title:     "Team sync",
		StartDate: start,
		EndDate:   start.Add(30 * time.Minute),
		Location:  "Room 2",
	})
	require.NoError(t, err)

	got, err := s.GetEventByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Room 2", got.Location)

	_, err = s.CreateEvent(ctx, model.Event{
		Title:     "Backwards",
		StartDate: start,
		EndDate:   start.Add(-time.Hour),
	})
	assert.Error(t, err, "events must not end before they start")

	require.NoError(t, s.DeleteEvent(ctx, created.ID))
	events, err := s.GetEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestAppointmentCRUD(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	at := time.Now().Add(2 * time.Hour).UTC()
	created, err := s.CreateAppointment(ctx, model.Appointment{
		Title:   "Dentist",
		Date:    at,
		Contact: "Dr. Mercier",
	})
	require.NoError(t, err)

	got, err := s.GetAppointmentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Mercier", got.Contact)
	assert.WithinDuration(t, at, got.Date, time.Second)

	got.Notes = "bring insurance card"
	require.NoError(t, s.UpdateAppointment(ctx, *got))

	updated, err := s.GetAppointmentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "bring insurance card", updated.Notes)

	require.NoError(t, s.DeleteAppointment(ctx, created.ID))
	appts, err := s.GetAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, appts)
}

func TestSettings(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	val, err := s.GetSetting(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, val, "missing settings read as empty, not as an error")

	require.NoError(t, s.SetSetting(ctx, "locale", "fr"))
	require.NoError(t, s.SetSetting(ctx, "locale", "en"))

	val, err = s.GetSetting(ctx, "locale")
	require.NoError(t, err)
	assert.Equal(t, "en", val)
}

func TestConversations(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	conv, err := s.CreateConversation(ctx, model.Conversation{Model: "claude-sonnet-4-5-20250929"})
	require.NoError(t, err)
	assert.Equal(t, "New conversation", conv.Title, "blank titles get a default")

	_, err = s.AddChatMessage(ctx, model.ChatMessage{
		ConversationID: conv.ID,
		Sender:         model.SenderUser,
		Text:           "what's due today?",
	})
	require.NoError(t, err)
	_, err = s.AddChatMessage(ctx, model.ChatMessage{
		ConversationID: conv.ID,
		Sender:         model.SenderAssistant,
		Text:           "Two tasks are due today.",
	})
	require.NoError(t, err)

	msgs, err := s.GetChatMessages(ctx, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, model.SenderUser, msgs[0].Sender)

	require.NoError(t, s.DeleteConversation(ctx, conv.ID))
	msgs, err = s.GetChatMessages(ctx, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs, "deleting a conversation cascades to its messages")
}

func TestResetAllPreservesSettings(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTask(ctx, model.Task{Title: "Doomed"})
	require.NoError(t, err)
	start := time.Now().Add(time.Hour).UTC()
	_, err = s.CreateEvent(ctx, model.Event{Title: "Doomed", StartDate: start, EndDate: start.Add(time.Hour)})
	require.NoError(t, err)
	_, err = s.CreateAppointment(ctx, model.Appointment{Title: "Doomed", Date: start})
	require.NoError(t, err)
	conv, err := s.CreateConversation(ctx, model.Conversation{Title: "Doomed"})
	require.NoError(t, err)
	_, err = s.AddChatMessage(ctx, model.ChatMessage{ConversationID: conv.ID, Sender: model.SenderUser, Text: "hi"})
	require.NoError(t, err)
	require.NoError(t, s.SetSetting(ctx, "locale", "fr"))

	require.NoError(t, s.ResetAll(ctx))

	tasks, err := s.GetTasks(ctx, store.TaskFilter{IncludeCompleted: true})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	events, err := s.GetEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	appts, err := s.GetAppointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, appts)

	convs, err := s.GetConversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)

	locale, err := s.GetSetting(ctx, "locale")
	require.NoError(t, err)
	assert.Equal(t, "fr", locale, "settings survive a reset")
}
