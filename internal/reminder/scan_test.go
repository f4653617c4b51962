package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/internal/notify"
	"github.com/winimoid/organext/internal/reminder"
	"github.com/winimoid/organext/internal/store"
	"github.com/winimoid/organext/tests/testutil"
)

func newTestScanner(t *testing.T, backend notify.Backend) (*reminder.Scanner, *store.SQLiteStore) {
	t.Helper()

	st := testutil.NewTestStore(t)
	notifications := notify.NewStore(backend, nil)
	scanner := reminder.NewScanner(st, notifications, reminder.TemplatesFor("en"), reminder.DefaultLookahead, nil)
	return scanner, st
}

func TestScannerSchedulesRecordsInsideWindow(t *testing.T) {
	backend := newFakeBackend()
	scanner, st := newTestScanner(t, backend)
	ctx := context.Background()

	due := time.Now().Add(4 * time.Hour)
	task, err := st.CreateTask(ctx, model.Task{Title: "Inside window", DueDate: &due})
	require.NoError(t, err)

	start := time.Now().Add(6 * time.Hour)
	event, err := st.CreateEvent(ctx, model.Event{
		Title: "Inside window", StartDate: start, EndDate: start.Add(time.Hour),
	})
	require.NoError(t, err)

	appt, err := st.CreateAppointment(ctx, model.Appointment{
		Title: "Inside window", Date: time.Now().Add(8 * time.Hour),
	})
	require.NoError(t, err)

	result, err := scanner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Scheduled)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 3, backend.count())

	_, ok := backend.get("task-" + task.ID)
	assert.True(t, ok)
	_, ok = backend.get("event-" + event.ID)
	assert.True(t, ok)
	_, ok = backend.get("appt-" + appt.ID)
	assert.True(t, ok)
}

func TestScannerExcludesRecordsBeyondWindow(t *testing.T) {
	backend := newFakeBackend()
	scanner, st := newTestScanner(t, backend)
	ctx := context.Background()

	farOut := time.Now().Add(48 * time.Hour)
	_, err := st.CreateTask(ctx, model.Task{Title: "Too far out", DueDate: &farOut})
	require.NoError(t, err)

	result, err := scanner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Scheduled)
	assert.Equal(t, 0, backend.count(), "records beyond the look-ahead window are left for a later pass")
}

func TestScannerExcludesCompletedAndPastRecords(t *testing.T) {
	backend := newFakeBackend()
	scanner, st := newTestScanner(t, backend)
	ctx := context.Background()

	due := time.Now().Add(2 * time.Hour)
	_, err := st.CreateTask(ctx, model.Task{Title: "Done already", DueDate: &due, IsCompleted: true})
	require.NoError(t, err)

	past := time.Now().Add(-2 * time.Hour)
	_, err = st.CreateAppointment(ctx, model.Appointment{Title: "Missed", Date: past})
	require.NoError(t, err)

	result, err := scanner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Scheduled)
	assert.Equal(t, 0, backend.count())
}

func TestScannerIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	scanner, st := newTestScanner(t, backend)
	ctx := context.Background()

	due := time.Now().Add(3 * time.Hour)
	task, err := st.CreateTask(ctx, model.Task{Title: "Stable", DueDate: &due})
	require.NoError(t, err)

	first, err := scanner.Run(ctx)
	require.NoError(t, err)
	second, err := scanner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Scheduled, second.Scheduled)
	assert.Equal(t, 1, backend.count(), "repeated passes converge on the same registry state")

	req, _ := backend.get("task-" + task.ID)
	assert.WithinDuration(t, due, req.FireAt, time.Second)
}

func TestScannerWritesToFileRegistry(t *testing.T) {
	registry, err := notify.OpenRegistry(t.TempDir() + "/pending.json")
	require.NoError(t, err)

	st := testutil.NewTestStore(t)
	scanner := reminder.NewScanner(st, notify.NewStore(registry, nil), reminder.TemplatesFor("en"), 0, nil)
	ctx := context.Background()

	due := time.Now().Add(5 * time.Hour)
	_, err = st.CreateTask(ctx, model.Task{Title: "Persisted", DueDate: &due})
	require.NoError(t, err)

	_, err = scanner.Run(ctx)
	require.NoError(t, err)

	assert.Len(t, registry.Pending(), 1)
}
