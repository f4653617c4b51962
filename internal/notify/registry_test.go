package notify_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winimoid/organext/internal/notify"
)

func newTestRegistry(t *testing.T) (*notify.Registry, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pending.json")
	r, err := notify.OpenRegistry(path)
	require.NoError(t, err)
	return r, path
}

func TestRegistryScheduleReplacesByID(t *testing.T) {
	r, _ := newTestRegistry(t)

	first := notify.Request{ID: "task-1", Title: "old", FireAt: time.Now().Add(time.Hour)}
	require.NoError(t, r.Schedule(first))

	second := notify.Request{ID: "task-1", Title: "new", FireAt: time.Now().Add(2 * time.Hour)}
	require.NoError(t, r.Schedule(second))

	pending := r.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "new", pending[0].Title)
}

func TestRegistryCancelAbsentIsNoOp(t *testing.T) {
	r, _ := newTestRegistry(t)

	require.NoError(t, r.Cancel("never-scheduled"))
	assert.Empty(t, r.Pending())
}

func TestRegistryPersistsAcrossOpens(t *testing.T) {
	r, path := newTestRegistry(t)

	fireAt := time.Now().Add(time.Hour).Round(time.Second)
	require.NoError(t, r.Schedule(notify.Request{
		ID:      "appt-7",
		Title:   "Appointment Reminder",
		Message: "You have an appointment coming up.",
		FireAt:  fireAt,
		Meta:    map[string]string{"type": "appt", "id": "7"},
	}))

	reopened, err := notify.OpenRegistry(path)
	require.NoError(t, err)

	pending := reopened.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "appt-7", pending[0].ID)
	assert.True(t, fireAt.Equal(pending[0].FireAt))
	assert.Equal(t, "7", pending[0].Meta["id"])
}

func TestRegistryReloadPicksUpOtherWriters(t *testing.T) {
	r, path := newTestRegistry(t)

	// A second handle simulates the rescan process writing the same file.
	other, err := notify.OpenRegistry(path)
	require.NoError(t, err)
	require.NoError(t, other.Schedule(notify.Request{ID: "task-9", FireAt: time.Now().Add(time.Hour)}))

	assert.Empty(t, r.Pending())
	require.NoError(t, r.Reload())
	assert.Len(t, r.Pending(), 1)
}

func TestRegistryDueAndNextFireTime(t *testing.T) {
	r, _ := newTestRegistry(t)
	now := time.Now()

	require.NoError(t, r.Schedule(notify.Request{ID: "past", FireAt: now.Add(-time.Minute)}))
	require.NoError(t, r.Schedule(notify.Request{ID: "soon", FireAt: now.Add(time.Minute)}))
	require.NoError(t, r.Schedule(notify.Request{ID: "later", FireAt: now.Add(time.Hour)}))

	due := r.Due(now)
	require.Len(t, due, 1)
	assert.Equal(t, "past", due[0].ID)

	next, ok := r.NextFireTime()
	require.True(t, ok)
	assert.True(t, next.Equal(now.Add(-time.Minute)))
}

func TestRegistryNextFireTimeEmpty(t *testing.T) {
	r, _ := newTestRegistry(t)

	_, ok := r.NextFireTime()
	assert.False(t, ok)
}

func TestRegistryCancelAll(t *testing.T) {
	r, _ := newTestRegistry(t)

	require.NoError(t, r.Schedule(notify.Request{ID: "a", FireAt: time.Now().Add(time.Hour)}))
	require.NoError(t, r.Schedule(notify.Request{ID: "b", FireAt: time.Now().Add(time.Hour)}))
	require.NoError(t, r.CancelAll())
	assert.Empty(t, r.Pending())
}

func TestOpenRegistryMissingFileYieldsEmpty(t *testing.T) {
	r, err := notify.OpenRegistry(filepath.Join(t.TempDir(), "does", "not", "exist.json"))
	require.NoError(t, err)
	assert.Empty(t, r.Pending())
}
