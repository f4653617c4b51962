package notify_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winimoid/organext/internal/notify"
)

type recordingBackend struct {
	entries map[string]notify.Request
	fail    bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{entries: make(map[string]notify.Request)}
}

func (b *recordingBackend) Schedule(req notify.Request) error {
	if b.fail {
		return errors.New("backend down")
	}
	b.entries[req.ID] = req
	return nil
}

func (b *recordingBackend) Cancel(id string) error {
	if b.fail {
		return errors.New("backend down")
	}
	delete(b.entries, id)
	return nil
}

func (b *recordingBackend) CancelAll() error {
	if b.fail {
		return errors.New("backend down")
	}
	b.entries = make(map[string]notify.Request)
	return nil
}

func TestStoreDropsPastDatedRequests(t *testing.T) {
	backend := newRecordingBackend()
	s := notify.NewStore(backend, nil)

	s.Schedule(notify.Request{ID: "n1", FireAt: time.Now().Add(-time.Minute)})
	assert.Empty(t, backend.entries, "past-dated requests must never reach the backend")

	s.Schedule(notify.Request{ID: "n2", FireAt: time.Now()})
	assert.Empty(t, backend.entries, "a fire time of exactly now is not in the future")
}

func TestStoreSchedulesFutureRequests(t *testing.T) {
	backend := newRecordingBackend()
	s := notify.NewStore(backend, nil)

	s.Schedule(notify.Request{ID: "n1", Title: "hello", FireAt: time.Now().Add(time.Hour)})
	require.Len(t, backend.entries, 1)
	assert.Equal(t, "hello", backend.entries["n1"].Title)
}

func TestStoreSwallowsBackendErrors(t *testing.T) {
	backend := newRecordingBackend()
	backend.fail = true
	s := notify.NewStore(backend, nil)

	// None of these may panic or return anything to the caller.
	s.Schedule(notify.Request{ID: "n1", FireAt: time.Now().Add(time.Hour)})
	s.Cancel("n1")
	s.CancelAll()
}
