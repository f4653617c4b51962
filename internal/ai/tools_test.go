package ai

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winimoid/organext/internal/model"
	"github.com/winimoid/organext/tests/testutil"
)

func TestExecuteToolUseRejectsWrites(t *testing.T) {
	a := New("test-key", testutil.NewTestStore(t), "", 0)

	result := a.executeToolUse(context.Background(), apiToolUse{
		Name:  "delete_task",
		Input: json.RawMessage(`{"id": "t1"}`),
	})
	assert.Contains(t, result, "not permitted")

	result = a.executeToolUse(context.Background(), apiToolUse{Name: "make_coffee"})
	assert.Contains(t, result, "Unknown tool")
}

func TestSearchTasksTool(t *testing.T) {
	st := testutil.NewTestStore(t)
	a := New("test-key", st, "", 0)
	ctx := context.Background()

	_, err := st.CreateTask(ctx, model.Task{Title: "Book flights", Description: "to Lyon"})
	require.NoError(t, err)
	_, err = st.CreateTask(ctx, model.Task{Title: "Water plants", IsCompleted: true})
	require.NoError(t, err)

	result := a.executeToolUse(ctx, apiToolUse{
		Name:  "search_tasks",
		Input: json.RawMessage(`{"query": "Lyon"}`),
	})

	var parsed struct {
		Count int `json:"count"`
		Tasks []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &parsed))
	require.Equal(t, 1, parsed.Count)
	assert.Equal(t, "Book flights", parsed.Tasks[0].Title)

	// Completed tasks stay hidden unless asked for.
	result = a.executeToolUse(ctx, apiToolUse{
		Name:  "search_tasks",
		Input: json.RawMessage(`{"query": "plants", "include_completed": true}`),
	})
	require.NoError(t, json.Unmarshal([]byte(result), &parsed))
	assert.Equal(t, 1, parsed.Count)
}

func TestGetAgendaTool(t *testing.T) {
	st := testutil.NewTestStore(t)
	a := New("test-key", st, "", 0)
	ctx := context.Background()

	soon := time.Now().Add(24 * time.Hour)
	_, err := st.CreateTask(ctx, model.Task{Title: "In window", DueDate: &soon})
	require.NoError(t, err)

	farOut := time.Now().AddDate(0, 2, 0)
	_, err = st.CreateTask(ctx, model.Task{Title: "Beyond window", DueDate: &farOut})
	require.NoError(t, err)

	start := time.Now().Add(48 * time.Hour)
	_, err = st.CreateEvent(ctx, model.Event{Title: "In window too", StartDate: start, EndDate: start.Add(time.Hour)})
	require.NoError(t, err)

	_, err = st.CreateAppointment(ctx, model.Appointment{Title: "Past", Date: time.Now().Add(-time.Hour)})
	require.NoError(t, err)

	result := a.executeToolUse(ctx, apiToolUse{
		Name:  "get_agenda",
		Input: json.RawMessage(`{"days": 7}`),
	})

	var parsed struct {
		Days    int `json:"days"`
		Count   int `json:"count"`
		Entries []struct {
			Kind  string `json:"kind"`
			Title string `json:"title"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &parsed))
	assert.Equal(t, 7, parsed.Days)
	assert.Equal(t, 2, parsed.Count)
}

func TestConversationContextTrimsKeepingFirst(t *testing.T) {
	c := NewConversationContext()

	c.AddMessage(RoleUser, "first")
	for i := 0; i < 30; i++ {
		c.AddMessage(RoleAssistant, "filler")
	}

	msgs := c.GetMessages()
	assert.Len(t, msgs, 20)
	assert.Equal(t, "first", msgs[0].Content, "the initial context message survives trimming")

	c.Reset()
	assert.Zero(t, c.Len())
}
