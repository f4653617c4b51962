package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/winimoid/organext/internal/store"
)

// toolDefinitions returns the tool specifications for the Claude API.
func toolDefinitions() []apiTool {
	return []apiTool{
		{
			Name: "search_tasks",
			Description: "Search the user's tasks by query text. " +
				"Returns matching tasks with their due dates and status.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"query": {
						"type": "string",
						"description": "Search query to match against task titles and descriptions"
					},
					"include_completed": {
						"type": "boolean",
						"description": "Include completed tasks in the results"
					}
				}
			}`),
		},
		{
			Name: "get_agenda",
			Description: "List tasks due, events starting, and appointments " +
				"taking place within the next N days.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"days": {
						"type": "integer",
						"minimum": 1,
						"maximum": 31,
						"description": "How many days ahead to look (default 7)"
					}
				}
			}`),
		},
	}
}

// executeToolUse runs a tool requested by the AI and returns the result.
func (a *Assistant) executeToolUse(ctx context.Context, tu apiToolUse) string {
	// Read-only guard: reject any write-like tool names
	writeTools := map[string]bool{
		"create_task":        true,
		"update_task":        true,
		"complete_task":      true,
		"delete_task":        true,
		"create_event":       true,
		"delete_event":       true,
		"create_appointment": true,
	}
	if writeTools[tu.Name] {
		return `{"error": "Write operations are not permitted. ` +
			`Please use the organext CLI commands instead."}`
	}

	switch tu.Name {
	case "search_tasks":
		return a.handleSearchTasks(ctx, tu.Input)
	case "get_agenda":
		return a.handleGetAgenda(ctx, tu.Input)
	default:
		return fmt.Sprintf(`{"error": "Unknown tool: %s"}`, tu.Name)
	}
}

// handleSearchTasks queries the store with the provided search parameters.
func (a *Assistant) handleSearchTasks(ctx context.Context, input json.RawMessage) string {
	var params struct {
		Query            string `json:"query"`
		IncludeCompleted bool   `json:"include_completed"`
	}

	if err := json.Unmarshal(input, &params); err != nil {
		return fmt.Sprintf(`{"error": "Invalid parameters: %v"}`, err)
	}

	filter := store.TaskFilter{
		IncludeCompleted: params.IncludeCompleted,
		Limit:            20,
	}
	if params.Query != "" {
		filter.Query = &params.Query
	}

	tasks, err := a.store.GetTasks(ctx, filter)
	if err != nil {
		return fmt.Sprintf(`{"error": "Search failed: %v"}`, err)
	}

	type taskSummary struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		DueDate     string `json:"due_date,omitempty"`
		IsCompleted bool   `json:"is_completed"`
	}

	summaries := make([]taskSummary, 0, len(tasks))
	for _, t := range tasks {
		s := taskSummary{
			ID:          t.ID,
			Title:       t.Title,
			IsCompleted: t.IsCompleted,
		}
		if t.DueDate != nil {
			s.DueDate = t.DueDate.Format("2006-01-02 15:04")
		}
		summaries = append(summaries, s)
	}

	result, err := json.Marshal(map[string]interface{}{
		"count": len(summaries),
		"tasks": summaries,
	})
	if err != nil {
		return fmt.Sprintf(`{"error": "Failed to encode results: %v"}`, err)
	}

	return string(result)
}

// handleGetAgenda collects everything with an anchor inside the window.
func (a *Assistant) handleGetAgenda(ctx context.Context, input json.RawMessage) string {
	var params struct {
		Days int `json:"days"`
	}

	if err := json.Unmarshal(input, &params); err != nil {
		return fmt.Sprintf(`{"error": "Invalid parameters: %v"}`, err)
	}
	if params.Days <= 0 {
		params.Days = 7
	}

	now := time.Now()
	horizon := now.AddDate(0, 0, params.Days)

	type agendaEntry struct {
		Kind  string `json:"kind"`
		ID    string `json:"id"`
		Title string `json:"title"`
		When  string `json:"when"`
	}
	var entries []agendaEntry

	tasks, err := a.store.GetTasks(ctx, store.TaskFilter{DueBefore: &horizon, Limit: 100})
	if err != nil {
		return fmt.Sprintf(`{"error": "Loading tasks failed: %v"}`, err)
	}
	for _, t := range tasks {
		if t.DueDate == nil || t.DueDate.Before(now) {
			continue
		}
		entries = append(entries, agendaEntry{
			Kind:  "task",
			ID:    t.ID,
			Title: t.Title,
			When:  t.DueDate.Format("2006-01-02 15:04"),
		})
	}

	events, err := a.store.GetEvents(ctx)
	if err != nil {
		return fmt.Sprintf(`{"error": "Loading events failed: %v"}`, err)
	}
	for _, e := range events {
		if e.StartDate.Before(now) || e.StartDate.After(horizon) {
			continue
		}
		entries = append(entries, agendaEntry{
			Kind:  "event",
			ID:    e.ID,
			Title: e.Title,
			When:  e.StartDate.Format("2006-01-02 15:04"),
		})
	}

	appts, err := a.store.GetAppointments(ctx)
	if err != nil {
		return fmt.Sprintf(`{"error": "Loading appointments failed: %v"}`, err)
	}
	for _, ap := range appts {
		if ap.Date.Before(now) || ap.Date.After(horizon) {
			continue
		}
		entries = append(entries, agendaEntry{
			Kind:  "appointment",
			ID:    ap.ID,
			Title: ap.Title,
			When:  ap.Date.Format("2006-01-02 15:04"),
		})
	}

	result, err := json.Marshal(map[string]interface{}{
		"days":    params.Days,
		"count":   len(entries),
		"entries": entries,
	})
	if err != nil {
		return fmt.Sprintf(`{"error": "Failed to encode agenda: %v"}`, err)
	}

	return string(result)
}
