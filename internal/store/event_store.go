package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/winimoid/organext/internal/model"
)

// CreateEvent inserts a new event. Generates a UUID if ID is empty and
// returns the stored event.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event model.Event) (model.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return model.Event{}, fmt.Errorf("event title must not be empty")
	}
	if event.EndDate.Before(event.StartDate) {
		return model.Event{}, fmt.Errorf("event end date precedes start date")
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events (
			id, title, description, start_date, end_date, location,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Description,
		event.StartDate.UTC(), event.EndDate.UTC(), event.Location,
		event.CreatedAt, event.UpdatedAt,
	)
	if err != nil {
		return model.Event{}, fmt.Errorf("creating event: %w", err)
	}
	return event, nil
}

// UpdateEvent updates an existing event by ID.
func (s *SQLiteStore) UpdateEvent(ctx context.Context, event model.Event) error {
	if strings.TrimSpace(event.Title) == "" {
		return fmt.Errorf("event title must not be empty")
	}
	if event.EndDate.Before(event.StartDate) {
		return fmt.Errorf("event end date precedes start date")
	}
	event.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE events SET
			title = ?, description = ?, start_date = ?, end_date = ?,
			location = ?, updated_at = ?
		WHERE id = ?`,
		event.Title, event.Description,
		event.StartDate.UTC(), event.EndDate.UTC(),
		event.Location, event.UpdatedAt,
		event.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event %s: %w", event.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s not found", event.ID)
	}
	return nil
}

// DeleteEvent removes an event by ID.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event %s not found", id)
	}
	return nil
}

// GetEventByID retrieves a single event by ID.
func (s *SQLiteStore) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := s.db.QueryRowxContext(ctx, "SELECT * FROM events WHERE id = ?", id).Scan(
		&event.ID, &event.Title, &event.Description,
		&event.StartDate, &event.EndDate, &event.Location,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("getting event %s: %w", id, err)
	}
	return &event, nil
}

// GetEvents retrieves all events, newest first.
func (s *SQLiteStore) GetEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM events ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var event model.Event
		err := rows.Scan(
			&event.ID, &event.Title, &event.Description,
			&event.StartDate, &event.EndDate, &event.Location,
			&event.CreatedAt, &event.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}
