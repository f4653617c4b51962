package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/winimoid/organext/internal/model"
)

// CreateAppointment inserts a new appointment. Generates a UUID if ID is
// empty and returns the stored appointment.
func (s *SQLiteStore) CreateAppointment(ctx context.Context, appt model.Appointment) (model.Appointment, error) {
	if strings.TrimSpace(appt.Title) == "" {
		return model.Appointment{}, fmt.Errorf("appointment title must not be empty")
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, title, date, contact, notes, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		appt.ID, appt.Title, appt.Date.UTC(), appt.Contact, appt.Notes,
		appt.CreatedAt, appt.UpdatedAt,
	)
	if err != nil {
		return model.Appointment{}, fmt.Errorf("creating appointment: %w", err)
	}
	return appt, nil
}

// UpdateAppointment updates an existing appointment by ID.
func (s *SQLiteStore) UpdateAppointment(ctx context.Context, appt model.Appointment) error {
	if strings.TrimSpace(appt.Title) == "" {
		return fmt.Errorf("appointment title must not be empty")
	}
	appt.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE appointments SET
			title = ?, date = ?, contact = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		appt.Title, appt.Date.UTC(), appt.Contact, appt.Notes, appt.UpdatedAt,
		appt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating appointment %s: %w", appt.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("appointment %s not found", appt.ID)
	}
	return nil
}

// DeleteAppointment removes an appointment by ID.
func (s *SQLiteStore) DeleteAppointment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM appointments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting appointment %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("appointment %s not found", id)
	}
	return nil
}

// GetAppointmentByID retrieves a single appointment by ID.
func (s *SQLiteStore) GetAppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	var appt model.Appointment
	err := s.db.QueryRowxContext(ctx, "SELECT * FROM appointments WHERE id = ?", id).Scan(
		&appt.ID, &appt.Title, &appt.Date, &appt.Contact, &appt.Notes,
		&appt.CreatedAt, &appt.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("getting appointment %s: %w", id, err)
	}
	return &appt, nil
}

// GetAppointments retrieves all appointments, newest first.
func (s *SQLiteStore) GetAppointments(ctx context.Context) ([]model.Appointment, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM appointments ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("querying appointments: %w", err)
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		var appt model.Appointment
		err := rows.Scan(
			&appt.ID, &appt.Title, &appt.Date, &appt.Contact, &appt.Notes,
			&appt.CreatedAt, &appt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		appts = append(appts, appt)
	}

	return appts, rows.Err()
}
