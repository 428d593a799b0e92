package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxcrm/backend/internal/models"
)

const appointmentColumns = `id, title, date, duration, type, status, notes, customer_id, user_id, created_at, updated_at`

func (s *Store) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	if a.Status == "" {
		a.Status = models.AppointmentStatusPending
	}
	return s.Pool.QueryRow(ctx, `
		INSERT INTO appointments (title, date, duration, type, status, notes, customer_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, a.Title, a.Date, a.Duration, a.Type, a.Status, a.Notes, a.CustomerID, a.UserID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (s *Store) UpdateAppointment(ctx context.Context, a *models.Appointment) error {
	return s.Pool.QueryRow(ctx, `
		UPDATE appointments
		SET title = $1, date = $2, duration = $3, type = $4, status = $5, notes = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`, a.Title, a.Date, a.Duration, a.Type, a.Status, a.Notes, a.ID).Scan(&a.UpdatedAt)
}

func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.scanAppointment(s.Pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
}

type AppointmentFilter struct {
	CustomerID string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (s *Store) ListAppointments(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	var args []any
	var wheres []string
	if f.CustomerID != "" {
		args = append(args, f.CustomerID)
		wheres = append(wheres, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		wheres = append(wheres, fmt.Sprintf("date >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		wheres = append(wheres, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY date ASC LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Appointment
	for rows.Next() {
		a, err := s.scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) scanAppointment(row rowScanner) (*models.Appointment, error) {
	var a models.Appointment
	if err := row.Scan(&a.ID, &a.Title, &a.Date, &a.Duration, &a.Type, &a.Status, &a.Notes, &a.CustomerID, &a.UserID, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}
