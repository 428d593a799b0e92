package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voxcrm/backend/internal/models"
)

const voiceCallColumns = `id, call_id, customer_id, direction, status, start_time, end_time, duration, recording_url, transcript_url, ai_handled, notes, created_at, updated_at`

func (s *Store) CreateVoiceCall(ctx context.Context, v *models.VoiceCall) error {
	return s.Pool.QueryRow(ctx, `
		INSERT INTO voice_calls (call_id, customer_id, direction, status, start_time, ai_handled, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, v.CallID, v.CustomerID, v.Direction, v.Status, v.StartTime, v.AIHandled, v.Notes).
		Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

// FinishVoiceCall records the terminal status and call metadata reported by
// the voice platform's call-ended event.
func (s *Store) FinishVoiceCall(ctx context.Context, id, status string, duration int, recordingURL string, endTime time.Time) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE voice_calls
		SET status = $1, duration = $2, recording_url = $3, end_time = $4, updated_at = NOW()
		WHERE id = $5
	`, status, duration, recordingURL, endTime, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voice call %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) SetVoiceCallTranscript(ctx context.Context, id, transcriptURL string) error {
	tag, err := s.Pool.Exec(ctx, `
		UPDATE voice_calls SET transcript_url = $1, updated_at = NOW() WHERE id = $2
	`, transcriptURL, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voice call %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) GetVoiceCall(ctx context.Context, id string) (*models.VoiceCall, error) {
	return s.scanVoiceCall(s.Pool.QueryRow(ctx,
		`SELECT `+voiceCallColumns+` FROM voice_calls WHERE id = $1`, id))
}

// GetVoiceCallByCallID looks up a call by the external identifier issued by
// the voice platform; webhook events never carry internal ids.
func (s *Store) GetVoiceCallByCallID(ctx context.Context, callID string) (*models.VoiceCall, error) {
	return s.scanVoiceCall(s.Pool.QueryRow(ctx,
		`SELECT `+voiceCallColumns+` FROM voice_calls WHERE call_id = $1`, callID))
}

type VoiceCallFilter struct {
	CustomerID string
	Status     string
	Direction  string
	Limit      int
	Offset     int
}

func (s *Store) ListVoiceCalls(ctx context.Context, f VoiceCallFilter) ([]models.VoiceCall, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + voiceCallColumns + ` FROM voice_calls`
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
	if f.Direction != "" {
		args = append(args, f.Direction)
		wheres = append(wheres, fmt.Sprintf("direction = $%d", len(args)))
	}
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY start_time DESC LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.VoiceCall
	for rows.Next() {
		v, err := s.scanVoiceCall(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (s *Store) scanVoiceCall(row rowScanner) (*models.VoiceCall, error) {
	var v models.VoiceCall
	if err := row.Scan(&v.ID, &v.CallID, &v.CustomerID, &v.Direction, &v.Status, &v.StartTime, &v.EndTime, &v.Duration, &v.RecordingURL, &v.TranscriptURL, &v.AIHandled, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}
