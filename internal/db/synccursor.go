package db

import (
	"context"
	"time"

	"github.com/voxcrm/backend/internal/models"
)

func (s *Store) GetSyncCursor(ctx context.Context, sheetID, sheetName string) (*models.SheetSyncCursor, error) {
	return s.scanSyncCursor(s.Pool.QueryRow(ctx, `
		SELECT id, sheet_id, sheet_name, last_synced_at, last_row_count
		FROM sheet_sync_cursors WHERE sheet_id = $1 AND sheet_name = $2
	`, sheetID, sheetName))
}

// GetLatestSyncCursor returns the most recently synced cursor across all
// sheets, backing the sync status endpoint.
func (s *Store) GetLatestSyncCursor(ctx context.Context) (*models.SheetSyncCursor, error) {
	return s.scanSyncCursor(s.Pool.QueryRow(ctx, `
		SELECT id, sheet_id, sheet_name, last_synced_at, last_row_count
		FROM sheet_sync_cursors ORDER BY last_synced_at DESC LIMIT 1
	`))
}

// UpsertSyncCursor advances the cursor for one sheet key. GREATEST keeps
// last_row_count monotonically non-decreasing even if the sheet shrank.
func (s *Store) UpsertSyncCursor(ctx context.Context, sheetID, sheetName string, rowCount int, syncedAt time.Time) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO sheet_sync_cursors (sheet_id, sheet_name, last_synced_at, last_row_count)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sheet_id, sheet_name) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at,
			last_row_count = GREATEST(sheet_sync_cursors.last_row_count, EXCLUDED.last_row_count)
	`, sheetID, sheetName, syncedAt, rowCount)
	return err
}

func (s *Store) scanSyncCursor(row rowScanner) (*models.SheetSyncCursor, error) {
	var c models.SheetSyncCursor
	if err := row.Scan(&c.ID, &c.SheetID, &c.SheetName, &c.LastSyncedAt, &c.LastRowCount); err != nil {
		return nil, err
	}
	return &c, nil
}
