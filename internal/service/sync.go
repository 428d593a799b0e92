package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/voxcrm/backend/internal/models"
	"github.com/voxcrm/backend/internal/sheets"
)

const SourceGoogleSheets = "Google Sheets"

// SheetConfig identifies one external sheet to reconcile. It is set at
// startup or through the configure endpoint, never mutated elsewhere.
type SheetConfig struct {
	SheetID   string `json:"sheet_id"`
	SheetName string `json:"sheet_name"`
}

type SyncStore interface {
	GetCustomerByExternalID(ctx context.Context, externalID string) (*models.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	GetSyncCursor(ctx context.Context, sheetID, sheetName string) (*models.SheetSyncCursor, error)
	UpsertSyncCursor(ctx context.Context, sheetID, sheetName string, rowCount int, syncedAt time.Time) error
}

type SyncSummary struct {
	RowsTotal int `json:"rows_total"`
	RowsNew   int `json:"rows_new"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}

// SyncService reconciles sheet rows against the customer table without
// creating duplicates.
type SyncService struct {
	Store  SyncStore
	Source sheets.Source
	Owner  *OwnerResolver
	Logger zerolog.Logger
}

// Run executes one reconciliation pass for the given sheet. Rows before the
// persisted cursor offset are assumed already processed; rows at or beyond it
// are matched to existing customers by external id, then email, then phone,
// in physical sheet order. The cursor is only advanced after the whole slice
// has been examined, so a failed pass is retried from the old offset.
func (s *SyncService) Run(ctx context.Context, cfg SheetConfig) (SyncSummary, error) {
	rows, err := s.Source.FetchRows(ctx, cfg.SheetID, cfg.SheetName)
	if err != nil {
		return SyncSummary{}, fmt.Errorf("fetch rows: %w", err)
	}
	if len(rows) == 0 {
		s.Logger.Warn().Str("sheet_id", cfg.SheetID).Msg("sheet returned no rows, skipping pass")
		return SyncSummary{}, nil
	}

	mapping, err := MapColumns(rows[0])
	if err != nil {
		return SyncSummary{}, err
	}
	dataRows := rows[1:]

	offset := 0
	cursor, err := s.Store.GetSyncCursor(ctx, cfg.SheetID, cfg.SheetName)
	switch {
	case err == nil:
		offset = cursor.LastRowCount
	case errors.Is(err, pgx.ErrNoRows):
		// first pass for this sheet
	default:
		return SyncSummary{}, fmt.Errorf("read cursor: %w", err)
	}
	if offset > len(dataRows) {
		offset = len(dataRows)
	}

	summary := SyncSummary{RowsTotal: len(dataRows), RowsNew: len(dataRows) - offset}
	if summary.RowsNew > 0 {
		owner, err := s.Owner.Resolve(ctx)
		if err != nil {
			return SyncSummary{}, fmt.Errorf("resolve ingestion owner: %w", err)
		}
		for i, row := range dataRows[offset:] {
			rowNum := offset + i + 1
			outcome, err := s.reconcileRow(ctx, cfg, mapping, row, rowNum, owner)
			if err != nil {
				return summary, fmt.Errorf("row %d: %w", rowNum, err)
			}
			switch outcome {
			case rowCreated:
				summary.Created++
			case rowUpdated:
				summary.Updated++
			case rowSkipped:
				summary.Skipped++
			}
		}
	}

	if err := s.Store.UpsertSyncCursor(ctx, cfg.SheetID, cfg.SheetName, len(dataRows), time.Now().UTC()); err != nil {
		return summary, fmt.Errorf("advance cursor: %w", err)
	}

	s.Logger.Info().
		Str("sheet_id", cfg.SheetID).
		Str("sheet_name", cfg.SheetName).
		Int("rows_new", summary.RowsNew).
		Int("created", summary.Created).
		Int("updated", summary.Updated).
		Int("skipped", summary.Skipped).
		Msg("sheet sync pass completed")
	return summary, nil
}

type rowOutcome int

const (
	rowSkipped rowOutcome = iota
	rowCreated
	rowUpdated
)

func (s *SyncService) reconcileRow(ctx context.Context, cfg SheetConfig, mapping ColumnMap, row []string, rowNum int, owner *models.User) (rowOutcome, error) {
	name := cell(row, mapping.Name)
	if name == "" {
		return rowSkipped, nil
	}
	email := cell(row, mapping.Email)
	phone := cell(row, mapping.Phone)
	externalID := fmt.Sprintf("%s-%d", cfg.SheetID, rowNum)

	existing, err := s.matchCustomer(ctx, externalID, email, phone)
	if err != nil {
		return rowSkipped, err
	}

	if existing != nil {
		existing.Name = name
		if email != "" {
			existing.Email = &email
		}
		if phone != "" {
			existing.Phone = &phone
		}
		existing.Source = SourceGoogleSheets
		existing.ExternalID = &externalID
		if err := s.Store.UpdateCustomer(ctx, existing); err != nil {
			return rowSkipped, err
		}
		return rowUpdated, nil
	}

	c := &models.Customer{
		Name:       name,
		Status:     models.CustomerStatusNew,
		Tags:       []string{"Lead", "Google Sheets"},
		Source:     SourceGoogleSheets,
		ExternalID: &externalID,
		UserID:     owner.ID,
	}
	if email != "" {
		c.Email = &email
	}
	if phone != "" {
		c.Phone = &phone
	}
	if err := s.Store.CreateCustomer(ctx, c); err != nil {
		return rowSkipped, err
	}
	return rowCreated, nil
}

// matchCustomer resolves a sheet row to an existing customer. External id is
// checked first so a crashed pass that created customers without advancing
// the cursor re-matches them instead of duplicating; email beats phone when
// both would match different customers.
func (s *SyncService) matchCustomer(ctx context.Context, externalID, email, phone string) (*models.Customer, error) {
	c, err := s.Store.GetCustomerByExternalID(ctx, externalID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if email != "" {
		c, err := s.Store.GetCustomerByEmail(ctx, email)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}

	if phone != "" {
		c, err := s.Store.GetCustomerByPhone(ctx, phone)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
	}
	return nil, nil
}
