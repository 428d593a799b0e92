package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/voxcrm/backend/internal/models"
)

const customerColumns = `id, name, email, phone, status, tags, source, external_id, user_id, created_at, updated_at`

func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	if c.Status == "" {
		c.Status = models.CustomerStatusNew
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return s.Pool.QueryRow(ctx, `
		INSERT INTO customers (name, email, phone, status, tags, source, external_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, c.Name, c.Email, c.Phone, c.Status, c.Tags, c.Source, c.ExternalID, c.UserID).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	return s.Pool.QueryRow(ctx, `
		UPDATE customers
		SET name = $1, email = $2, phone = $3, status = $4, tags = $5, source = $6, external_id = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`, c.Name, c.Email, c.Phone, c.Status, c.Tags, c.Source, c.ExternalID, c.ID).Scan(&c.UpdatedAt)
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.scanCustomer(s.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return s.scanCustomer(s.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email = $1`, email))
}

// GetCustomerByPhone returns the oldest customer carrying the phone number.
// Phone is not unique, so ties resolve to the earliest created record.
func (s *Store) GetCustomerByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return s.scanCustomer(s.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE phone = $1 ORDER BY created_at ASC LIMIT 1`, phone))
}

func (s *Store) GetCustomerByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	return s.scanCustomer(s.Pool.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE external_id = $1 ORDER BY created_at ASC LIMIT 1`, externalID))
}

type CustomerFilter struct {
	Search string
	Status string
	Tag    string
	Limit  int
	Offset int
}

func (s *Store) ListCustomers(ctx context.Context, f CustomerFilter) ([]models.Customer, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	query := `SELECT ` + customerColumns + ` FROM customers`
	args, wheres := customerWheres(f)
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	query += " ORDER BY updated_at DESC LIMIT $" + fmt.Sprint(len(args)+1) + " OFFSET $" + fmt.Sprint(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Customer
	for rows.Next() {
		c, err := s.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (s *Store) CountCustomers(ctx context.Context, f CustomerFilter) (int, error) {
	query := `SELECT COUNT(*) FROM customers`
	args, wheres := customerWheres(f)
	if len(wheres) > 0 {
		query += " WHERE " + strings.Join(wheres, " AND ")
	}
	var count int
	err := s.Pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func customerWheres(f CustomerFilter) ([]any, []string) {
	var args []any
	var wheres []string
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		wheres = append(wheres, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d)", n, n, n))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		wheres = append(wheres, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Tag != "" {
		args = append(args, f.Tag)
		wheres = append(wheres, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}
	return args, wheres
}

func (s *Store) scanCustomer(row rowScanner) (*models.Customer, error) {
	var c models.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.Tags, &c.Source, &c.ExternalID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
