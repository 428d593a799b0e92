package db

import (
	"context"

	"github.com/voxcrm/backend/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.Password, u.Role).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.scanUser(s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users WHERE id = $1
	`, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users WHERE email = $1
	`, email))
}

// FindFirstAdmin returns the oldest ADMIN user, the deterministic fallback
// owner for records created by automated ingestion.
func (s *Store) FindFirstAdmin(ctx context.Context) (*models.User, error) {
	return s.scanUser(s.Pool.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at, updated_at
		FROM users WHERE role = $1 ORDER BY created_at ASC LIMIT 1
	`, models.RoleAdmin))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
