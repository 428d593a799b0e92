package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/voxcrm/backend/internal/models"
)

type UserStore interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindFirstAdmin(ctx context.Context) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

// OwnerResolver picks the principal that owns records created by automated
// ingestion (sheet rows, voice calls). Resolution order: the configured
// default owner email, then the oldest admin, then a freshly created fallback
// admin with a random password. The result is cached after the first success
// so both ingestion paths attribute records to the same principal.
type OwnerResolver struct {
	Store        UserStore
	DefaultEmail string
	Logger       zerolog.Logger

	mu    sync.Mutex
	owner *models.User
}

func (r *OwnerResolver) Resolve(ctx context.Context) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.owner != nil {
		return r.owner, nil
	}

	if r.DefaultEmail != "" {
		u, err := r.Store.GetUserByEmail(ctx, r.DefaultEmail)
		if err == nil {
			r.owner = u
			return u, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.Logger.Warn().Str("email", r.DefaultEmail).Msg("configured ingestion owner not found, falling back to first admin")
	}

	u, err := r.Store.FindFirstAdmin(ctx)
	if err == nil {
		r.owner = u
		return u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	created, err := r.createFallbackAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("create fallback admin: %w", err)
	}
	r.Logger.Info().Str("email", created.Email).Msg("created fallback admin for ingestion ownership")
	r.owner = created
	return created, nil
}

func (r *OwnerResolver) createFallbackAdmin(ctx context.Context) (*models.User, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &models.User{
		Name:     "Default Admin",
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := r.Store.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
