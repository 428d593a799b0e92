package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voxcrm/backend/internal/models"
)

func TestResolvePrefersConfiguredOwner(t *testing.T) {
	store := newFakeStore()
	store.users = []models.User{
		{ID: "admin-1", Email: "first@x.com", Role: models.RoleAdmin},
		{ID: "user-2", Email: "owner@x.com", Role: models.RoleUser},
	}
	r := &OwnerResolver{Store: store, DefaultEmail: "owner@x.com", Logger: zerolog.Nop()}

	owner, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner.ID != "user-2" {
		t.Fatalf("expected configured owner, got %s", owner.ID)
	}
}

func TestResolveFallsBackToFirstAdmin(t *testing.T) {
	store := newFakeStore()
	store.users = []models.User{
		{ID: "user-1", Email: "a@x.com", Role: models.RoleUser},
		{ID: "admin-2", Email: "b@x.com", Role: models.RoleAdmin},
	}
	r := &OwnerResolver{Store: store, DefaultEmail: "missing@x.com", Logger: zerolog.Nop()}

	owner, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner.ID != "admin-2" {
		t.Fatalf("expected first admin, got %s", owner.ID)
	}
}

func TestResolveCreatesFallbackAdminOnce(t *testing.T) {
	store := newFakeStore()
	r := &OwnerResolver{Store: store, Logger: zerolog.Nop()}

	owner, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if owner.Role != models.RoleAdmin {
		t.Fatalf("fallback owner must be admin, got %q", owner.Role)
	}
	if owner.Password == "" {
		t.Fatalf("fallback admin must have a hashed password")
	}

	again, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve again: %v", err)
	}
	if again.ID != owner.ID {
		t.Fatalf("expected cached owner, got %s vs %s", again.ID, owner.ID)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected a single fallback admin, got %d users", len(store.users))
	}
}
