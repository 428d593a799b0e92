package service

import (
	"errors"
	"testing"
)

func TestMapColumns(t *testing.T) {
	m, err := MapColumns([]string{"Full Name", "Email Address", "Phone Number", "Lead Source"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != 0 || m.Email != 1 || m.Phone != 2 || m.Source != 3 {
		t.Fatalf("unexpected mapping: %+v", m)
	}
}

func TestMapColumnsOptionalRolesAbsent(t *testing.T) {
	m, err := MapColumns([]string{"Name"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Email != -1 || m.Phone != -1 || m.Source != -1 {
		t.Fatalf("expected optional roles absent, got %+v", m)
	}
}

func TestMapColumnsMissingName(t *testing.T) {
	_, err := MapColumns([]string{"Email", "Phone"})
	if !errors.Is(err, ErrNameColumnMissing) {
		t.Fatalf("expected ErrNameColumnMissing, got %v", err)
	}
}

func TestMapColumnsFirstMatchWins(t *testing.T) {
	m, err := MapColumns([]string{"Customer Name", "Contact Name", "Work Email", "Home Email"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != 0 {
		t.Fatalf("expected first name column, got %d", m.Name)
	}
	if m.Email != 2 {
		t.Fatalf("expected first email column, got %d", m.Email)
	}
}

func TestCellToleratesShortRows(t *testing.T) {
	row := []string{"Jane"}
	if got := cell(row, 2); got != "" {
		t.Fatalf("expected empty for out-of-range column, got %q", got)
	}
	if got := cell(row, -1); got != "" {
		t.Fatalf("expected empty for absent role, got %q", got)
	}
	if got := cell([]string{"  Jane  "}, 0); got != "Jane" {
		t.Fatalf("expected trimmed cell, got %q", got)
	}
}
