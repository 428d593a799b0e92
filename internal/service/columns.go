package service

import (
	"errors"
	"strings"
)

// ErrNameColumnMissing aborts a sync pass: a sheet without a resolvable name
// column cannot produce customers.
var ErrNameColumnMissing = errors.New("name column not found in sheet header")

// ColumnMap holds the resolved column index per semantic role, -1 when the
// role is absent from the header.
type ColumnMap struct {
	Name   int
	Email  int
	Phone  int
	Source int
}

// MapColumns resolves column roles from a header row by case-insensitive
// substring match, first matching column wins per role. Only the name role is
// mandatory.
func MapColumns(header []string) (ColumnMap, error) {
	m := ColumnMap{
		Name:   findColumn(header, "name"),
		Email:  findColumn(header, "email"),
		Phone:  findColumn(header, "phone"),
		Source: findColumn(header, "source"),
	}
	if m.Name == -1 {
		return ColumnMap{}, ErrNameColumnMissing
	}
	return m, nil
}

func findColumn(header []string, role string) int {
	for i, h := range header {
		if strings.Contains(strings.ToLower(h), role) {
			return i
		}
	}
	return -1
}

// cell reads a column from a row, tolerating short rows and absent roles.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
