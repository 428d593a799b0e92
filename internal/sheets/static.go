package sheets

import (
	"context"
	"errors"
)

var ErrSheetNotFound = errors.New("sheet not found")

// StaticSource serves fixed rows from memory, used when no Google
// credentials are configured and in tests.
type StaticSource struct {
	Sheets map[string][][]string
}

func (s StaticSource) FetchRows(ctx context.Context, sheetID, sheetName string) ([][]string, error) {
	rows, ok := s.Sheets[sheetID+"/"+sheetName]
	if !ok {
		return nil, ErrSheetNotFound
	}
	return rows, nil
}
