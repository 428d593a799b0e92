package sheets

import "context"

// Source reads all rows of a named sheet, header row included. Cells come
// back as trimmed strings; short rows are allowed and callers must tolerate
// missing cells when indexing through the column mapping.
type Source interface {
	FetchRows(ctx context.Context, sheetID, sheetName string) ([][]string, error)
}
