package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// GoogleSource reads rows through the Google Sheets API with read-only
// spreadsheet scope.
type GoogleSource struct {
	svc *sheetsapi.Service
}

func NewGoogleSource(ctx context.Context, credentialsFile string) (*GoogleSource, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &GoogleSource{svc: svc}, nil
}

func (g *GoogleSource) FetchRows(ctx context.Context, sheetID, sheetName string) ([][]string, error) {
	resp, err := g.svc.Spreadsheets.Values.
		Get(sheetID, sheetName+"!A:Z").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("fetch sheet %s/%s: %w", sheetID, sheetName, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = strings.TrimSpace(fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
