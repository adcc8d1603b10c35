// Package sheets writes allocation results to a Google Sheets
// spreadsheet, one row per client, one column per
// "{domain}_{vehicle}_actual|ideal" pair. The downstream narrative
// renderer consumes this sheet and must never re-derive allocations.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"nestegg/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv creates a Sheets writer from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Auth comes from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS. GOOGLE_SHEET_NAME defaults to
// "Allocations".
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Allocations"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON([]byte(serviceAccountJSON)),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	case serviceAccountFile != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsFile(serviceAccountFile),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	default:
		// Application default credentials.
		return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
	}
}

// EnsureHeader writes the fixed column header when the sheet is empty.
// Column order is catalog order and never changes between releases.
func (c *Client) EnsureHeader(ctx context.Context) error {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetName+"!1:1").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := []interface{}{"client_id"}
	for _, col := range core.Columns() {
		header = append(header, col)
	}
	_, err = c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, c.sheetName+"!A1", &gsheet.ValueRange{Values: [][]interface{}{header}}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteResult upserts the client's allocation row. A later run for the
// same client overwrites the row rather than appending history. The
// expectedVersion parameter is unused here: the sheet is a rendered
// deliverable, not the system of record, so conflict detection stays
// with the primary store.
func (c *Client) WriteResult(ctx context.Context, r core.AllocationResult, _ int64) error {
	rowIndex, err := c.findRow(ctx, r.ClientID)
	if err != nil {
		return err
	}

	flat := r.Flatten()
	row := []interface{}{r.ClientID}
	for _, col := range core.Columns() {
		row = append(row, flat[col].Dollars())
	}
	values := &gsheet.ValueRange{Values: [][]interface{}{row}}

	if rowIndex > 0 {
		rangeRef := fmt.Sprintf("%s!A%d", c.sheetName, rowIndex)
		_, err = c.svc.Spreadsheets.Values.
			Update(c.spreadsheetID, rangeRef, values).
			ValueInputOption("RAW").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update allocation row: %w", err)
		}
	} else {
		_, err = c.svc.Spreadsheets.Values.
			Append(c.spreadsheetID, c.sheetName+"!A:A", values).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("append allocation row: %w", err)
		}
	}

	slog.InfoContext(ctx, "allocation row written to sheet",
		"client_id", r.ClientID, "sheet", c.sheetName, "updated", rowIndex > 0)
	return nil
}

// findRow returns the 1-based row index holding the client id, or 0
// when absent.
func (c *Client) findRow(ctx context.Context, clientID string) (int, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Get(c.spreadsheetID, c.sheetName+"!A:A").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("scan client column: %w", err)
	}
	for i, row := range resp.Values {
		if len(row) == 0 {
			continue
		}
		if s, ok := row[0].(string); ok && s == clientID {
			return i + 1, nil
		}
	}
	return 0, nil
}
