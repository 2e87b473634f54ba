// Package google exports ledger records to a Google Sheet, one tab for
// deposits and one for expenses. Rows are appended; the sheet is a backup
// mirror, never read back into the ledger.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"messbook/internal/core"
	"messbook/internal/export"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	depositsSheet string
	expensesSheet string
}

// Ensure interface conformance
var _ export.RecordWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service-account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional tab names: GOOGLE_DEPOSITS_SHEET_NAME (default "Deposits"),
// GOOGLE_EXPENSES_SHEET_NAME (default "Expenses").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	deposits := strings.TrimSpace(os.Getenv("GOOGLE_DEPOSITS_SHEET_NAME"))
	if deposits == "" {
		deposits = "Deposits"
	}
	expenses := strings.TrimSpace(os.Getenv("GOOGLE_EXPENSES_SHEET_NAME"))
	if expenses == "" {
		expenses = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		depositsSheet: deposits,
		expensesSheet: expenses,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// AppendDeposit appends one deposit row: date, member id, amount, notes.
func (c *Client) AppendDeposit(ctx context.Context, d core.Deposit) error {
	row := []any{d.Date.String(), d.MemberID, d.Amount.Taka(), d.Notes}
	if err := c.appendRow(ctx, c.depositsSheet, row); err != nil {
		return fmt.Errorf("append deposit %s: %w", d.ID, err)
	}
	slog.InfoContext(ctx, "Deposit exported to sheet", "id", d.ID, "sheet", c.depositsSheet)
	return nil
}

// AppendExpense appends one expense row: date, items, shopper, amount, notes.
func (c *Client) AppendExpense(ctx context.Context, e core.Expense) error {
	row := []any{e.Date.String(), e.Items, e.ShopperName, e.Amount.Taka(), e.Notes}
	if err := c.appendRow(ctx, c.expensesSheet, row); err != nil {
		return fmt.Errorf("append expense %s: %w", e.ID, err)
	}
	slog.InfoContext(ctx, "Expense exported to sheet", "id", e.ID, "sheet", c.expensesSheet)
	return nil
}

func (c *Client) appendRow(ctx context.Context, sheetName string, row []any) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A:A", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append to sheet %s: %w", sheetName, err)
	}
	return nil
}
