package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"wealth/internal/core"
	ports "wealth/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Column layout shared by both tabs: A ID, B Date, C Type or Category,
// D Description, E Amount, F Currency, G Recurring, H Payment method,
// I formatted amount.
const lastColumn = "I"

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	incomesSheet  string
	expensesSheet string
}

var _ ports.TransactionMirror = (*Client)(nil)

// Config names the spreadsheet and its two tabs.
type Config struct {
	SpreadsheetID string
	IncomesSheet  string
	ExpensesSheet string
}

// New creates a Sheets client. Without options, service account credentials
// are read from the environment.
func New(ctx context.Context, cfg Config, opts ...goption.ClientOption) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	if cfg.IncomesSheet == "" {
		cfg.IncomesSheet = "Incomes"
	}
	if cfg.ExpensesSheet == "" {
		cfg.ExpensesSheet = "Expenses"
	}

	var (
		svc *gsheet.Service
		err error
	)
	if len(opts) == 0 {
		svc, err = newSheetsService(ctx)
	} else {
		svc, err = gsheet.NewService(ctx, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		incomesSheet:  cfg.IncomesSheet,
		expensesSheet: cfg.ExpensesSheet,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
// Uses GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) sheetFor(kind ports.Kind) (string, error) {
	switch kind {
	case ports.Incomes:
		return c.incomesSheet, nil
	case ports.Expenses:
		return c.expensesSheet, nil
	}
	return "", fmt.Errorf("unknown sheet kind %q", kind)
}

// Upsert writes row in place when its ID is already in column A, otherwise
// on the first row after the existing data.
func (c *Client) Upsert(ctx context.Context, kind ports.Kind, row ports.Row) (string, error) {
	sheet, err := c.sheetFor(kind)
	if err != nil {
		return "", err
	}

	ids, err := c.readIDs(ctx, sheet)
	if err != nil {
		return "", err
	}
	n := rowIndex(ids, row.ID)
	if n == 0 {
		n = len(ids) + 1
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", sheet, n, lastColumn, n)
	vr := &gsheet.ValueRange{Values: [][]any{rowValues(row)}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update %s: %w", rng, err)
	}
	return rng, nil
}

// Delete clears the row holding id. The row is left blank rather than removed
// so references to later rows stay valid.
func (c *Client) Delete(ctx context.Context, kind ports.Kind, id string) error {
	sheet, err := c.sheetFor(kind)
	if err != nil {
		return err
	}

	ids, err := c.readIDs(ctx, sheet)
	if err != nil {
		return err
	}
	n := rowIndex(ids, id)
	if n == 0 {
		return nil
	}

	rng := fmt.Sprintf("%s!A%d:%s%d", sheet, n, lastColumn, n)
	_, err = c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear %s: %w", rng, err)
	}
	return nil
}

func (c *Client) readIDs(ctx context.Context, sheet string) ([][]any, error) {
	rng := fmt.Sprintf("%s!A:A", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// rowIndex returns the 1-based row whose first cell equals id, or 0.
func rowIndex(values [][]any, id string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == id {
			return i + 1
		}
	}
	return 0
}

func rowValues(r ports.Row) []any {
	recurring := "NO"
	if r.Recurring {
		recurring = "YES"
	}
	return []any{
		r.ID,
		r.Date.Format("2006-01-02"),
		r.Category,
		r.Description,
		r.Amount.StringFixed(int32(r.Currency.Fraction())),
		string(r.Currency),
		recurring,
		r.PaymentMethod,
		core.Display(r.Amount, r.Currency),
	}
}
