package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"moneytracker/internal/core"
	"moneytracker/internal/log"
	ports "moneytracker/internal/sheets"
)

var _ ports.SummaryExporter = (*Client)(nil)

// Config selects the target spreadsheet and service account credentials.
// CredentialsJSON wins over CredentialsFile.
type Config struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsJSON string
	CredentialsFile string
}

// rangeWriter is the slice of the Sheets values API the exporter needs.
type rangeWriter interface {
	ClearRange(ctx context.Context, rng string) error
	UpdateRange(ctx context.Context, rng string, values [][]any) error
}

type Client struct {
	writer        rangeWriter
	spreadsheetID string
	sheetName     string
	logger        *log.Logger
}

// NewClient creates a Sheets client authenticated with a service account.
func NewClient(ctx context.Context, cfg Config, logger *log.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(cfg.SheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	creds, err := credentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return newClient(serviceWriter{svc: svc, spreadsheetID: cfg.SpreadsheetID}, cfg, logger), nil
}

func newClient(w rangeWriter, cfg Config, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Nop()
	}
	return &Client{
		writer:        w,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     cfg.SheetName,
		logger:        logger.WithComponent(log.ComponentSheets),
	}
}

func credentials(cfg Config) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials")
	}
}

// ExportSummary replaces the sheet's content with the summary block in
// columns A:B and the transaction listing in columns D:H.
func (c *Client) ExportSummary(ctx context.Context, e ports.SummaryExport) (string, error) {
	if c.writer == nil {
		return "", errors.New("sheets service not initialized")
	}

	sheet := quoteSheet(c.sheetName)
	if err := c.writer.ClearRange(ctx, sheet+"!A:H"); err != nil {
		return "", fmt.Errorf("clear sheet %s: %w", c.sheetName, err)
	}

	summaryRange := sheet + "!A1"
	txRange := sheet + "!D1"

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := c.writer.UpdateRange(gctx, summaryRange, summaryValues(e)); err != nil {
			return fmt.Errorf("write summary to %s: %w", summaryRange, err)
		}
		return nil
	})
	g.Go(func() error {
		if err := c.writer.UpdateRange(gctx, txRange, transactionValues(e.Transactions)); err != nil {
			return fmt.Errorf("write transactions to %s: %w", txRange, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	c.logger.InfoContext(ctx, "Exported summary to Google Sheets",
		log.FieldUserID, e.UserID,
		log.FieldSheetsRange, sheet+"!A:H",
		log.FieldCount, e.Summary.Count)

	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", c.spreadsheetID), nil
}

func summaryValues(e ports.SummaryExport) [][]any {
	s := e.Summary
	rows := [][]any{
		{"Transaction Summary Report"},
		{"User", e.UserID},
		{"Period", e.Period()},
		{"Total Transactions", s.Count},
		{"Total Income", s.TotalIncome.InexactFloat64()},
		{"Total Expense", s.TotalExpense.InexactFloat64()},
		{"Balance", s.Balance.InexactFloat64()},
		{},
		{"Category", "Amount"},
	}
	for _, c := range s.CategoryTotals {
		rows = append(rows, []any{c.Category, c.Amount.InexactFloat64()})
	}
	return rows
}

func transactionValues(txs []core.Transaction) [][]any {
	rows := make([][]any, 0, len(txs)+1)
	rows = append(rows, []any{"ID", "Date", "Type", "Category", "Amount"})
	for _, t := range txs {
		rows = append(rows, []any{t.ID, t.Date, t.Kind.String(), t.Category, t.Amount.InexactFloat64()})
	}
	return rows
}

func quoteSheet(name string) string {
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

// valueInputOption stores cells as given, so category text such as
// "=IMPORTXML(...)" is never evaluated as a formula.
const valueInputOption = "RAW"

type serviceWriter struct {
	svc           *gsheet.Service
	spreadsheetID string
}

func (w serviceWriter) ClearRange(ctx context.Context, rng string) error {
	_, err := w.svc.Spreadsheets.Values.Clear(w.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (w serviceWriter) UpdateRange(ctx context.Context, rng string, values [][]any) error {
	vr := &gsheet.ValueRange{Values: values}
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, rng, vr).
		ValueInputOption(valueInputOption).Context(ctx).Do()
	return err
}
