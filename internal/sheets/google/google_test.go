package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"moneytracker/internal/core"
	ports "moneytracker/internal/sheets"
)

type fakeWriter struct {
	mu       sync.Mutex
	cleared  []string
	updates  map[string][][]any
	clearErr error
	failOn   string
}

func (f *fakeWriter) ClearRange(_ context.Context, rng string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, rng)
	return f.clearErr
}

func (f *fakeWriter) UpdateRange(_ context.Context, rng string, values [][]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updates == nil {
		f.updates = map[string][][]any{}
	}
	if f.failOn != "" && strings.HasSuffix(rng, f.failOn) {
		return errors.New("quota exceeded")
	}
	f.updates[rng] = values
	return nil
}

func sampleExport() ports.SummaryExport {
	txs := []core.Transaction{
		{ID: 1, Amount: decimal.NewFromInt(100), Kind: core.Income, Category: "Salary", Date: "2025-07-01", Owner: "alice"},
		{ID: 2, Amount: decimal.RequireFromString("49.50"), Kind: core.Expense, Category: "Food", Date: "2025-07-02", Owner: "alice"},
	}
	return ports.SummaryExport{
		UserID:       "alice",
		StartDate:    "2025-07-01",
		EndDate:      "2025-07-31",
		Summary:      core.Summarize(txs),
		Transactions: txs,
	}
}

func TestExportSummary(t *testing.T) {
	w := &fakeWriter{}
	c := newClient(w, Config{SpreadsheetID: "sheet-123", SheetName: "July's"}, nil)

	ref, err := c.ExportSummary(context.Background(), sampleExport())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if ref != "https://docs.google.com/spreadsheets/d/sheet-123" {
		t.Fatalf("unexpected ref %q", ref)
	}
	if len(w.cleared) != 1 || w.cleared[0] != "'July''s'!A:H" {
		t.Fatalf("unexpected clear calls: %v", w.cleared)
	}

	summary := w.updates["'July''s'!A1"]
	if len(summary) != 11 {
		t.Fatalf("expected 9 header rows + 2 categories, got %d: %v", len(summary), summary)
	}
	if summary[2][1] != "2025-07-01 to 2025-07-31" || summary[3][1] != 2 || summary[6][1] != 50.5 {
		t.Fatalf("unexpected summary block: %v", summary)
	}
	if summary[9][0] != "Salary" || summary[10][0] != "Food" || summary[10][1] != 49.5 {
		t.Fatalf("unexpected category rows: %v", summary[9:])
	}

	txRows := w.updates["'July''s'!D1"]
	if len(txRows) != 3 || txRows[0][0] != "ID" || txRows[2][2] != "expense" || txRows[2][0] != int64(2) {
		t.Fatalf("unexpected transaction rows: %v", txRows)
	}
}

func TestExportSummary_Errors(t *testing.T) {
	if _, err := (&Client{}).ExportSummary(context.Background(), sampleExport()); err == nil {
		t.Fatal("expected error without a writer")
	}

	c := newClient(&fakeWriter{clearErr: errors.New("forbidden")}, Config{SpreadsheetID: "s", SheetName: "S"}, nil)
	if _, err := c.ExportSummary(context.Background(), sampleExport()); err == nil || !strings.Contains(err.Error(), "clear sheet") {
		t.Fatalf("expected clear error, got %v", err)
	}

	c = newClient(&fakeWriter{failOn: "!D1"}, Config{SpreadsheetID: "s", SheetName: "S"}, nil)
	if _, err := c.ExportSummary(context.Background(), sampleExport()); err == nil || !strings.Contains(err.Error(), "write transactions") {
		t.Fatalf("expected transactions write error, got %v", err)
	}
}

func TestNewClient_RequiresConfig(t *testing.T) {
	ctx := context.Background()
	if _, err := NewClient(ctx, Config{SheetName: "S", CredentialsJSON: "{}"}, nil); err == nil || err.Error() != "missing spreadsheet ID" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewClient(ctx, Config{SpreadsheetID: "s"}, nil); err == nil || err.Error() != "missing sheet name" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewClient(ctx, Config{SpreadsheetID: "s", SheetName: "S"}, nil); err == nil || err.Error() != "missing service account credentials" {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewClient(ctx, Config{SpreadsheetID: "s", SheetName: "S", CredentialsFile: "/does/not/exist.json"}, nil); err == nil || !strings.Contains(err.Error(), "read service account file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPeriod(t *testing.T) {
	cases := map[string]ports.SummaryExport{
		"all time":                 {},
		"from 2025-07-01":          {StartDate: "2025-07-01"},
		"until 2025-07-31":         {EndDate: "2025-07-31"},
		"2025-07-01 to 2025-07-31": {StartDate: "2025-07-01", EndDate: "2025-07-31"},
	}
	for want, e := range cases {
		if got := e.Period(); got != want {
			t.Fatalf("Period() = %q, want %q", got, want)
		}
	}
}

func TestServiceWriter_StoresCellsRaw(t *testing.T) {
	var (
		mu      sync.Mutex
		options []string
		clears  int
		cells   []any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":clear"):
			clears++
		case r.Method == http.MethodPut:
			options = append(options, r.URL.Query().Get("valueInputOption"))
			var vr gsheet.ValueRange
			if err := json.NewDecoder(r.Body).Decode(&vr); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for _, row := range vr.Values {
				cells = append(cells, row...)
			}
		default:
			http.Error(w, "unexpected request "+r.Method+" "+r.URL.Path, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	ctx := context.Background()
	svc, err := gsheet.NewService(ctx,
		goption.WithEndpoint(srv.URL+"/"),
		goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("create service: %v", err)
	}

	e := sampleExport()
	e.Transactions[1].Category = "=IMPORTXML(A1)"
	e.Summary = core.Summarize(e.Transactions)

	c := newClient(serviceWriter{svc: svc, spreadsheetID: "sheet-1"}, Config{SpreadsheetID: "sheet-1", SheetName: "Summary"}, nil)
	if _, err := c.ExportSummary(ctx, e); err != nil {
		t.Fatalf("export: %v", err)
	}

	if clears != 1 || len(options) != 2 {
		t.Fatalf("expected 1 clear and 2 updates, got %d clears, options %v", clears, options)
	}
	for _, opt := range options {
		if opt != "RAW" {
			t.Fatalf("cells must be written RAW, got %q", opt)
		}
	}
	found := false
	for _, c := range cells {
		if c == "=IMPORTXML(A1)" {
			found = true
		}
	}
	if !found {
		t.Fatalf("formula-like category not sent verbatim: %v", cells)
	}
}
