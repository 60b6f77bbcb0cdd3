package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"moneytracker/internal/core"
)

func sampleTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: 4, Amount: decimal.NewFromInt(100), Kind: core.Income, Category: "Salary", Date: "2025-07-01", Owner: "alice"},
		{ID: 7, Amount: decimal.NewFromInt(50), Kind: core.Expense, Category: "Food", Date: "2025-07-02", Owner: "alice"},
		{ID: 9, Amount: decimal.NewFromInt(30), Kind: core.Expense, Category: "Food", Date: "2025-07-03", Owner: "alice"},
	}
}

func TestWriteTransactions(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTransactions(&buf, "alice", sampleTransactions()); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"\nTransactions for user alice:\n" + rule + "\n",
		"ID: 4, Amount: 100.00, Type: income, Category: Salary, Date: 2025-07-01\n",
		"ID: 9, Amount: 30.00, Type: expense, Category: Food, Date: 2025-07-03\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, rule+"\n") {
		t.Errorf("output should end with a rule:\n%s", out)
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummary(&buf, "alice", core.Summarize(sampleTransactions())); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "\nSummary for user alice:\n" + rule + "\n" +
		"Total Income: 100.00\n" +
		"Total Expense: 80.00\n" +
		"Balance: 20.00\n" +
		"\nCategory Breakdown:\n" +
		"Salary: 100.00\n" +
		"Food: 80.00\n" +
		rule + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryTable(&buf, "alice", core.Summarize(sampleTransactions())); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Summary for User alice", "Transaction Count", "Category Breakdown", "Food", "80.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Salary") > strings.Index(out, "Food") {
		t.Errorf("categories should keep first-seen order:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteSummary_PropagatesWriteError(t *testing.T) {
	if err := WriteSummary(failingWriter{}, "alice", core.Summary{}); err == nil {
		t.Fatal("expected write error")
	}
	if err := WriteSummaryTable(failingWriter{}, "alice", core.Summary{}); err == nil {
		t.Fatal("expected write error")
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, core.Summarize(sampleTransactions())); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
}

func TestBuildPDF_BreaksPages(t *testing.T) {
	s := core.Summary{}
	for i := range 60 {
		s.CategoryTotals = append(s.CategoryTotals, core.CategoryAmount{
			Category: "cat" + string(rune('A'+i%26)),
			Amount:   decimal.NewFromInt(int64(i + 1)),
		})
	}
	if pages := buildPDF(s).PageCount(); pages < 2 {
		t.Fatalf("expected a page break for 60 categories, got %d page(s)", pages)
	}
	if pages := buildPDF(core.Summarize(sampleTransactions())).PageCount(); pages != 1 {
		t.Fatalf("expected a single page, got %d", pages)
	}
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pdf")
	got, err := SavePDF(path, core.Summarize(sampleTransactions()))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if got != path {
		t.Fatalf("SavePDF returned %q, want %q", got, path)
	}
	b, err := os.ReadFile(path)
	if err != nil || !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Fatalf("file is not a PDF (err=%v)", err)
	}
}

func TestSavePDF_DefaultPath(t *testing.T) {
	t.Chdir(t.TempDir())
	got, err := SavePDF("", core.Summary{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(got) != DefaultPDFName {
		t.Fatalf("unexpected default path %q", got)
	}
	if _, err := os.Stat(got); err != nil {
		t.Fatalf("default file missing: %v", err)
	}
}

func TestWriteExpenseChart(t *testing.T) {
	var buf bytes.Buffer
	expenses := core.ExpensesByCategory(sampleTransactions())
	if err := WriteExpenseChart(&buf, "alice", expenses); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
}

func TestSaveExpenseChart(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.png")
	one := []core.CategoryAmount{{Category: "Rent", Amount: decimal.NewFromInt(900)}}
	if err := SaveExpenseChart(path, "alice", one); err != nil {
		t.Fatalf("save: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("chart not written (err=%v)", err)
	}

	empty := filepath.Join(dir, "empty.png")
	if err := SaveExpenseChart(empty, "alice", nil); !errors.Is(err, ErrNoExpenses) {
		t.Fatalf("expected ErrNoExpenses, got %v", err)
	}
	if _, err := os.Stat(empty); !os.IsNotExist(err) {
		t.Fatal("no file should be created without expenses")
	}
}

func TestChartFileName(t *testing.T) {
	now := time.Date(2025, 7, 15, 18, 30, 5, 0, time.UTC)
	tests := []struct {
		owner string
		want  string
	}{
		{"alice", "category_spending_alice_20250715_183005.png"},
		{"../x", "category_spending_.._x_20250715_183005.png"},
		{`a/b\c`, "category_spending_a_b_c_20250715_183005.png"},
	}
	for _, tt := range tests {
		got := ChartFileName(tt.owner, now)
		if got != tt.want {
			t.Errorf("ChartFileName(%q) = %q, want %q", tt.owner, got, tt.want)
		}
		if filepath.Base(got) != got {
			t.Errorf("ChartFileName(%q) escapes the working directory: %q", tt.owner, got)
		}
	}
}
