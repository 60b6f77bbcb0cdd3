package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func tx(amount int64, kind Kind, category string) Transaction {
	return Transaction{Amount: decimal.NewFromInt(amount), Kind: kind, Category: category, Date: "2025-07-01", Owner: "u"}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]Transaction{
		tx(100, Income, "Salary"),
		tx(50, Expense, "Food"),
		tx(30, Expense, "Food"),
	})

	if s.Count != 3 {
		t.Fatalf("count = %d, want 3", s.Count)
	}
	checks := []struct {
		name string
		got  decimal.Decimal
		want int64
	}{
		{"total income", s.TotalIncome, 100},
		{"total expense", s.TotalExpense, 80},
		{"balance", s.Balance, 20},
		{"Salary", s.CategoryTotal("Salary"), 100},
		{"Food", s.CategoryTotal("Food"), 80},
	}
	for _, c := range checks {
		if !c.got.Equal(decimal.NewFromInt(c.want)) {
			t.Errorf("%s = %s, want %d", c.name, c.got, c.want)
		}
	}
	if len(s.CategoryTotals) != 2 || s.CategoryTotals[0].Category != "Salary" || s.CategoryTotals[1].Category != "Food" {
		t.Fatalf("unexpected category order: %+v", s.CategoryTotals)
	}
	if m := s.CategoryMap(); len(m) != 2 || !m["Food"].Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unexpected category map: %v", m)
	}
}

func TestSummarize_MixesKindsPerCategory(t *testing.T) {
	s := Summarize([]Transaction{
		tx(200, Income, "Side"),
		tx(20, Expense, "Side"),
	})
	if !s.CategoryTotal("Side").Equal(decimal.NewFromInt(220)) {
		t.Fatalf("expected income and expense summed together, got %s", s.CategoryTotal("Side"))
	}
	if !s.Balance.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("balance = %s, want 180", s.Balance)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if !s.IsEmpty() || s.Count != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
	if !s.TotalIncome.IsZero() || !s.TotalExpense.IsZero() || !s.Balance.IsZero() {
		t.Fatalf("expected zero sums, got %+v", s)
	}
	if len(s.CategoryTotals) != 0 {
		t.Fatalf("expected no categories, got %v", s.CategoryTotals)
	}
	if !s.CategoryTotal("missing").IsZero() {
		t.Fatal("missing category should be zero")
	}
}

func TestSummarize_DecimalPrecision(t *testing.T) {
	a := Transaction{Amount: decimal.RequireFromString("0.1"), Kind: Expense, Category: "x"}
	b := Transaction{Amount: decimal.RequireFromString("0.2"), Kind: Expense, Category: "x"}
	s := Summarize([]Transaction{a, b})
	if !s.TotalExpense.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("expected exact 0.3, got %s", s.TotalExpense)
	}
}

func TestExpensesByCategory(t *testing.T) {
	got := ExpensesByCategory([]Transaction{
		tx(100, Income, "Salary"),
		tx(40, Expense, "Rent"),
		tx(200, Income, "Rent"),
		tx(10, Expense, "Food"),
		tx(5, Expense, "Rent"),
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 expense categories, got %+v", got)
	}
	if got[0].Category != "Rent" || !got[0].Amount.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("unexpected first bucket: %+v", got[0])
	}
	if got[1].Category != "Food" || !got[1].Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected second bucket: %+v", got[1])
	}
	if out := ExpensesByCategory([]Transaction{tx(1, Income, "a")}); len(out) != 0 {
		t.Fatalf("income only should give no buckets, got %v", out)
	}
}
