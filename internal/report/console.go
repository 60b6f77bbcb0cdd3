// Package report renders ledger summaries for people: console text, PDF
// documents and spending charts.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"moneytracker/internal/core"
)

const rule = "--------------------------------------------------"

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NoTransactions is the message shown when a query matched nothing.
func NoTransactions(owner string) string {
	return fmt.Sprintf("No transactions found for user %s", owner)
}

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteTransactions prints one line per transaction between two rules.
func WriteTransactions(w io.Writer, owner string, txs []core.Transaction) error {
	p := &printer{w: w}
	p.printf("\nTransactions for user %s:\n%s\n", owner, rule)
	for _, t := range txs {
		p.printf("ID: %d, Amount: %s, Type: %s, Category: %s, Date: %s\n",
			t.ID, Money(t.Amount), t.Kind, t.Category, t.Date)
	}
	p.printf("%s\n", rule)
	return p.err
}

// WriteSummary prints totals and the category breakdown as plain lines.
func WriteSummary(w io.Writer, owner string, s core.Summary) error {
	p := &printer{w: w}
	p.printf("\nSummary for user %s:\n%s\n", owner, rule)
	p.printf("Total Income: %s\n", Money(s.TotalIncome))
	p.printf("Total Expense: %s\n", Money(s.TotalExpense))
	p.printf("Balance: %s\n", Money(s.Balance))
	p.printf("\nCategory Breakdown:\n")
	for _, c := range s.CategoryTotals {
		p.printf("%s: %s\n", c.Category, Money(c.Amount))
	}
	p.printf("%s\n", rule)
	return p.err
}

// WriteSummaryTable prints the summary as two aligned tables.
func WriteSummaryTable(w io.Writer, owner string, s core.Summary) error {
	p := &printer{w: w}

	p.printf("Summary for User %s\n", owner)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Metric\tValue\t")
	fmt.Fprintf(tw, "%s\t%s\t\n", strings.Repeat("-", 17), strings.Repeat("-", 12))
	fmt.Fprintf(tw, "Total Income\t%s\t\n", Money(s.TotalIncome))
	fmt.Fprintf(tw, "Total Expense\t%s\t\n", Money(s.TotalExpense))
	fmt.Fprintf(tw, "Balance\t%s\t\n", Money(s.Balance))
	fmt.Fprintf(tw, "Transaction Count\t%d\t\n", s.Count)
	if p.err == nil {
		p.err = tw.Flush()
	}

	p.printf("\nCategory Breakdown\n")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Category\tAmount\t")
	fmt.Fprintf(tw, "%s\t%s\t\n", strings.Repeat("-", 17), strings.Repeat("-", 12))
	for _, c := range s.CategoryTotals {
		fmt.Fprintf(tw, "%s\t%s\t\n", c.Category, Money(c.Amount))
	}
	if p.err == nil {
		p.err = tw.Flush()
	}
	return p.err
}
