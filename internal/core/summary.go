package core

import "github.com/shopspring/decimal"

// CategoryAmount is an amount summed under one category name.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// Summary is the aggregate view consumed by every presenter.
//
// CategoryTotals adds income and expense amounts into the same bucket; the
// console, PDF and sheet breakdowns print it that way. CategoryTotals keeps
// first-seen order.
type Summary struct {
	Count          int
	TotalIncome    decimal.Decimal
	TotalExpense   decimal.Decimal
	Balance        decimal.Decimal
	CategoryTotals []CategoryAmount
}

// IsEmpty reports the "no data" case, distinct from an aggregation failure.
func (s Summary) IsEmpty() bool {
	return s.Count == 0
}

// CategoryTotal returns the bucket for category, zero when absent.
func (s Summary) CategoryTotal(category string) decimal.Decimal {
	for _, c := range s.CategoryTotals {
		if c.Category == category {
			return c.Amount
		}
	}
	return decimal.Zero
}

// CategoryMap returns the category totals keyed by name.
func (s Summary) CategoryMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.CategoryTotals))
	for _, c := range s.CategoryTotals {
		m[c.Category] = c.Amount
	}
	return m
}

// Summarize folds records into a Summary in a single pass.
func Summarize(records []Transaction) Summary {
	s := Summary{
		Count:        len(records),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	acc := newCategoryAccumulator()
	for _, t := range records {
		switch t.Kind {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
		acc.add(t.Category, t.Amount)
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	s.CategoryTotals = acc.totals()
	return s
}

// ExpensesByCategory sums expense amounts only, per category.
func ExpensesByCategory(records []Transaction) []CategoryAmount {
	acc := newCategoryAccumulator()
	for _, t := range records {
		if t.Kind == Expense {
			acc.add(t.Category, t.Amount)
		}
	}
	return acc.totals()
}

type categoryAccumulator struct {
	index map[string]int
	out   []CategoryAmount
}

func newCategoryAccumulator() *categoryAccumulator {
	return &categoryAccumulator{index: map[string]int{}}
}

func (a *categoryAccumulator) add(category string, amount decimal.Decimal) {
	i, ok := a.index[category]
	if !ok {
		a.index[category] = len(a.out)
		a.out = append(a.out, CategoryAmount{Category: category, Amount: amount})
		return
	}
	a.out[i].Amount = a.out[i].Amount.Add(amount)
}

func (a *categoryAccumulator) totals() []CategoryAmount {
	if a.out == nil {
		return []CategoryAmount{}
	}
	return a.out
}
