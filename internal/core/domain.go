package core

import (
	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind classifies a transaction as money coming in or going out.
	Kind string

	Transaction struct {
		ID       int64 // Assigned by the store, zero until persisted
		Amount   decimal.Decimal
		Kind     Kind
		Category string
		Date     string // YYYY-MM-DD
		Owner    string
	}

	// Filter restricts a listing to an inclusive date window. Empty bounds are open.
	Filter struct {
		Start string
		End   string
	}
)

// ParseKind maps user input to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if err := ValidateKind(k); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) String() string {
	return string(k)
}

// Contains reports whether date falls inside the window. Dates are fixed-width
// ISO strings so lexical order is calendar order.
func (f Filter) Contains(date string) bool {
	if f.Start != "" && date < f.Start {
		return false
	}
	if f.End != "" && date > f.End {
		return false
	}
	return true
}

// IsZero reports whether the filter has no bounds at all.
func (f Filter) IsZero() bool {
	return f.Start == "" && f.End == ""
}
