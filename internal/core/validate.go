package core

import (
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"

	MaxOwnerLen    = 30
	MaxCategoryLen = 20
)

// MaxAmount is the largest accepted transaction amount, inclusive.
var MaxAmount = decimal.NewFromInt(1_000_000)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid(ErrInvalidAmount, "amount must be a positive number")
	}
	if amount.GreaterThan(MaxAmount) {
		return invalid(ErrInvalidAmount, "amount must be less than or equal to 1,000,000")
	}
	return nil
}

func ValidateOwner(owner string) error {
	if n := utf8.RuneCountInString(owner); n < 1 || n > MaxOwnerLen {
		return invalid(ErrInvalidOwner, "user id must be between 1 and 30 characters long")
	}
	return nil
}

func ValidateCategory(category string) error {
	if n := utf8.RuneCountInString(category); n < 1 || n > MaxCategoryLen {
		return invalid(ErrInvalidCategory, "category must be between 1 and 20 characters long")
	}
	return nil
}

func ValidateKind(k Kind) error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return invalid(ErrInvalidKind, "type must be 'income' or 'expense'")
	}
}

// ValidateDate checks the fixed YYYY-MM-DD format and rejects calendar days
// after now's calendar day.
func ValidateDate(date string, now time.Time) error {
	if _, err := parseDate(date); err != nil {
		return err
	}
	if date > now.Format(DateLayout) {
		return invalid(ErrFutureDate, "date cannot be in the future")
	}
	return nil
}

func ValidateDateRange(start, end string) error {
	s, err := parseDate(start)
	if err != nil {
		return err
	}
	e, err := parseDate(end)
	if err != nil {
		return err
	}
	if s.After(e) {
		return invalid(ErrInvalidRange, "start date cannot be after end date")
	}
	return nil
}

func ValidateMonth(month string) error {
	if !monthPattern.MatchString(month) {
		return invalid(ErrInvalidMonth, "invalid month format, should be YYYY-MM")
	}
	if _, err := time.Parse(MonthLayout, month); err != nil {
		return invalid(ErrInvalidMonth, "invalid month format, should be YYYY-MM")
	}
	return nil
}

// Validate checks every field of a new or replacement record, stopping at the
// first violation. ID is not inspected.
func (t Transaction) Validate(now time.Time) error {
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if err := ValidateOwner(t.Owner); err != nil {
		return err
	}
	if err := ValidateCategory(t.Category); err != nil {
		return err
	}
	if err := ValidateDate(t.Date, now); err != nil {
		return err
	}
	return ValidateKind(t.Kind)
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, invalid(ErrInvalidDateFormat, "invalid date format, expected YYYY-MM-DD")
	}
	return d, nil
}
