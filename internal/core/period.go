package core

import "time"

// MonthRange returns the first day of month and the last day of month clamped
// to today, both as YYYY-MM-DD.
func MonthRange(month string, now time.Time) (start, end string, err error) {
	if err := ValidateMonth(month); err != nil {
		return "", "", err
	}
	first, _ := time.Parse(MonthLayout, month)
	last := first.AddDate(0, 1, -1)

	start = first.Format(DateLayout)
	end = last.Format(DateLayout)
	if today := now.Format(DateLayout); end > today {
		end = today
	}
	return start, end, nil
}

// ValidateBounds validates optional listing bounds: each present bound must be
// a past-or-today date, and the pair must be ordered when both are present.
func ValidateBounds(f Filter, now time.Time) error {
	if f.Start != "" {
		if err := ValidateDate(f.Start, now); err != nil {
			return err
		}
	}
	if f.End != "" {
		if err := ValidateDate(f.End, now); err != nil {
			return err
		}
	}
	if f.Start != "" && f.End != "" {
		return ValidateDateRange(f.Start, f.End)
	}
	return nil
}
