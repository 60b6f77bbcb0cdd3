package core

import (
	"errors"
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		now       time.Time
		wantStart string
		wantEnd   string
		wantErr   error
	}{
		{"past month", "2025-06", fixedNow, "2025-06-01", "2025-06-30", nil},
		{"leap february", "2024-02", fixedNow, "2024-02-01", "2024-02-29", nil},
		{"current month clamps to today", "2025-07", fixedNow, "2025-07-01", "2025-07-15", nil},
		{"december", "2024-12", fixedNow, "2024-12-01", "2024-12-31", nil},
		{"bad format", "2025-7", fixedNow, "", "", ErrInvalidMonth},
		{"bad month number", "2025-13", fixedNow, "", "", ErrInvalidMonth},
		{"full date", "2025-07-01", fixedNow, "", "", ErrInvalidMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthRange(tt.month, tt.now)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("got %s..%s, want %s..%s", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestValidateBounds(t *testing.T) {
	if err := ValidateBounds(Filter{}, fixedNow); err != nil {
		t.Fatalf("open filter should pass, got %v", err)
	}
	if err := ValidateBounds(Filter{Start: "2025-07-01"}, fixedNow); err != nil {
		t.Fatalf("start only should pass, got %v", err)
	}
	if err := ValidateBounds(Filter{End: "2025-08-01"}, fixedNow); !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
	if err := ValidateBounds(Filter{Start: "2025-07-10", End: "2025-07-01"}, fixedNow); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := ValidateBounds(Filter{Start: "07/01/2025"}, fixedNow); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}
