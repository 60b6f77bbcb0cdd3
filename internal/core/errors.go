package core

import (
	"errors"
	"fmt"
)

// ErrorKind tags a failure so callers can switch on it instead of matching messages.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindStorage
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Validation codes. Match with errors.Is.
var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidOwner      = errors.New("invalid user id")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrFutureDate        = errors.New("future date")
	ErrInvalidRange      = errors.New("invalid date range")
	ErrInvalidKind       = errors.New("invalid transaction type")
	ErrInvalidMonth      = errors.New("invalid month")

	ErrNotFound = errors.New("transaction not found")
)

// Error is the single error type crossing the ledger boundary.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalid(code error, msg string) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf("%w: %s", code, msg)}
}

// NotFoundError reports an absent (id, owner) pair.
func NotFoundError(op string, id int64, owner string) error {
	return &Error{
		Kind: KindNotFound,
		Op:   op,
		Err:  fmt.Errorf("%w: id %d for user %s", ErrNotFound, id, owner),
	}
}

// StorageError marks err as a failure of the underlying persistence.
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return KindOf(err) == KindNotFound }
func IsStorage(err error) bool    { return KindOf(err) == KindStorage }
