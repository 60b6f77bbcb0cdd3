package backend

import (
	"context"

	"moneytracker/internal/ledger"
)

// BackendResult contains the opened store and, when configured, the event
// publisher. Both are owned by the caller once returned.
type BackendResult struct {
	Store     ledger.Store
	Publisher ledger.Publisher
}

// Factory creates backends based on configuration
type Factory interface {
	// CreateBackend opens the store described by config
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	DBPath string

	// Optional change events
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
