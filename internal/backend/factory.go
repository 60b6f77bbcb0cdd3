package backend

import (
	"context"
	"fmt"
	"sync"

	"moneytracker/internal/amqp"
	"moneytracker/internal/ledger"
	"moneytracker/internal/log"
	"moneytracker/internal/storage"
	"moneytracker/internal/storage/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger

	// The memory store is shared across CreateBackend calls so data
	// survives between commands in the same process.
	memOnce sync.Once
	mem     *memory.Store
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) *DefaultFactory {
	if logger == nil {
		logger = log.Nop()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var store ledger.Store
	switch config.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.DBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
		f.logger.DebugContext(ctx, "Initialized SQLite backend", log.FieldDBPath, config.DBPath)
	case MemoryBackend:
		f.memOnce.Do(func() { f.mem = memory.New() })
		store = sharedMemory{f.mem}
		f.logger.DebugContext(ctx, "Initialized memory backend")
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	result := &BackendResult{Store: store}

	// AMQP is optional: a broker outage must not block local bookkeeping.
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPRoutingKey, f.logger)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		} else {
			result.Publisher = client
			f.logger.DebugContext(ctx, "Initialized AMQP client",
				log.FieldExchange, config.AMQPExchange,
				log.FieldRoutingKey, config.AMQPRoutingKey)
		}
	}

	return result, nil
}

// sharedMemory keeps the factory's store open when a service closes it.
type sharedMemory struct {
	*memory.Store
}

func (sharedMemory) Close() error { return nil }
