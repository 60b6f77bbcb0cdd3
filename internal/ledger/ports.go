package ledger

import (
	"context"

	"moneytracker/internal/core"
)

// Ports for outbound adapters.
type (
	// Store persists transactions. Every lookup is scoped to (id, owner);
	// a record owned by someone else is reported as absent.
	Store interface {
		Create(ctx context.Context, t core.Transaction) (id int64, err error)
		Get(ctx context.Context, id int64, owner string) (t core.Transaction, found bool, err error)
		// List returns owner's records in insertion order, restricted by f.
		List(ctx context.Context, owner string, f core.Filter) ([]core.Transaction, error)
		Update(ctx context.Context, id int64, owner string, t core.Transaction) (affected bool, err error)
		Delete(ctx context.Context, id int64, owner string) (affected bool, err error)
		Close() error
	}

	// Publisher announces applied changes to interested consumers.
	Publisher interface {
		PublishTransactionEvent(ctx context.Context, action core.Action, t core.Transaction) error
		Close() error
	}
)
