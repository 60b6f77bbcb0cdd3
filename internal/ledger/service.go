// Package ledger is the entry point for every ledger operation. It validates
// input, delegates to a Store and tags failures with a core.ErrorKind.
package ledger

import (
	"context"
	"fmt"
	"time"

	"moneytracker/internal/core"
	"moneytracker/internal/log"
)

type Service struct {
	store     Store
	publisher Publisher
	logger    *log.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithPublisher enables change events. A nil publisher leaves them off.
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithClock overrides the clock used for future-date checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(store Store, logger *log.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = log.Nop()
	}
	s := &Service{
		store:  store,
		logger: logger.WithComponent(log.ComponentLedger),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTransaction validates t and persists it. Any ID on t is ignored; the
// store-assigned ID is returned.
func (s *Service) AddTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	t.ID = 0
	if err := t.Validate(s.now()); err != nil {
		s.logFailure(ctx, log.OpCreate, err)
		return 0, err
	}

	id, err := s.store.Create(ctx, t)
	if err != nil {
		err = core.StorageError(log.OpCreate, err)
		s.logFailure(ctx, log.OpCreate, err)
		return 0, err
	}
	t.ID = id

	s.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().
			WithUser(t.Owner).
			WithTransaction(t.Amount, t.Kind.String(), t.Category, t.Date).
			ToSlice()...)
	s.publish(ctx, core.ActionCreated, t)

	return id, nil
}

// GetTransaction returns the record for (id, owner); found is false otherwise.
func (s *Service) GetTransaction(ctx context.Context, id int64, owner string) (core.Transaction, bool, error) {
	if err := core.ValidateOwner(owner); err != nil {
		return core.Transaction{}, false, err
	}
	t, found, err := s.store.Get(ctx, id, owner)
	if err != nil {
		err = core.StorageError(log.OpRead, err)
		s.logFailure(ctx, log.OpRead, err)
		return core.Transaction{}, false, err
	}
	if !found {
		s.logger.WarnContext(ctx, "No transaction found", log.FieldID, id, log.FieldUserID, owner)
	}
	return t, found, nil
}

// ListTransactions returns owner's transactions, optionally bounded by
// start and/or end (inclusive, YYYY-MM-DD; empty means open).
func (s *Service) ListTransactions(ctx context.Context, owner, start, end string) ([]core.Transaction, error) {
	f := core.Filter{Start: start, End: end}
	if err := s.validateQuery(owner, f); err != nil {
		s.logFailure(ctx, log.OpList, err)
		return nil, err
	}

	txs, err := s.store.List(ctx, owner, f)
	if err != nil {
		err = core.StorageError(log.OpList, err)
		s.logFailure(ctx, log.OpList, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Listed transactions",
		append(log.NewFields().WithUser(owner).WithPeriod(start, end).ToSlice(), log.FieldCount, len(txs))...)
	return txs, nil
}

// UpdateTransaction replaces amount, kind, category and date of (id, owner).
// It reports false when no such record exists.
func (s *Service) UpdateTransaction(ctx context.Context, id int64, owner string, t core.Transaction) (bool, error) {
	t.ID = id
	t.Owner = owner
	if err := t.Validate(s.now()); err != nil {
		s.logFailure(ctx, log.OpUpdate, err)
		return false, err
	}

	ok, err := s.store.Update(ctx, id, owner, t)
	if err != nil {
		err = core.StorageError(log.OpUpdate, err)
		s.logFailure(ctx, log.OpUpdate, err)
		return false, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "No transaction to update", log.FieldID, id, log.FieldUserID, owner)
		return false, nil
	}

	s.logger.InfoContext(ctx, "Transaction updated", log.FieldID, id, log.FieldUserID, owner)
	s.publish(ctx, core.ActionUpdated, t)
	return true, nil
}

// DeleteTransaction physically removes (id, owner). Deleting an absent pair
// reports false, every time.
func (s *Service) DeleteTransaction(ctx context.Context, id int64, owner string) (bool, error) {
	if err := core.ValidateOwner(owner); err != nil {
		s.logFailure(ctx, log.OpDelete, err)
		return false, err
	}

	ok, err := s.store.Delete(ctx, id, owner)
	if err != nil {
		err = core.StorageError(log.OpDelete, err)
		s.logFailure(ctx, log.OpDelete, err)
		return false, err
	}
	if !ok {
		s.logger.WarnContext(ctx, "No transaction to delete", log.FieldID, id, log.FieldUserID, owner)
		return false, nil
	}

	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldID, id, log.FieldUserID, owner)
	s.publish(ctx, core.ActionDeleted, core.Transaction{ID: id, Owner: owner})
	return true, nil
}

// Summary aggregates the same selection ListTransactions would return.
func (s *Service) Summary(ctx context.Context, owner, start, end string) (core.Summary, error) {
	txs, err := s.ListTransactions(ctx, owner, start, end)
	if err != nil {
		return core.Summary{}, err
	}
	sum := core.Summarize(txs)

	s.logger.InfoContext(ctx, "Generated summary",
		log.FieldOperation, log.OpSummary,
		log.FieldUserID, owner,
		"income", sum.TotalIncome.String(),
		"expense", sum.TotalExpense.String(),
		log.FieldCount, sum.Count)
	return sum, nil
}

// Close releases the store and the publisher.
func (s *Service) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}

func (s *Service) validateQuery(owner string, f core.Filter) error {
	if err := core.ValidateOwner(owner); err != nil {
		return err
	}
	return core.ValidateBounds(f, s.now())
}

// publish never fails the caller: the change is already committed.
func (s *Service) publish(ctx context.Context, action core.Action, t core.Transaction) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, action, t); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			log.FieldID, t.ID,
			log.FieldOperation, log.OpPublish,
			log.FieldError, err)
	}
}

func (s *Service) logFailure(ctx context.Context, op string, err error) {
	s.logger.ErrorContext(ctx, "Ledger operation failed",
		log.FieldOperation, op,
		log.FieldErrorKind, core.KindOf(err).String(),
		log.FieldError, err)
}
