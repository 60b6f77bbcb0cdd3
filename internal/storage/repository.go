package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"moneytracker/internal/core"
	"moneytracker/internal/log"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	logger  *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentStorage)
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps reads consistent with the preceding write.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		logger.Error("Migration failed",
			log.FieldOperation, log.OpMigrate,
			log.FieldDBPath, dbPath,
			log.FieldError, err)
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Debug("Schema up to date", log.FieldOperation, log.OpMigrate, log.FieldDBPath, dbPath)

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		logger:  logger,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, t core.Transaction) (int64, error) {
	id, err := r.queries.CreateTransaction(ctx, CreateTransactionParams{
		Amount:   t.Amount.String(),
		Kind:     string(t.Kind),
		Category: t.Category,
		Date:     t.Date,
		UserID:   t.Owner,
	})
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}

	r.logger.DebugContext(ctx, "Transaction saved to SQLite",
		log.FieldID, id,
		log.FieldUserID, t.Owner,
		log.FieldAmount, t.Amount.String(),
		log.FieldDate, t.Date)

	return id, nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id int64, owner string) (core.Transaction, bool, error) {
	row, err := r.queries.GetTransaction(ctx, id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, false, nil
	}
	if err != nil {
		return core.Transaction{}, false, fmt.Errorf("get transaction by id: %w", err)
	}
	t, err := row.toCore()
	if err != nil {
		return core.Transaction{}, false, err
	}
	return t, true, nil
}

func (r *SQLiteRepository) List(ctx context.Context, owner string, f core.Filter) ([]core.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx, ListTransactionsParams{
		UserID:    owner,
		StartDate: f.Start,
		EndDate:   f.End,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		if out[i], err = row.toCore(); err != nil {
			return nil, err
		}
	}

	r.logger.DebugContext(ctx, "Read transactions from SQLite",
		log.FieldUserID, owner,
		log.FieldCount, len(out))

	return out, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, owner string, t core.Transaction) (bool, error) {
	n, err := r.queries.UpdateTransaction(ctx, UpdateTransactionParams{
		Amount:   t.Amount.String(),
		Kind:     string(t.Kind),
		Category: t.Category,
		Date:     t.Date,
		ID:       id,
		UserID:   owner,
	})
	if err != nil {
		return false, fmt.Errorf("update transaction: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int64, owner string) (bool, error) {
	n, err := r.queries.DeleteTransaction(ctx, id, owner)
	if err != nil {
		return false, fmt.Errorf("delete transaction: %w", err)
	}
	return n > 0, nil
}

func (t Transaction) toCore() (core.Transaction, error) {
	amount, err := decimal.NewFromString(t.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("decode amount of transaction %d: %w", t.ID, err)
	}
	return core.Transaction{
		ID:       t.ID,
		Amount:   amount,
		Kind:     core.Kind(t.Kind),
		Category: t.Category,
		Date:     t.Date,
		Owner:    t.UserID,
	}, nil
}
