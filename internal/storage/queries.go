package storage

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

// Transaction is the row shape of the transactions table.
type Transaction struct {
	ID       int64
	Amount   string
	Kind     string
	Category string
	Date     string
	UserID   string
}

const createTransaction = `
INSERT INTO transactions (amount, kind, category, date, user_id)
VALUES (?, ?, ?, ?, ?)
`

type CreateTransactionParams struct {
	Amount   string
	Kind     string
	Category string
	Date     string
	UserID   string
}

func (q *Queries) CreateTransaction(ctx context.Context, arg CreateTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createTransaction,
		arg.Amount,
		arg.Kind,
		arg.Category,
		arg.Date,
		arg.UserID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const getTransaction = `
SELECT id, amount, kind, category, date, user_id
FROM transactions
WHERE id = ? AND user_id = ?
`

func (q *Queries) GetTransaction(ctx context.Context, id int64, userID string) (Transaction, error) {
	row := q.db.QueryRowContext(ctx, getTransaction, id, userID)
	var i Transaction
	err := row.Scan(
		&i.ID,
		&i.Amount,
		&i.Kind,
		&i.Category,
		&i.Date,
		&i.UserID,
	)
	return i, err
}

// Empty bounds disable their predicate.
const listTransactions = `
SELECT id, amount, kind, category, date, user_id
FROM transactions
WHERE user_id = ?
  AND (? = '' OR date >= ?)
  AND (? = '' OR date <= ?)
ORDER BY id
`

type ListTransactionsParams struct {
	UserID    string
	StartDate string
	EndDate   string
}

func (q *Queries) ListTransactions(ctx context.Context, arg ListTransactionsParams) ([]Transaction, error) {
	rows, err := q.db.QueryContext(ctx, listTransactions,
		arg.UserID,
		arg.StartDate, arg.StartDate,
		arg.EndDate, arg.EndDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Transaction{}
	for rows.Next() {
		var i Transaction
		if err := rows.Scan(
			&i.ID,
			&i.Amount,
			&i.Kind,
			&i.Category,
			&i.Date,
			&i.UserID,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateTransaction = `
UPDATE transactions
SET amount = ?, kind = ?, category = ?, date = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND user_id = ?
`

type UpdateTransactionParams struct {
	Amount   string
	Kind     string
	Category string
	Date     string
	ID       int64
	UserID   string
}

func (q *Queries) UpdateTransaction(ctx context.Context, arg UpdateTransactionParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTransaction,
		arg.Amount,
		arg.Kind,
		arg.Category,
		arg.Date,
		arg.ID,
		arg.UserID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTransaction = `
DELETE FROM transactions
WHERE id = ? AND user_id = ?
`

func (q *Queries) DeleteTransaction(ctx context.Context, id int64, userID string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTransaction, id, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
