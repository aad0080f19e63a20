package repository

import (
	"context"
	"errors"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// LedgerRepository owns the coin balance and the transaction history.
// Every mutation runs in one database transaction: balance update plus
// history append plus pruning to the most recent entries.
type LedgerRepository struct {
	db *pgxpool.Pool
}

func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Balance returns the user's current coin balance.
func (r *LedgerRepository) Balance(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRow(ctx, `SELECT coins FROM users WHERE id = $1`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return balance, nil
}

// Credit adds coins and appends a credit transaction.
func (r *LedgerRepository) Credit(ctx context.Context, userID, amount int64, description string) (newBalance int64, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`UPDATE users SET coins = coins + $1 WHERE id = $2 RETURNING coins`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	if err = appendTransaction(ctx, tx, userID, description, amount, domain.TransactionCredit); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}

// Debit removes coins and appends a debit transaction. A debit that
// would push the balance negative is rejected, never clamped.
func (r *LedgerRepository) Debit(ctx context.Context, userID, amount int64, description string) (newBalance int64, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`UPDATE users SET coins = coins - $1 WHERE id = $2 AND coins >= $1 RETURNING coins`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrUserNotFound
			}
			return 0, ErrInsufficientBalance
		}
		return 0, err
	}

	if err = appendTransaction(ctx, tx, userID, description, amount, domain.TransactionDebit); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}

// RecentTransactions returns the newest entries first.
func (r *LedgerRepository) RecentTransactions(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	if limit <= 0 || limit > domain.TransactionHistoryLimit {
		limit = domain.TransactionHistoryLimit
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, description, amount, kind, created_at
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &t.Kind, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

// appendTransaction inserts a history entry and prunes the user's
// history down to the most recent TransactionHistoryLimit rows.
func appendTransaction(ctx context.Context, tx pgx.Tx, userID int64, description string, amount int64, kind domain.TransactionKind) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO transactions (user_id, description, amount, kind)
		 VALUES ($1, $2, $3, $4)`,
		userID, description, amount, kind,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM transactions
		 WHERE user_id = $1
		   AND id NOT IN (
			SELECT id FROM transactions
			WHERE user_id = $1
			ORDER BY id DESC
			LIMIT $2
		   )`,
		userID, domain.TransactionHistoryLimit,
	)
	return err
}
