package domain

import "time"

// TransactionKind tells whether a ledger entry added or removed coins.
type TransactionKind string

const (
	TransactionCredit TransactionKind = "credit"
	TransactionDebit  TransactionKind = "debit"
)

// Transaction is one entry in a user's coin history. Amount is always
// positive; the kind carries the sign.
type Transaction struct {
	ID          int64           `db:"id" json:"id"`
	UserID      int64           `db:"user_id" json:"user_id"`
	Description string          `db:"description" json:"description"`
	Amount      int64           `db:"amount" json:"amount"`
	Kind        TransactionKind `db:"kind" json:"kind"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// TransactionHistoryLimit caps how many entries are kept per user.
// Older entries are pruned when a new one is appended.
const TransactionHistoryLimit = 10
