package domain

import "time"

// RedemptionState is the gift card redemption state machine. Idle,
// Confirming and Rejected never touch storage; Processing and Completed
// are persisted on the redemption record.
type RedemptionState string

const (
	RedemptionIdle       RedemptionState = "idle"
	RedemptionConfirming RedemptionState = "confirming"
	RedemptionRejected   RedemptionState = "rejected"
	RedemptionProcessing RedemptionState = "processing"
	RedemptionCompleted  RedemptionState = "completed"
)

// GiftCardRedemption records a coin spend on a simulated gift card.
// Immutable once completed.
type GiftCardRedemption struct {
	ID           string          `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	DollarAmount int             `db:"dollar_amount" json:"dollar_amount"`
	CoinCost     int64           `db:"coin_cost" json:"coin_cost"`
	Status       RedemptionState `db:"status" json:"status"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	CompletedAt  *time.Time      `db:"completed_at" json:"completed_at,omitempty"`
}

// GiftCard is the synthetic card produced when a redemption completes.
// The number is a fixed prefix plus a random 12-digit suffix; it never
// corresponds to a real payment instrument.
type GiftCard struct {
	ID           string    `db:"id" json:"id"`
	RedemptionID string    `db:"redemption_id" json:"redemption_id"`
	UserID       int64     `db:"user_id" json:"user_id"`
	DollarAmount int       `db:"dollar_amount" json:"dollar_amount"`
	CardNumber   string    `db:"card_number" json:"card_number"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	RedeemedAt   time.Time `db:"redeemed_at" json:"redeemed_at"`
}

// UserUnlock is a persisted feature flag flipped by redeeming a
// non-monetary catalog reward. Redeeming twice just re-sets the flag.
type UserUnlock struct {
	UserID     int64     `db:"user_id" json:"user_id"`
	Reward     string    `db:"reward" json:"reward"`
	UnlockedAt time.Time `db:"unlocked_at" json:"unlocked_at"`
}
