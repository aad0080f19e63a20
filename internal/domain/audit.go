package domain

import "time"

// AuditLog records a notable user action for later review.
type AuditLog struct {
	ID        int64                  `db:"id" json:"id"`
	UserID    int64                  `db:"user_id" json:"user_id"`
	Action    string                 `db:"action" json:"action"`
	Category  string                 `db:"category" json:"category"`
	Details   map[string]interface{} `db:"details" json:"details"`
	IP        string                 `db:"ip" json:"ip,omitempty"`
	UserAgent string                 `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// Audit categories
const (
	AuditCategoryAuth       = "auth"
	AuditCategoryLedger     = "ledger"
	AuditCategoryRedemption = "redemption"
)

// Audit actions
const (
	AuditActionRegister = "register"
	AuditActionLogin    = "login"

	AuditActionCoinsAwarded        = "coins_awarded"
	AuditActionAchievementUnlocked = "achievement_unlocked"
	AuditActionDailyBonus          = "daily_bonus"

	AuditActionRewardRedeemed   = "reward_redeemed"
	AuditActionGiftCardRedeemed = "gift_card_redeemed"
)
