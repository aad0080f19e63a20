package service

// Notifier is the fire-and-forget toast surface: ledger events are
// pushed to whatever transport is wired in (websocket hub in the app,
// a recorder in tests). The ledger never consumes a return value.
type Notifier interface {
	Notify(userID int64, eventType string, data map[string]any)
}

// Notification event types.
const (
	EventCoinsAwarded        = "coins_awarded"
	EventAchievementUnlocked = "achievement_unlocked"
	EventRedemptionCompleted = "redemption_completed"
)

// NopNotifier drops all events.
type NopNotifier struct{}

func (NopNotifier) Notify(int64, string, map[string]any) {}
