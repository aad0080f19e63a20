package domain

import "time"

// AchievementDef is a catalog entry: what it takes to unlock an
// achievement and what the one-time bonus is worth.
type AchievementDef struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Target      int    `json:"target"`
	RewardCoins int64  `json:"reward_coins"`
}

// UserAchievement is a user's progress against one catalog entry.
// Completed flips false→true exactly once; Current is clamped at the
// target once the achievement completes.
type UserAchievement struct {
	UserID      int64      `db:"user_id" json:"user_id"`
	Key         string     `db:"key" json:"key"`
	Current     int        `db:"current" json:"current"`
	Completed   bool       `db:"completed" json:"completed"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// Progress returns display progress in percent, clamped to 0-100.
func (ua *UserAchievement) Progress(target int) int {
	if target <= 0 {
		return 100
	}
	p := (ua.Current * 100) / target
	if p > 100 {
		return 100
	}
	return p
}

// AchievementWithDef pairs stored progress with its catalog entry for
// API responses.
type AchievementWithDef struct {
	UserAchievement
	Def AchievementDef `json:"def"`
}
