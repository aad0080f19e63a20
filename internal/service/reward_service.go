package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"echolearn/internal/domain"
	"echolearn/internal/logger"
	"echolearn/internal/repository"
)

// ErrUnknownActivity is returned when an activity key is not in the
// catalog. Unknown activities are a distinguishable no-op, never a
// silent zero-coin credit.
var ErrUnknownActivity = errors.New("unknown activity")

// Ledger is the balance + transaction history contract the reward
// engine mutates through. Implemented by repository.LedgerRepository.
type Ledger interface {
	Balance(ctx context.Context, userID int64) (int64, error)
	Credit(ctx context.Context, userID, amount int64, description string) (int64, error)
	Debit(ctx context.Context, userID, amount int64, description string) (int64, error)
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]domain.Transaction, error)
}

// AchievementStore persists per-user achievement progress.
type AchievementStore interface {
	GetOrCreate(ctx context.Context, userID int64, key string) (*domain.UserAchievement, error)
	Save(ctx context.Context, ua *domain.UserAchievement) error
	MarkCompleted(ctx context.Context, userID int64, key string, current int, at time.Time) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.UserAchievement, error)
}

// StreakStore persists login streaks.
type StreakStore interface {
	Get(ctx context.Context, userID int64) (*domain.LoginStreak, error)
	Save(ctx context.Context, s *domain.LoginStreak) error
}

// activityAchievements maps activity keys to the achievement they
// advance. Activities without an entry (study, feedback, daily) earn
// coins but track no achievement; daily-learner is driven by the login
// streak instead.
var activityAchievements = map[string]string{
	domain.ActivityNote:      domain.AchievementFirstNote,
	domain.ActivityFlashcard: domain.AchievementFlashcardMaster,
	domain.ActivitySpeech:    domain.AchievementVoiceChampion,
}

// RewardService is the single entry point for crediting coins. All
// balance growth — activity credits, achievement bonuses, streak
// bonuses — flows through it.
type RewardService struct {
	ledger       Ledger
	achievements AchievementStore
	streaks      StreakStore
	activities   domain.ActivityCatalog
	catalog      domain.AchievementCatalog
	notifier     Notifier

	now func() time.Time
}

func NewRewardService(ledger Ledger, achievements AchievementStore, streaks StreakStore, notifier Notifier) *RewardService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &RewardService{
		ledger:       ledger,
		achievements: achievements,
		streaks:      streaks,
		activities:   domain.DefaultActivityCatalog(),
		catalog:      domain.DefaultAchievementCatalog(),
		notifier:     notifier,
		now:          time.Now,
	}
}

// Activities returns the catalog the engine was constructed with.
func (s *RewardService) Activities() domain.ActivityCatalog {
	return s.activities
}

// AwardCoins credits the catalog amount for a recognized activity,
// records the transaction, and advances the mapped achievement.
// Callers are responsible for calling it once per qualifying event.
// The returned balance is the one observed right after the activity
// credit; an unlock bonus may raise it further.
func (s *RewardService) AwardCoins(ctx context.Context, userID int64, activityKey string) (int64, error) {
	act, ok := s.activities[activityKey]
	if !ok {
		return 0, ErrUnknownActivity
	}
	if act.Coins <= 0 {
		// A zero-value catalog entry is a recognized no-op.
		return s.ledger.Balance(ctx, userID)
	}

	newBalance, err := s.ledger.Credit(ctx, userID, act.Coins, act.Name)
	if err != nil {
		return 0, err
	}

	coinsAwardedTotal.WithLabelValues(activityKey).Inc()
	s.notifier.Notify(userID, EventCoinsAwarded, map[string]any{
		"activity": activityKey,
		"name":     act.Name,
		"coins":    act.Coins,
		"balance":  newBalance,
	})

	// Progress failures must not undo or fail a credit that already
	// happened; log and move on.
	if err := s.recordProgress(ctx, userID, activityKey); err != nil {
		logger.Error("failed to record achievement progress", "error", err, "user_id", userID, "activity", activityKey)
	}

	return newBalance, nil
}

// AwardBonus credits a fixed amount outside the activity catalog:
// achievement unlocks, streak bonuses, the surprise gift. It never
// advances achievement progress, so unlock credits cannot re-enter
// the tracker.
func (s *RewardService) AwardBonus(ctx context.Context, userID, amount int64, description string) (int64, error) {
	if amount <= 0 {
		return s.ledger.Balance(ctx, userID)
	}

	newBalance, err := s.ledger.Credit(ctx, userID, amount, description)
	if err != nil {
		return 0, err
	}

	coinsAwardedTotal.WithLabelValues("bonus").Inc()
	s.notifier.Notify(userID, EventCoinsAwarded, map[string]any{
		"name":    description,
		"coins":   amount,
		"balance": newBalance,
	})
	return newBalance, nil
}

// recordProgress advances the achievement mapped to an activity.
// Stored progress clamps at the target once the achievement completes.
func (s *RewardService) recordProgress(ctx context.Context, userID int64, activityKey string) error {
	achKey, ok := activityAchievements[activityKey]
	if !ok {
		return nil
	}

	def, ok := s.catalog[achKey]
	if !ok {
		return nil
	}

	ua, err := s.achievements.GetOrCreate(ctx, userID, achKey)
	if err != nil {
		return err
	}
	if ua.Completed {
		return nil
	}

	ua.Current++
	if ua.Current < def.Target {
		return s.achievements.Save(ctx, ua)
	}

	return s.unlock(ctx, userID, def)
}

// unlock flips an achievement to completed and credits its bonus
// exactly once; the completed flag guards the transition.
func (s *RewardService) unlock(ctx context.Context, userID int64, def domain.AchievementDef) error {
	won, err := s.achievements.MarkCompleted(ctx, userID, def.Key, def.Target, s.now())
	if err != nil {
		return err
	}
	if !won {
		return nil
	}

	if _, err := s.AwardBonus(ctx, userID, def.RewardCoins, fmt.Sprintf("Achievement: %s", def.Title)); err != nil {
		return err
	}

	achievementsUnlockedTotal.WithLabelValues(def.Key).Inc()
	s.notifier.Notify(userID, EventAchievementUnlocked, map[string]any{
		"key":    def.Key,
		"title":  def.Title,
		"coins":  def.RewardCoins,
		"target": def.Target,
	})
	return nil
}

// RecordGiftCardRedemption advances the lazily-created visa-redeemer
// achievement after a completed gift card redemption.
func (s *RewardService) RecordGiftCardRedemption(ctx context.Context, userID int64) error {
	def, ok := s.catalog[domain.AchievementVisaRedeemer]
	if !ok {
		return nil
	}

	ua, err := s.achievements.GetOrCreate(ctx, userID, def.Key)
	if err != nil {
		return err
	}
	if ua.Completed {
		return nil
	}

	ua.Current++
	if ua.Current < def.Target {
		return s.achievements.Save(ctx, ua)
	}
	return s.unlock(ctx, userID, def)
}

// DailyLoginResult reports what a login did to the ledger.
type DailyLoginResult struct {
	Awarded        int64 `json:"awarded"`
	Streak         int   `json:"streak"`
	AlreadyCounted bool  `json:"already_counted"`
	Balance        int64 `json:"balance"`
}

// DailyLogin awards the daily bonus once per calendar day, maintains
// streak continuity (increment on consecutive days, reset to 1 after
// a gap) and evaluates the daily-learner achievement.
func (s *RewardService) DailyLogin(ctx context.Context, userID int64) (*DailyLoginResult, error) {
	today := s.today()

	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoStreak) {
			return nil, err
		}
		streak = nil
	}
	if streak != nil && domain.SameDay(streak.LastDate, today) {
		balance, berr := s.ledger.Balance(ctx, userID)
		if berr != nil {
			return nil, berr
		}
		return &DailyLoginResult{Streak: streak.Count, AlreadyCounted: true, Balance: balance}, nil
	}

	act := s.activities[domain.ActivityDaily]
	balance, err := s.AwardCoins(ctx, userID, domain.ActivityDaily)
	if err != nil {
		return nil, err
	}

	count := 1
	if streak != nil && domain.SameDay(streak.LastDate, today.AddDate(0, 0, -1)) {
		count = streak.Count + 1
	}
	if err := s.streaks.Save(ctx, &domain.LoginStreak{UserID: userID, Count: count, LastDate: today}); err != nil {
		return nil, err
	}

	if err := s.recordStreakProgress(ctx, userID, count); err != nil {
		logger.Error("failed to update daily-learner progress", "error", err, "user_id", userID)
	}

	return &DailyLoginResult{Awarded: act.Coins, Streak: count, Balance: balance}, nil
}

// recordStreakProgress mirrors the streak count into daily-learner
// and checks its threshold on every counted login.
func (s *RewardService) recordStreakProgress(ctx context.Context, userID int64, count int) error {
	def, ok := s.catalog[domain.AchievementDailyLearner]
	if !ok {
		return nil
	}

	ua, err := s.achievements.GetOrCreate(ctx, userID, def.Key)
	if err != nil {
		return err
	}
	if ua.Completed {
		return nil
	}

	ua.Current = count
	if ua.Current < def.Target {
		return s.achievements.Save(ctx, ua)
	}
	return s.unlock(ctx, userID, def)
}

// ListAchievements merges stored progress with the default catalog so
// users always see the full achievement list. visa-redeemer only shows
// once progress for it exists.
func (s *RewardService) ListAchievements(ctx context.Context, userID int64) ([]domain.AchievementWithDef, error) {
	stored, err := s.achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]domain.UserAchievement, len(stored))
	for _, ua := range stored {
		byKey[ua.Key] = ua
	}

	keys := []string{
		domain.AchievementFirstNote,
		domain.AchievementFlashcardMaster,
		domain.AchievementDailyLearner,
		domain.AchievementVoiceChampion,
		domain.AchievementVisaRedeemer,
	}

	var result []domain.AchievementWithDef
	for _, key := range keys {
		def, ok := s.catalog[key]
		if !ok {
			continue
		}
		ua, has := byKey[key]
		if !has {
			if key == domain.AchievementVisaRedeemer {
				continue
			}
			ua = domain.UserAchievement{UserID: userID, Key: key}
		}
		result = append(result, domain.AchievementWithDef{UserAchievement: ua, Def: def})
	}
	return result, nil
}

// Streak returns the user's current streak, zero-valued if none.
func (s *RewardService) Streak(ctx context.Context, userID int64) (*domain.LoginStreak, error) {
	streak, err := s.streaks.Get(ctx, userID)
	if errors.Is(err, repository.ErrNoStreak) {
		return &domain.LoginStreak{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return streak, nil
}

// WalletSummary bundles balance with the retained history window.
type WalletSummary struct {
	Balance      int64                `json:"balance"`
	Transactions []domain.Transaction `json:"transactions"`
}

// Summary returns the current balance and up to the ten most recent
// transactions, newest first.
func (s *RewardService) Summary(ctx context.Context, userID int64) (*WalletSummary, error) {
	balance, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.ledger.RecentTransactions(ctx, userID, domain.TransactionHistoryLimit)
	if err != nil {
		return nil, err
	}
	return &WalletSummary{Balance: balance, Transactions: txs}, nil
}

func (s *RewardService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
