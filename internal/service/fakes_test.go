package service

import (
	"context"
	"time"

	"echolearn/internal/domain"
	"echolearn/internal/repository"
)

// In-memory stores backing the service tests.

type fakeLedger struct {
	balances map[int64]int64
	txs      map[int64][]domain.Transaction
	nextID   int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		balances: make(map[int64]int64),
		txs:      make(map[int64][]domain.Transaction),
	}
}

func (f *fakeLedger) Balance(_ context.Context, userID int64) (int64, error) {
	return f.balances[userID], nil
}

func (f *fakeLedger) append(userID, amount int64, description string, kind domain.TransactionKind) {
	f.nextID++
	f.txs[userID] = append([]domain.Transaction{{
		ID:          f.nextID,
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Kind:        kind,
		CreatedAt:   time.Now(),
	}}, f.txs[userID]...)
	if len(f.txs[userID]) > domain.TransactionHistoryLimit {
		f.txs[userID] = f.txs[userID][:domain.TransactionHistoryLimit]
	}
}

func (f *fakeLedger) Credit(_ context.Context, userID, amount int64, description string) (int64, error) {
	f.balances[userID] += amount
	f.append(userID, amount, description, domain.TransactionCredit)
	return f.balances[userID], nil
}

func (f *fakeLedger) Debit(_ context.Context, userID, amount int64, description string) (int64, error) {
	if f.balances[userID] < amount {
		return 0, repository.ErrInsufficientBalance
	}
	f.balances[userID] -= amount
	f.append(userID, amount, description, domain.TransactionDebit)
	return f.balances[userID], nil
}

func (f *fakeLedger) RecentTransactions(_ context.Context, userID int64, limit int) ([]domain.Transaction, error) {
	txs := f.txs[userID]
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs, nil
}

type fakeAchievements struct {
	byKey map[string]*domain.UserAchievement
}

func newFakeAchievements() *fakeAchievements {
	return &fakeAchievements{byKey: make(map[string]*domain.UserAchievement)}
}

func (f *fakeAchievements) GetOrCreate(_ context.Context, userID int64, key string) (*domain.UserAchievement, error) {
	if ua, ok := f.byKey[key]; ok {
		cp := *ua
		return &cp, nil
	}
	ua := &domain.UserAchievement{UserID: userID, Key: key}
	f.byKey[key] = ua
	cp := *ua
	return &cp, nil
}

func (f *fakeAchievements) Save(_ context.Context, ua *domain.UserAchievement) error {
	cp := *ua
	f.byKey[ua.Key] = &cp
	return nil
}

func (f *fakeAchievements) MarkCompleted(_ context.Context, userID int64, key string, current int, at time.Time) (bool, error) {
	ua, ok := f.byKey[key]
	if !ok || ua.Completed {
		return false, nil
	}
	ua.Completed = true
	ua.Current = current
	ua.CompletedAt = &at
	return true, nil
}

func (f *fakeAchievements) ListByUser(_ context.Context, userID int64) ([]domain.UserAchievement, error) {
	var out []domain.UserAchievement
	for _, ua := range f.byKey {
		out = append(out, *ua)
	}
	return out, nil
}

type fakeStreaks struct {
	streaks map[int64]*domain.LoginStreak
}

func newFakeStreaks() *fakeStreaks {
	return &fakeStreaks{streaks: make(map[int64]*domain.LoginStreak)}
}

func (f *fakeStreaks) Get(_ context.Context, userID int64) (*domain.LoginStreak, error) {
	s, ok := f.streaks[userID]
	if !ok {
		return nil, repository.ErrNoStreak
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStreaks) Save(_ context.Context, s *domain.LoginStreak) error {
	cp := *s
	f.streaks[s.UserID] = &cp
	return nil
}

type fakeUnlocks struct {
	set map[string]bool
}

func newFakeUnlocks() *fakeUnlocks {
	return &fakeUnlocks{set: make(map[string]bool)}
}

func (f *fakeUnlocks) Set(_ context.Context, userID int64, reward string) error {
	f.set[reward] = true
	return nil
}

func (f *fakeUnlocks) IsSet(_ context.Context, userID int64, reward string) (bool, error) {
	return f.set[reward], nil
}

func (f *fakeUnlocks) List(_ context.Context, userID int64) ([]domain.UserUnlock, error) {
	var out []domain.UserUnlock
	for reward := range f.set {
		out = append(out, domain.UserUnlock{UserID: userID, Reward: reward})
	}
	return out, nil
}

type fakeGiftCards struct {
	redemptions []*domain.GiftCardRedemption
	cards       []*domain.GiftCard
}

func (f *fakeGiftCards) CreateRedemption(_ context.Context, red *domain.GiftCardRedemption) error {
	red.CreatedAt = time.Now()
	cp := *red
	f.redemptions = append(f.redemptions, &cp)
	return nil
}

func (f *fakeGiftCards) CompleteRedemption(_ context.Context, redemptionID string, card *domain.GiftCard) error {
	for _, r := range f.redemptions {
		if r.ID == redemptionID {
			now := time.Now()
			r.Status = domain.RedemptionCompleted
			r.CompletedAt = &now
		}
	}
	card.RedeemedAt = time.Now()
	cp := *card
	f.cards = append(f.cards, &cp)
	return nil
}

func (f *fakeGiftCards) ListRedemptions(_ context.Context, userID int64) ([]domain.GiftCardRedemption, error) {
	var out []domain.GiftCardRedemption
	for _, r := range f.redemptions {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeGiftCards) ListCards(_ context.Context, userID int64) ([]domain.GiftCard, error) {
	var out []domain.GiftCard
	for _, c := range f.cards {
		out = append(out, *c)
	}
	return out, nil
}

// recordingNotifier captures emitted events for assertions.
type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Notify(userID int64, eventType string, data map[string]any) {
	n.events = append(n.events, eventType)
}
