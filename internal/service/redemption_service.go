package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"

	"echolearn/internal/domain"
	"echolearn/internal/logger"
)

var (
	ErrUnknownReward       = errors.New("unknown reward")
	ErrUnknownDenomination = errors.New("unknown gift card denomination")
)

// UnlockStore persists reward unlock flags.
type UnlockStore interface {
	Set(ctx context.Context, userID int64, reward string) error
	IsSet(ctx context.Context, userID int64, reward string) (bool, error)
	List(ctx context.Context, userID int64) ([]domain.UserUnlock, error)
}

// GiftCardStore persists gift card redemptions and synthesized cards.
type GiftCardStore interface {
	CreateRedemption(ctx context.Context, red *domain.GiftCardRedemption) error
	CompleteRedemption(ctx context.Context, redemptionID string, card *domain.GiftCard) error
	ListRedemptions(ctx context.Context, userID int64) ([]domain.GiftCardRedemption, error)
	ListCards(ctx context.Context, userID int64) ([]domain.GiftCard, error)
}

// EarningSuggestion tells a user short of coins how many repetitions
// of one activity would cover the gap.
type EarningSuggestion struct {
	Activity string `json:"activity"`
	Name     string `json:"name"`
	Coins    int64  `json:"coins"`
	Count    int64  `json:"count"`
}

// RedemptionQuote is the confirm-or-reject decision for a spend. The
// state is Confirming when the balance covers the cost and Rejected
// otherwise; nothing is persisted until the user confirms.
type RedemptionQuote struct {
	State       domain.RedemptionState `json:"state"`
	Cost        int64                  `json:"cost"`
	Balance     int64                  `json:"balance"`
	Shortfall   int64                  `json:"shortfall,omitempty"`
	Suggestions []EarningSuggestion    `json:"suggestions,omitempty"`
}

// RedemptionService owns the spend side of the ledger: catalog reward
// unlocks, the surprise gift, and the simulated gift card flow.
type RedemptionService struct {
	rewards   *RewardService
	unlocks   UnlockStore
	giftCards GiftCardStore
	catalog   map[string]domain.RewardItem
	notifier  Notifier

	// processingDelay simulates the card issuer round trip. Zero or
	// negative completes synchronously.
	processingDelay time.Duration
	now             func() time.Time
}

func NewRedemptionService(rewards *RewardService, unlocks UnlockStore, giftCards GiftCardStore, notifier Notifier, processingDelay time.Duration) *RedemptionService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &RedemptionService{
		rewards:         rewards,
		unlocks:         unlocks,
		giftCards:       giftCards,
		catalog:         domain.DefaultRewardCatalog(),
		notifier:        notifier,
		processingDelay: processingDelay,
		now:             time.Now,
	}
}

// Catalog returns the redeemable reward items.
func (s *RedemptionService) Catalog() map[string]domain.RewardItem {
	return s.catalog
}

// Unlocks returns the user's unlocked reward flags.
func (s *RedemptionService) Unlocks(ctx context.Context, userID int64) ([]domain.UserUnlock, error) {
	return s.unlocks.List(ctx, userID)
}

// PreviewReward quotes a catalog reward without spending anything.
func (s *RedemptionService) PreviewReward(ctx context.Context, userID int64, rewardKey string) (*RedemptionQuote, error) {
	item, ok := s.catalog[rewardKey]
	if !ok {
		return nil, ErrUnknownReward
	}
	return s.quote(ctx, userID, item.Cost)
}

// RewardResult is the outcome of a confirmed catalog redemption.
type RewardResult struct {
	State      domain.RedemptionState `json:"state"`
	Reward     string                 `json:"reward"`
	Name       string                 `json:"name"`
	Cost       int64                  `json:"cost"`
	Balance    int64                  `json:"balance"`
	BonusCoins int64                  `json:"bonus_coins,omitempty"`
}

// RedeemReward spends coins on a catalog item. Non-gift rewards flip a
// persistent unlock flag; the surprise gift credits a random bonus back
// instead. An unaffordable redemption returns a Rejected result, not an
// error.
func (s *RedemptionService) RedeemReward(ctx context.Context, userID int64, rewardKey string) (*RewardResult, *RedemptionQuote, error) {
	item, ok := s.catalog[rewardKey]
	if !ok {
		return nil, nil, ErrUnknownReward
	}

	quote, err := s.quote(ctx, userID, item.Cost)
	if err != nil {
		return nil, nil, err
	}
	if quote.State == domain.RedemptionRejected {
		return nil, quote, nil
	}

	balance, err := s.rewards.ledger.Debit(ctx, userID, item.Cost, item.Name)
	if err != nil {
		return nil, nil, err
	}

	result := &RewardResult{
		State:   domain.RedemptionCompleted,
		Reward:  item.Key,
		Name:    item.Name,
		Cost:    item.Cost,
		Balance: balance,
	}

	if item.Key == domain.RewardGift {
		bonus, err := randomInRange(100, 599)
		if err != nil {
			return nil, nil, err
		}
		balance, err = s.rewards.AwardBonus(ctx, userID, bonus, "Surprise Gift")
		if err != nil {
			return nil, nil, err
		}
		result.BonusCoins = bonus
		result.Balance = balance
	} else {
		if err := s.unlocks.Set(ctx, userID, item.Key); err != nil {
			return nil, nil, err
		}
	}

	redemptionsTotal.WithLabelValues("reward").Inc()
	return result, nil, nil
}

// PreviewGiftCard quotes a gift card denomination.
func (s *RedemptionService) PreviewGiftCard(ctx context.Context, userID int64, dollars int) (*RedemptionQuote, error) {
	cost, ok := domain.GiftCardDenominations()[dollars]
	if !ok {
		return nil, ErrUnknownDenomination
	}
	return s.quote(ctx, userID, cost)
}

// RedeemGiftCard debits the coin cost, records a processing redemption,
// and completes it after the simulated issuer delay. Processing is not
// cancellable and always succeeds; with a zero delay the completed
// redemption and card are returned directly.
func (s *RedemptionService) RedeemGiftCard(ctx context.Context, userID int64, dollars int) (*domain.GiftCardRedemption, *domain.GiftCard, *RedemptionQuote, error) {
	cost, ok := domain.GiftCardDenominations()[dollars]
	if !ok {
		return nil, nil, nil, ErrUnknownDenomination
	}

	quote, err := s.quote(ctx, userID, cost)
	if err != nil {
		return nil, nil, nil, err
	}
	if quote.State == domain.RedemptionRejected {
		return nil, nil, quote, nil
	}

	if _, err := s.rewards.ledger.Debit(ctx, userID, cost, fmt.Sprintf("VISA Gift Card $%d", dollars)); err != nil {
		return nil, nil, nil, err
	}

	red := &domain.GiftCardRedemption{
		ID:           uuid.NewString(),
		UserID:       userID,
		DollarAmount: dollars,
		CoinCost:     cost,
		Status:       domain.RedemptionProcessing,
	}
	if err := s.giftCards.CreateRedemption(ctx, red); err != nil {
		return nil, nil, nil, err
	}
	redemptionsTotal.WithLabelValues("gift_card").Inc()

	if s.processingDelay <= 0 {
		card, err := s.completeRedemption(ctx, red)
		if err != nil {
			return nil, nil, nil, err
		}
		return red, card, nil, nil
	}

	go func(red domain.GiftCardRedemption) {
		time.Sleep(s.processingDelay)
		// Completion survives request cancellation.
		if _, err := s.completeRedemption(context.Background(), &red); err != nil {
			logger.Error("failed to complete gift card redemption", "error", err, "redemption_id", red.ID)
		}
	}(*red)

	return red, nil, nil, nil
}

func (s *RedemptionService) completeRedemption(ctx context.Context, red *domain.GiftCardRedemption) (*domain.GiftCard, error) {
	number, err := generateCardNumber()
	if err != nil {
		return nil, err
	}

	card := &domain.GiftCard{
		ID:           uuid.NewString(),
		RedemptionID: red.ID,
		UserID:       red.UserID,
		DollarAmount: red.DollarAmount,
		CardNumber:   number,
		ExpiresAt:    s.now().AddDate(1, 0, 0),
	}
	if err := s.giftCards.CompleteRedemption(ctx, red.ID, card); err != nil {
		return nil, err
	}
	red.Status = domain.RedemptionCompleted

	if err := s.rewards.RecordGiftCardRedemption(ctx, red.UserID); err != nil {
		logger.Error("failed to record gift card achievement progress", "error", err, "user_id", red.UserID)
	}

	s.notifier.Notify(red.UserID, EventRedemptionCompleted, map[string]any{
		"redemption_id": red.ID,
		"dollar_amount": red.DollarAmount,
		"card_number":   card.CardNumber,
		"expires_at":    card.ExpiresAt,
	})
	return card, nil
}

// Redemptions returns the user's gift card redemption history.
func (s *RedemptionService) Redemptions(ctx context.Context, userID int64) ([]domain.GiftCardRedemption, error) {
	return s.giftCards.ListRedemptions(ctx, userID)
}

// Cards returns the user's issued gift cards.
func (s *RedemptionService) Cards(ctx context.Context, userID int64) ([]domain.GiftCard, error) {
	return s.giftCards.ListCards(ctx, userID)
}

func (s *RedemptionService) quote(ctx context.Context, userID int64, cost int64) (*RedemptionQuote, error) {
	balance, err := s.rewards.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := &RedemptionQuote{Cost: cost, Balance: balance}
	if balance >= cost {
		q.State = domain.RedemptionConfirming
		return q, nil
	}

	q.State = domain.RedemptionRejected
	q.Shortfall = cost - balance
	q.Suggestions = s.suggestions(q.Shortfall)
	return q, nil
}

// suggestions lists, per activity, how many repetitions would cover
// the shortfall. Counts above 50 are dropped as unhelpful advice.
func (s *RedemptionService) suggestions(shortfall int64) []EarningSuggestion {
	keys := []string{
		domain.ActivityNote,
		domain.ActivityFlashcard,
		domain.ActivitySpeech,
		domain.ActivityDaily,
	}

	var out []EarningSuggestion
	for _, key := range keys {
		act, ok := s.rewards.activities[key]
		if !ok || act.Coins <= 0 {
			continue
		}
		count := int64(math.Ceil(float64(shortfall) / float64(act.Coins)))
		if count > 50 {
			continue
		}
		out = append(out, EarningSuggestion{
			Activity: act.Key,
			Name:     act.Name,
			Coins:    act.Coins,
			Count:    count,
		})
	}
	return out
}

// generateCardNumber builds the synthetic 16-digit card number: the
// fixed "4000" prefix plus 12 random digits.
func generateCardNumber() (string, error) {
	digits := make([]byte, 12)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return "4000" + string(digits), nil
}

// randomInRange returns a uniform random value in [min, max].
func randomInRange(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
