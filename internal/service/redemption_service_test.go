package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echolearn/internal/domain"
)

func newTestRedemptionService(delay time.Duration) (*RedemptionService, *fakeLedger, *fakeUnlocks, *fakeGiftCards, *fakeAchievements) {
	ledger := newFakeLedger()
	achievements := newFakeAchievements()
	rewards := NewRewardService(ledger, achievements, newFakeStreaks(), nil)
	unlocks := newFakeUnlocks()
	giftCards := &fakeGiftCards{}
	svc := NewRedemptionService(rewards, unlocks, giftCards, nil, delay)
	return svc, ledger, unlocks, giftCards, achievements
}

func TestPreviewReward_Affordable(t *testing.T) {
	svc, ledger, _, _, _ := newTestRedemptionService(0)
	ledger.balances[1] = 150

	quote, err := svc.PreviewReward(context.Background(), 1, domain.RewardTheme)
	require.NoError(t, err)
	assert.Equal(t, domain.RedemptionConfirming, quote.State)
	assert.Equal(t, int64(100), quote.Cost)
	assert.Zero(t, quote.Shortfall)
	assert.Empty(t, quote.Suggestions)
}

func TestPreviewReward_RejectedWithSuggestions(t *testing.T) {
	svc, ledger, _, _, _ := newTestRedemptionService(0)
	ledger.balances[1] = 60

	quote, err := svc.PreviewReward(context.Background(), 1, domain.RewardVoices)
	require.NoError(t, err)
	assert.Equal(t, domain.RedemptionRejected, quote.State)
	assert.Equal(t, int64(190), quote.Shortfall)

	// note: ceil(190/10)=19, flashcard: ceil(190/25)=8,
	// speech: ceil(190/5)=38, daily: ceil(190/20)=10
	require.Len(t, quote.Suggestions, 4)
	counts := map[string]int64{}
	for _, s := range quote.Suggestions {
		counts[s.Activity] = s.Count
	}
	assert.Equal(t, int64(19), counts[domain.ActivityNote])
	assert.Equal(t, int64(8), counts[domain.ActivityFlashcard])
	assert.Equal(t, int64(38), counts[domain.ActivitySpeech])
	assert.Equal(t, int64(10), counts[domain.ActivityDaily])
}

func TestSuggestions_DropCountsOverFifty(t *testing.T) {
	svc, ledger, _, _, _ := newTestRedemptionService(0)
	ledger.balances[1] = 0

	// Shortfall 500: speech would need 100 recordings, so it is dropped.
	quote, err := svc.PreviewGiftCard(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Equal(t, domain.RedemptionRejected, quote.State)
	for _, s := range quote.Suggestions {
		assert.LessOrEqual(t, s.Count, int64(50))
		assert.NotEqual(t, domain.ActivitySpeech, s.Activity)
	}
}

func TestRedeemReward_UnknownKey(t *testing.T) {
	svc, _, _, _, _ := newTestRedemptionService(0)

	_, _, err := svc.RedeemReward(context.Background(), 1, "jetpack")
	assert.ErrorIs(t, err, ErrUnknownReward)
}

func TestRedeemReward_SetsUnlockFlag(t *testing.T) {
	svc, ledger, unlocks, _, _ := newTestRedemptionService(0)
	ctx := context.Background()
	ledger.balances[1] = 300

	result, rejected, err := svc.RedeemReward(ctx, 1, domain.RewardTheme)
	require.NoError(t, err)
	require.Nil(t, rejected)
	assert.Equal(t, domain.RedemptionCompleted, result.State)
	assert.Equal(t, int64(200), result.Balance)

	set, _ := unlocks.IsSet(ctx, 1, domain.RewardTheme)
	assert.True(t, set)

	// Redeeming again spends coins but the flag stays a flag.
	_, rejected, err = svc.RedeemReward(ctx, 1, domain.RewardTheme)
	require.NoError(t, err)
	require.Nil(t, rejected)
	set, _ = unlocks.IsSet(ctx, 1, domain.RewardTheme)
	assert.True(t, set)
}

func TestRedeemReward_InsufficientIsRejectedNotError(t *testing.T) {
	svc, ledger, unlocks, _, _ := newTestRedemptionService(0)
	ledger.balances[1] = 40

	result, rejected, err := svc.RedeemReward(context.Background(), 1, domain.RewardTheme)
	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, rejected)
	assert.Equal(t, domain.RedemptionRejected, rejected.State)
	assert.Equal(t, int64(60), rejected.Shortfall)

	assert.Equal(t, int64(40), ledger.balances[1], "rejected redemption spends nothing")
	assert.Empty(t, unlocks.set)
}

func TestRedeemReward_SurpriseGiftCreditsRandomBonus(t *testing.T) {
	svc, ledger, unlocks, _, _ := newTestRedemptionService(0)
	ledger.balances[1] = 300

	result, rejected, err := svc.RedeemReward(context.Background(), 1, domain.RewardGift)
	require.NoError(t, err)
	require.Nil(t, rejected)

	assert.GreaterOrEqual(t, result.BonusCoins, int64(100))
	assert.LessOrEqual(t, result.BonusCoins, int64(599))
	assert.Equal(t, result.BonusCoins, ledger.balances[1], "300 spent, bonus credited back")
	assert.Empty(t, unlocks.set, "the gift never sets an unlock flag")
}

func TestRedeemGiftCard_UnknownDenomination(t *testing.T) {
	svc, _, _, _, _ := newTestRedemptionService(0)

	_, _, _, err := svc.RedeemGiftCard(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrUnknownDenomination)
}

var cardNumberRe = regexp.MustCompile(`^4000\d{12}$`)

func TestRedeemGiftCard_SynchronousCompletion(t *testing.T) {
	svc, ledger, _, giftCards, achievements := newTestRedemptionService(0)
	ctx := context.Background()
	ledger.balances[1] = 1200

	issued := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	redemption, card, rejected, err := svc.RedeemGiftCard(ctx, 1, 10)
	require.NoError(t, err)
	require.Nil(t, rejected)
	require.NotNil(t, card)

	assert.Equal(t, domain.RedemptionCompleted, redemption.Status)
	assert.Equal(t, 10, redemption.DollarAmount)
	assert.Equal(t, int64(1000), redemption.CoinCost)

	assert.Regexp(t, cardNumberRe, card.CardNumber)
	assert.Equal(t, issued.AddDate(1, 0, 0), card.ExpiresAt)

	// 1200 - 1000 cost + 200 visa-redeemer bonus
	assert.Equal(t, int64(400), ledger.balances[1])
	ua := achievements.byKey[domain.AchievementVisaRedeemer]
	require.NotNil(t, ua)
	assert.True(t, ua.Completed)

	cards, _ := giftCards.ListCards(ctx, 1)
	assert.Len(t, cards, 1)
}

func TestRedeemGiftCard_AsyncLeavesProcessing(t *testing.T) {
	svc, ledger, _, giftCards, _ := newTestRedemptionService(time.Hour)
	ctx := context.Background()
	ledger.balances[1] = 600

	redemption, card, rejected, err := svc.RedeemGiftCard(ctx, 1, 5)
	require.NoError(t, err)
	require.Nil(t, rejected)
	assert.Nil(t, card, "card is issued later, over the notification stream")
	assert.Equal(t, domain.RedemptionProcessing, redemption.Status)
	assert.Equal(t, int64(100), ledger.balances[1], "cost debited immediately")

	reds, _ := giftCards.ListRedemptions(ctx, 1)
	require.Len(t, reds, 1)
	assert.Equal(t, domain.RedemptionProcessing, reds[0].Status)
}

func TestRedeemGiftCard_InsufficientRejected(t *testing.T) {
	svc, ledger, _, giftCards, _ := newTestRedemptionService(0)
	ledger.balances[1] = 100

	_, _, rejected, err := svc.RedeemGiftCard(context.Background(), 1, 25)
	require.NoError(t, err)
	require.NotNil(t, rejected)
	assert.Equal(t, domain.RedemptionRejected, rejected.State)
	assert.Equal(t, int64(2400), rejected.Shortfall)
	assert.Empty(t, giftCards.redemptions)
	assert.Equal(t, int64(100), ledger.balances[1])
}

func TestGenerateCardNumber_Format(t *testing.T) {
	for i := 0; i < 20; i++ {
		number, err := generateCardNumber()
		require.NoError(t, err)
		assert.Regexp(t, cardNumberRe, number)
	}
}

func TestRandomInRange_Bounds(t *testing.T) {
	for i := 0; i < 100; i++ {
		n, err := randomInRange(100, 599)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, int64(100))
		assert.LessOrEqual(t, n, int64(599))
	}
}
