package domain

import (
	"testing"
	"time"
)

func TestProgressClamped(t *testing.T) {
	cases := []struct {
		current, target, want int
	}{
		{0, 10, 0},
		{5, 10, 50},
		{10, 10, 100},
		{25, 10, 100},
		{3, 0, 100},
	}

	for _, tc := range cases {
		ua := UserAchievement{Current: tc.current}
		if got := ua.Progress(tc.target); got != tc.want {
			t.Fatalf("Progress(%d/%d) = %d; want %d", tc.current, tc.target, got, tc.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	b := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Fatal("same calendar day should match regardless of hour")
	}
	if SameDay(a, a.AddDate(0, 0, 1)) {
		t.Fatal("different days must not match")
	}
}

func TestDefaultCatalogValues(t *testing.T) {
	acts := DefaultActivityCatalog()
	if acts[ActivityNote].Coins != 10 || acts[ActivityFlashcard].Coins != 25 || acts[ActivityDaily].Coins != 20 {
		t.Fatalf("unexpected activity values: %+v", acts)
	}

	achs := DefaultAchievementCatalog()
	if achs[AchievementDailyLearner].Target != 7 || achs[AchievementDailyLearner].RewardCoins != 150 {
		t.Fatalf("unexpected daily-learner definition: %+v", achs[AchievementDailyLearner])
	}

	if got := GiftCardDenominations()[25]; got != 2500 {
		t.Fatalf("$25 card costs %d coins; want 2500", got)
	}
}
