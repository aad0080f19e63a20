package domain

// Activity is one coin-earning action in the catalog.
type Activity struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Coins int64  `json:"coins"`
}

// ActivityCatalog enumerates every recognized activity. The reward
// engine is constructed with one; unknown keys are a distinguishable
// error, not a silent zero-coin credit.
type ActivityCatalog map[string]Activity

// Well-known activity keys.
const (
	ActivityNote      = "note"
	ActivityFlashcard = "flashcard"
	ActivityStudy     = "study"
	ActivitySpeech    = "speech"
	ActivityDaily     = "daily"
	ActivityFeedback  = "feedback"
)

// DefaultActivityCatalog returns the shipped activity values.
func DefaultActivityCatalog() ActivityCatalog {
	return ActivityCatalog{
		ActivityNote:      {Key: ActivityNote, Name: "Take Notes", Coins: 10},
		ActivityFlashcard: {Key: ActivityFlashcard, Name: "Generate Flashcards", Coins: 25},
		ActivityStudy:     {Key: ActivityStudy, Name: "Study Session", Coins: 15},
		ActivitySpeech:    {Key: ActivitySpeech, Name: "Voice Recording", Coins: 5},
		ActivityDaily:     {Key: ActivityDaily, Name: "Daily Login", Coins: 20},
		ActivityFeedback:  {Key: ActivityFeedback, Name: "Share Feedback", Coins: 50},
	}
}

// Well-known achievement keys.
const (
	AchievementFirstNote       = "first-note"
	AchievementFlashcardMaster = "flashcard-master"
	AchievementDailyLearner    = "daily-learner"
	AchievementVoiceChampion   = "voice-champion"
	AchievementVisaRedeemer    = "visa-redeemer"
)

// AchievementCatalog maps achievement keys to their definitions.
type AchievementCatalog map[string]AchievementDef

// DefaultAchievementCatalog returns the shipped achievements.
// visa-redeemer is included here as a definition but user progress for
// it is only instantiated on the first gift card redemption.
func DefaultAchievementCatalog() AchievementCatalog {
	return AchievementCatalog{
		AchievementFirstNote:       {Key: AchievementFirstNote, Title: "First Note", Target: 1, RewardCoins: 100},
		AchievementFlashcardMaster: {Key: AchievementFlashcardMaster, Title: "Flashcard Master", Target: 10, RewardCoins: 250},
		AchievementDailyLearner:    {Key: AchievementDailyLearner, Title: "Daily Learner", Target: 7, RewardCoins: 150},
		AchievementVoiceChampion:   {Key: AchievementVoiceChampion, Title: "Voice Champion", Target: 50, RewardCoins: 300},
		AchievementVisaRedeemer:    {Key: AchievementVisaRedeemer, Title: "VISA Redeemer", Target: 1, RewardCoins: 200},
	}
}

// RewardItem is a non-monetary catalog reward redeemable for coins.
type RewardItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

// Reward catalog keys. "gift" is special: instead of a feature unlock
// it credits a random coin bonus back.
const (
	RewardTheme  = "theme"
	RewardVoices = "voices"
	RewardSpeed  = "speed"
	RewardBadge  = "badge"
	RewardMobile = "mobile"
	RewardGift   = "gift"
)

// DefaultRewardCatalog returns the redeemable catalog items.
func DefaultRewardCatalog() map[string]RewardItem {
	return map[string]RewardItem{
		RewardTheme:  {Key: RewardTheme, Name: "Custom Themes", Cost: 100},
		RewardVoices: {Key: RewardVoices, Name: "Premium Voices", Cost: 250},
		RewardSpeed:  {Key: RewardSpeed, Name: "Speed Boost", Cost: 150},
		RewardBadge:  {Key: RewardBadge, Name: "Achievement Badge", Cost: 200},
		RewardMobile: {Key: RewardMobile, Name: "Mobile App Access", Cost: 500},
		RewardGift:   {Key: RewardGift, Name: "Surprise Gift", Cost: 300},
	}
}

// WelcomeBonusCoins is the one-time credit granted when an account is
// created, recorded with a matching transaction.
const WelcomeBonusCoins int64 = 50

// GiftCardDenominations maps supported dollar amounts to coin costs.
func GiftCardDenominations() map[int]int64 {
	return map[int]int64{
		5:  500,
		10: 1000,
		25: 2500,
		50: 5000,
	}
}
