package handlers

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"echolearn/internal/llm"
	"echolearn/internal/mailer"
	"echolearn/internal/repository"
	"echolearn/internal/service"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	DB           *pgxpool.Pool
	Auth         *service.AuthService
	Rewards      *service.RewardService
	Redemptions  *service.RedemptionService
	Flashcards   *service.FlashcardService
	Chatbot      *service.ChatbotService
	Audit        *service.AuditService
	NoteRepo     *repository.NoteRepository
	FeedbackRepo *repository.FeedbackRepository
	Mailer       *mailer.Mailer
	LLM          *llm.Client
}

func NewHandler(db *pgxpool.Pool, llmClient *llm.Client, m *mailer.Mailer, notifier service.Notifier, giftCardDelay time.Duration) *Handler {
	ledger := repository.NewLedgerRepository(db)
	achievements := repository.NewAchievementRepository(db)
	streaks := repository.NewStreakRepository(db)

	rewards := service.NewRewardService(ledger, achievements, streaks, notifier)
	redemptions := service.NewRedemptionService(
		rewards,
		repository.NewUnlockRepository(db),
		repository.NewGiftCardRepository(db),
		notifier,
		giftCardDelay,
	)

	return &Handler{
		DB:           db,
		Auth:         service.NewAuthService(repository.NewUserRepository(db)),
		Rewards:      rewards,
		Redemptions:  redemptions,
		Flashcards:   service.NewFlashcardService(repository.NewFlashcardRepository(db), llmClient, rewards),
		Chatbot:      service.NewChatbotService(llmClient),
		Audit:        service.NewAuditService(db),
		NoteRepo:     repository.NewNoteRepository(db),
		FeedbackRepo: repository.NewFeedbackRepository(db),
		Mailer:       m,
		LLM:          llmClient,
	}
}

// getUserID extracts the authenticated user id from the gin context.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
