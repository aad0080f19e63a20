package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"echolearn/internal/config"
	"echolearn/internal/http/handlers"
	"echolearn/internal/http/middleware"
	"echolearn/internal/llm"
	"echolearn/internal/mailer"
	"echolearn/internal/ws"
)

// RegisterRoutes wires the full API surface onto the gin engine and
// returns the notification hub so callers can inspect it.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *ws.Hub {
	llmClient := llm.New(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel)
	m := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail, cfg.FeedbackEmail)

	hub := ws.NewHub()
	h := handlers.NewHandler(db, llmClient, m, hub, cfg.GiftCardProcessingDelay)

	healthHandler := handlers.NewHealthHandler(db, version, map[string]bool{
		"aiFlashcards":  llmClient.Configured(),
		"aiChat":        llmClient.Configured(),
		"emailFeedback": m.Enabled(),
	})

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h, cfg)

	// Notification stream
	r.GET("/ws", h.WS(hub))

	return hub
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Auth
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)
	api.GET("/me", middleware.JWT(), h.Me)

	// Wallet and earning
	api.GET("/coins", middleware.JWT(), h.Wallet)
	api.GET("/coins/activities", h.Activities)
	api.POST("/coins/award", middleware.JWT(), h.Award)
	api.POST("/coins/daily", middleware.JWT(), h.DailyLogin)
	api.GET("/achievements", middleware.JWT(), h.Achievements)
	api.GET("/streak", middleware.JWT(), h.Streak)

	// Redemption
	api.GET("/rewards", middleware.JWT(), h.RewardCatalog)
	api.POST("/rewards/:key/preview", middleware.JWT(), h.PreviewReward)
	api.POST("/rewards/:key/redeem", middleware.JWT(), h.RedeemReward)
	api.GET("/giftcards/denominations", h.GiftCardDenominations)
	api.POST("/giftcards/preview", middleware.JWT(), h.PreviewGiftCard)
	api.POST("/giftcards/redeem", middleware.JWT(), h.RedeemGiftCard)
	api.GET("/giftcards", middleware.JWT(), h.GiftCards)
	api.GET("/giftcards/redemptions", middleware.JWT(), h.GiftCardRedemptions)

	// Notes
	api.POST("/notes", middleware.JWT(), h.CreateNote)
	api.GET("/notes", middleware.JWT(), h.Notes)
	api.DELETE("/notes/:id", middleware.JWT(), h.DeleteNote)

	// Flashcards: PDF parsing and LLM calls are expensive, so uploads
	// get a tighter per-user limit.
	uploadRL := middleware.UserRateLimit("flashcards", 10, time.Minute)
	api.POST("/flashcards", middleware.JWT(), uploadRL, h.GenerateFlashcards)
	api.GET("/flashcards", middleware.JWT(), h.FlashcardSets)
	api.GET("/flashcards/:id", middleware.JWT(), h.FlashcardSet)

	// Assistant
	chatRL := middleware.UserRateLimit("chat", 20, time.Minute)
	api.POST("/chatbot", middleware.JWT(), chatRL, h.Chat)

	// Feedback
	api.POST("/feedback", middleware.JWT(), h.SubmitFeedback)
}
