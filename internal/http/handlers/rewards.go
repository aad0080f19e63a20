package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"echolearn/internal/service"
)

// Wallet returns the balance and the retained transaction history,
// newest first.
func (h *Handler) Wallet(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	summary, err := h.Rewards.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type awardRequest struct {
	Activity string `json:"activity" binding:"required"`
}

// Award credits coins for a completed activity. The study and speech
// activities are client-reported; notes and flashcards are credited by
// their own endpoints and rejected here to prevent double earning.
func (h *Handler) Award(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity is required"})
		return
	}

	switch req.Activity {
	case "study", "speech":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity cannot be awarded directly"})
		return
	}

	ctx := c.Request.Context()
	balance, err := h.Rewards.AwardCoins(ctx, userID, req.Activity)
	if err != nil {
		if errors.Is(err, service.ErrUnknownActivity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown activity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to award coins"})
		return
	}

	act := h.Rewards.Activities()[req.Activity]
	h.Audit.LogCoinsAwarded(ctx, userID, req.Activity, act.Coins, balance)

	c.JSON(http.StatusOK, gin.H{
		"activity": req.Activity,
		"coins":    act.Coins,
		"balance":  balance,
	})
}

// Activities returns the earning catalog.
func (h *Handler) Activities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"activities": h.Rewards.Activities()})
}

// Achievements returns the user's achievement list with progress.
func (h *Handler) Achievements(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	achievements, err := h.Rewards.ListAchievements(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load achievements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

// Streak returns the user's login streak.
func (h *Handler) Streak(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	streak, err := h.Rewards.Streak(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load streak"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak})
}

// DailyLogin counts today's login explicitly, for clients that keep a
// session open across midnight.
func (h *Handler) DailyLogin(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	daily, err := h.Rewards.DailyLogin(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record login"})
		return
	}
	c.JSON(http.StatusOK, daily)
}
