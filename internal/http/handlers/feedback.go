package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"echolearn/internal/domain"
	"echolearn/internal/logger"
)

type feedbackRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Disability string `json:"disability"`
	Rating     int    `json:"rating"`
	Subject    string `json:"subject" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// SubmitFeedback stores a submission, mails it to the support inbox
// when SMTP is configured, and credits the feedback activity.
func (h *Handler) SubmitFeedback(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, type, subject and message are required"})
		return
	}
	if req.Rating < 0 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 0 and 5"})
		return
	}

	ctx := c.Request.Context()
	fb := &domain.Feedback{
		ID:         uuid.NewString(),
		UserID:     &userID,
		Name:       strings.TrimSpace(req.Name),
		Email:      strings.TrimSpace(req.Email),
		Type:       req.Type,
		Disability: req.Disability,
		Rating:     req.Rating,
		Subject:    strings.TrimSpace(req.Subject),
		Message:    req.Message,
	}
	if err := h.FeedbackRepo.Create(ctx, fb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}

	// Mail delivery is best effort; stored feedback is the record.
	if h.Mailer.Enabled() {
		if err := h.Mailer.SendFeedback(ctx, fb.Name, fb.Email, fb.Type, fb.Subject+"\n\n"+fb.Message); err != nil {
			logger.Error("failed to send feedback mail", "error", err, "feedback_id", fb.ID)
		}
	}

	balance, err := h.Rewards.AwardCoins(ctx, userID, domain.ActivityFeedback)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to award coins"})
		return
	}
	act := h.Rewards.Activities()[domain.ActivityFeedback]
	h.Audit.LogCoinsAwarded(ctx, userID, domain.ActivityFeedback, act.Coins, balance)

	c.JSON(http.StatusCreated, gin.H{
		"id":      fb.ID,
		"coins":   act.Coins,
		"balance": balance,
	})
}
