package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"echolearn/internal/domain"
)

type createNoteRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateNote stores a note and credits the note activity.
func (h *Handler) CreateNote(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	ctx := c.Request.Context()
	note := &domain.Note{UserID: userID, Content: strings.TrimSpace(req.Content)}
	if err := h.NoteRepo.Create(ctx, note); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save note"})
		return
	}

	balance, err := h.Rewards.AwardCoins(ctx, userID, domain.ActivityNote)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to award coins"})
		return
	}
	act := h.Rewards.Activities()[domain.ActivityNote]
	h.Audit.LogCoinsAwarded(ctx, userID, domain.ActivityNote, act.Coins, balance)

	c.JSON(http.StatusCreated, gin.H{
		"note":    note,
		"coins":   act.Coins,
		"balance": balance,
	})
}

// Notes lists the user's notes, newest first.
func (h *Handler) Notes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	limit := 100
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	notes, err := h.NoteRepo.ListByUser(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

// DeleteNote removes a note the user owns. Deleting does not claw back
// earned coins.
func (h *Handler) DeleteNote(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	noteID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	deleted, err := h.NoteRepo.Delete(c.Request.Context(), userID, noteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
