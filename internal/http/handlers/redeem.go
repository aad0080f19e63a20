package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"echolearn/internal/domain"
	"echolearn/internal/service"
)

// RewardCatalog returns redeemable items with the user's unlock flags.
func (h *Handler) RewardCatalog(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	unlocks, err := h.Redemptions.Unlocks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rewards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rewards": h.Redemptions.Catalog(),
		"unlocks": unlocks,
	})
}

// PreviewReward quotes a catalog reward: Confirming when affordable,
// Rejected with earning suggestions otherwise. Nothing is spent.
func (h *Handler) PreviewReward(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	quote, err := h.Redemptions.PreviewReward(c.Request.Context(), userID, c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownReward) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown reward"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to preview reward"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// RedeemReward spends coins on a catalog reward.
func (h *Handler) RedeemReward(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	ctx := c.Request.Context()
	result, rejected, err := h.Redemptions.RedeemReward(ctx, userID, c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownReward) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown reward"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem reward"})
		return
	}
	if rejected != nil {
		c.JSON(http.StatusPaymentRequired, rejected)
		return
	}

	h.Audit.LogRewardRedeemed(ctx, userID, result.Reward, result.Cost)
	c.JSON(http.StatusOK, result)
}

// GiftCardDenominations lists supported dollar amounts and coin costs.
func (h *Handler) GiftCardDenominations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"denominations": domain.GiftCardDenominations()})
}

type giftCardRequest struct {
	Amount int `json:"amount" binding:"required"`
}

// PreviewGiftCard quotes a gift card denomination.
func (h *Handler) PreviewGiftCard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req giftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	quote, err := h.Redemptions.PreviewGiftCard(c.Request.Context(), userID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDenomination) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported denomination"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to preview gift card"})
		return
	}
	c.JSON(http.StatusOK, quote)
}

// RedeemGiftCard starts a gift card redemption. The response carries
// the processing record; the card arrives over the notification stream
// once the simulated issuer delay elapses.
func (h *Handler) RedeemGiftCard(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req giftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}

	ctx := c.Request.Context()
	redemption, card, rejected, err := h.Redemptions.RedeemGiftCard(ctx, userID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrUnknownDenomination) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported denomination"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to redeem gift card"})
		return
	}
	if rejected != nil {
		c.JSON(http.StatusPaymentRequired, rejected)
		return
	}

	h.Audit.LogGiftCardRedeemed(ctx, userID, redemption.ID, redemption.DollarAmount, redemption.CoinCost)

	resp := gin.H{"redemption": redemption}
	if card != nil {
		resp["card"] = card
	}
	c.JSON(http.StatusAccepted, resp)
}

// GiftCards returns the user's issued cards.
func (h *Handler) GiftCards(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	cards, err := h.Redemptions.Cards(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load gift cards"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

// GiftCardRedemptions returns the user's redemption history.
func (h *Handler) GiftCardRedemptions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	redemptions, err := h.Redemptions.Redemptions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load redemptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"redemptions": redemptions})
}
