package service

import (
	"context"

	"echolearn/internal/domain"
	"echolearn/internal/logger"
	"echolearn/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService records notable user actions. Writes are best effort:
// a failed audit insert is logged, never surfaced to the caller.
type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(db *pgxpool.Pool) *AuditService {
	return &AuditService{repo: repository.NewAuditRepository(db)}
}

// Log creates a new audit log entry.
func (s *AuditService) Log(ctx context.Context, userID int64, action, category string, details map[string]interface{}) {
	log := &domain.AuditLog{
		UserID:   userID,
		Action:   action,
		Category: category,
		Details:  details,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogWithRequest creates an audit log with request info (IP, User-Agent).
func (s *AuditService) LogWithRequest(ctx context.Context, userID int64, action, category, ip, userAgent string, details map[string]interface{}) {
	log := &domain.AuditLog{
		UserID:    userID,
		Action:    action,
		Category:  category,
		Details:   details,
		IP:        ip,
		UserAgent: userAgent,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		logger.Error("failed to create audit log", "error", err, "action", action, "user_id", userID)
	}
}

// LogRegister logs an account creation.
func (s *AuditService) LogRegister(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionRegister, domain.AuditCategoryAuth, ip, userAgent, nil)
}

// LogLogin logs a user login.
func (s *AuditService) LogLogin(ctx context.Context, userID int64, ip, userAgent string) {
	s.LogWithRequest(ctx, userID, domain.AuditActionLogin, domain.AuditCategoryAuth, ip, userAgent, nil)
}

// LogCoinsAwarded logs a ledger credit.
func (s *AuditService) LogCoinsAwarded(ctx context.Context, userID int64, activity string, coins, balance int64) {
	s.Log(ctx, userID, domain.AuditActionCoinsAwarded, domain.AuditCategoryLedger, map[string]interface{}{
		"activity": activity,
		"coins":    coins,
		"balance":  balance,
	})
}

// LogRewardRedeemed logs a catalog reward spend.
func (s *AuditService) LogRewardRedeemed(ctx context.Context, userID int64, reward string, cost int64) {
	s.Log(ctx, userID, domain.AuditActionRewardRedeemed, domain.AuditCategoryRedemption, map[string]interface{}{
		"reward": reward,
		"cost":   cost,
	})
}

// LogGiftCardRedeemed logs a gift card redemption entering processing.
func (s *AuditService) LogGiftCardRedeemed(ctx context.Context, userID int64, redemptionID string, dollars int, cost int64) {
	s.Log(ctx, userID, domain.AuditActionGiftCardRedeemed, domain.AuditCategoryRedemption, map[string]interface{}{
		"redemption_id": redemptionID,
		"dollar_amount": dollars,
		"cost":          cost,
	})
}

// GetUserAuditLogs returns audit logs for a user.
func (s *AuditService) GetUserAuditLogs(ctx context.Context, userID int64, limit int) ([]*domain.AuditLog, error) {
	return s.repo.GetByUserID(ctx, userID, limit)
}
