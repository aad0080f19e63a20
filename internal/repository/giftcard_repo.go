package repository

import (
	"context"
	"time"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GiftCardRepository struct {
	db *pgxpool.Pool
}

func NewGiftCardRepository(db *pgxpool.Pool) *GiftCardRepository {
	return &GiftCardRepository{db: db}
}

// CreateRedemption records a redemption entering the processing state.
func (r *GiftCardRepository) CreateRedemption(ctx context.Context, red *domain.GiftCardRedemption) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO gift_card_redemptions (id, user_id, dollar_amount, coin_cost, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		red.ID, red.UserID, red.DollarAmount, red.CoinCost, red.Status,
	).Scan(&red.CreatedAt)
}

// CompleteRedemption marks a redemption completed and stores the
// synthesized card in one transaction.
func (r *GiftCardRepository) CompleteRedemption(ctx context.Context, redemptionID string, card *domain.GiftCard) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()
	_, err = tx.Exec(ctx,
		`UPDATE gift_card_redemptions
		 SET status = $1, completed_at = $2
		 WHERE id = $3`,
		domain.RedemptionCompleted, now, redemptionID,
	)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO gift_cards (id, redemption_id, user_id, dollar_amount, card_number, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING redeemed_at`,
		card.ID, card.RedemptionID, card.UserID, card.DollarAmount, card.CardNumber, card.ExpiresAt,
	).Scan(&card.RedeemedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *GiftCardRepository) ListRedemptions(ctx context.Context, userID int64) ([]domain.GiftCardRedemption, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, dollar_amount, coin_cost, status, created_at, completed_at
		 FROM gift_card_redemptions
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GiftCardRedemption
	for rows.Next() {
		var red domain.GiftCardRedemption
		if err := rows.Scan(&red.ID, &red.UserID, &red.DollarAmount, &red.CoinCost, &red.Status, &red.CreatedAt, &red.CompletedAt); err != nil {
			return nil, err
		}
		result = append(result, red)
	}
	return result, rows.Err()
}

func (r *GiftCardRepository) ListCards(ctx context.Context, userID int64) ([]domain.GiftCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, redemption_id, user_id, dollar_amount, card_number, expires_at, redeemed_at
		 FROM gift_cards
		 WHERE user_id = $1
		 ORDER BY redeemed_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.GiftCard
	for rows.Next() {
		var card domain.GiftCard
		if err := rows.Scan(&card.ID, &card.RedemptionID, &card.UserID, &card.DollarAmount, &card.CardNumber, &card.ExpiresAt, &card.RedeemedAt); err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	return result, rows.Err()
}
