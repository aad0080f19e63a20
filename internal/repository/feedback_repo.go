package repository

import (
	"context"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FeedbackRepository struct {
	db *pgxpool.Pool
}

func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO feedback (id, user_id, name, email, type, disability, rating, subject, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at`,
		f.ID, f.UserID, f.Name, f.Email, f.Type, f.Disability, f.Rating, f.Subject, f.Message,
	).Scan(&f.CreatedAt)
}
