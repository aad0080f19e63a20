package repository

import (
	"context"
	"time"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AchievementRepository struct {
	db *pgxpool.Pool
}

func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GetOrCreate returns the user's progress row for an achievement,
// creating a zero-progress row if none exists yet.
func (r *AchievementRepository) GetOrCreate(ctx context.Context, userID int64, key string) (*domain.UserAchievement, error) {
	var ua domain.UserAchievement

	err := r.db.QueryRow(ctx,
		`SELECT user_id, key, current, completed, completed_at
		 FROM user_achievements
		 WHERE user_id = $1 AND key = $2`,
		userID, key,
	).Scan(&ua.UserID, &ua.Key, &ua.Current, &ua.Completed, &ua.CompletedAt)
	if err == nil {
		return &ua, nil
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO user_achievements (user_id, key)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, key) DO UPDATE SET key = EXCLUDED.key
		 RETURNING user_id, key, current, completed, completed_at`,
		userID, key,
	).Scan(&ua.UserID, &ua.Key, &ua.Current, &ua.Completed, &ua.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &ua, nil
}

// Save persists progress for a user's achievement.
func (r *AchievementRepository) Save(ctx context.Context, ua *domain.UserAchievement) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_achievements
		 SET current = $1, completed = $2, completed_at = $3
		 WHERE user_id = $4 AND key = $5`,
		ua.Current, ua.Completed, ua.CompletedAt, ua.UserID, ua.Key,
	)
	return err
}

// MarkCompleted flips completed false→true and reports whether this
// call won the transition. The guard makes unlock bonuses fire exactly
// once even with repeated progress updates.
func (r *AchievementRepository) MarkCompleted(ctx context.Context, userID int64, key string, current int, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE user_achievements
		 SET current = $1, completed = true, completed_at = $2
		 WHERE user_id = $3 AND key = $4 AND completed = false`,
		current, at, userID, key,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// ListByUser returns all stored progress rows for a user.
func (r *AchievementRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserAchievement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, key, current, completed, completed_at
		 FROM user_achievements
		 WHERE user_id = $1
		 ORDER BY key`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserAchievement
	for rows.Next() {
		var ua domain.UserAchievement
		if err := rows.Scan(&ua.UserID, &ua.Key, &ua.Current, &ua.Completed, &ua.CompletedAt); err != nil {
			return nil, err
		}
		result = append(result, ua)
	}
	return result, rows.Err()
}
