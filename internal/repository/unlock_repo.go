package repository

import (
	"context"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type UnlockRepository struct {
	db *pgxpool.Pool
}

func NewUnlockRepository(db *pgxpool.Pool) *UnlockRepository {
	return &UnlockRepository{db: db}
}

// Set flips the unlock flag for a reward. Redeeming the same reward
// twice just re-sets the flag; unlocks never stack.
func (r *UnlockRepository) Set(ctx context.Context, userID int64, reward string) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_unlocks (user_id, reward)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, reward) DO NOTHING`,
		userID, reward,
	)
	return err
}

func (r *UnlockRepository) IsSet(ctx context.Context, userID int64, reward string) (bool, error) {
	var set bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_unlocks WHERE user_id = $1 AND reward = $2)`,
		userID, reward,
	).Scan(&set)
	return set, err
}

func (r *UnlockRepository) List(ctx context.Context, userID int64) ([]domain.UserUnlock, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, reward, unlocked_at
		 FROM user_unlocks
		 WHERE user_id = $1
		 ORDER BY unlocked_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.UserUnlock
	for rows.Next() {
		var u domain.UserUnlock
		if err := rows.Scan(&u.UserID, &u.Reward, &u.UnlockedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}
