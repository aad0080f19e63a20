package repository

import (
	"context"
	"errors"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoStreak is returned for users who have never logged a streak day.
var ErrNoStreak = errors.New("no login streak recorded")

type StreakRepository struct {
	db *pgxpool.Pool
}

func NewStreakRepository(db *pgxpool.Pool) *StreakRepository {
	return &StreakRepository{db: db}
}

func (r *StreakRepository) Get(ctx context.Context, userID int64) (*domain.LoginStreak, error) {
	var s domain.LoginStreak
	err := r.db.QueryRow(ctx,
		`SELECT user_id, count, last_date FROM login_streaks WHERE user_id = $1`,
		userID,
	).Scan(&s.UserID, &s.Count, &s.LastDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoStreak
		}
		return nil, err
	}
	return &s, nil
}

func (r *StreakRepository) Save(ctx context.Context, s *domain.LoginStreak) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO login_streaks (user_id, count, last_date)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET count = $2, last_date = $3`,
		s.UserID, s.Count, s.LastDate,
	)
	return err
}
