package repository

import (
	"context"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlashcardRepository struct {
	db *pgxpool.Pool
}

func NewFlashcardRepository(db *pgxpool.Pool) *FlashcardRepository {
	return &FlashcardRepository{db: db}
}

// CreateSet stores a generated set and its cards in one transaction.
func (r *FlashcardRepository) CreateSet(ctx context.Context, set *domain.FlashcardSet, cards []domain.Flashcard) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx,
		`INSERT INTO flashcard_sets (user_id, filename, source)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		set.UserID, set.Filename, set.Source,
	).Scan(&set.ID, &set.CreatedAt)
	if err != nil {
		return err
	}

	for i := range cards {
		cards[i].SetID = set.ID
		cards[i].Position = i
		err = tx.QueryRow(ctx,
			`INSERT INTO flashcards (set_id, question, answer, position)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			cards[i].SetID, cards[i].Question, cards[i].Answer, cards[i].Position,
		).Scan(&cards[i].ID)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *FlashcardRepository) ListSets(ctx context.Context, userID int64) ([]domain.FlashcardSet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, filename, source, created_at
		 FROM flashcard_sets
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FlashcardSet
	for rows.Next() {
		var s domain.FlashcardSet
		if err := rows.Scan(&s.ID, &s.UserID, &s.Filename, &s.Source, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *FlashcardRepository) GetSet(ctx context.Context, userID, setID int64) (*domain.FlashcardSetWithCards, error) {
	var s domain.FlashcardSetWithCards
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, filename, source, created_at
		 FROM flashcard_sets
		 WHERE id = $1 AND user_id = $2`,
		setID, userID,
	).Scan(&s.ID, &s.UserID, &s.Filename, &s.Source, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, set_id, question, answer, position
		 FROM flashcards
		 WHERE set_id = $1
		 ORDER BY position`,
		setID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Flashcard
		if err := rows.Scan(&c.ID, &c.SetID, &c.Question, &c.Answer, &c.Position); err != nil {
			return nil, err
		}
		s.Cards = append(s.Cards, c)
	}
	return &s, rows.Err()
}
