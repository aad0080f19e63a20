package repository

import (
	"context"

	"echolearn/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NoteRepository struct {
	db *pgxpool.Pool
}

func NewNoteRepository(db *pgxpool.Pool) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO notes (user_id, content) VALUES ($1, $2) RETURNING id, created_at`,
		n.UserID, n.Content,
	).Scan(&n.ID, &n.CreatedAt)
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Note, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, content, created_at
		 FROM notes
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Content, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	return result, rows.Err()
}

// Delete removes a note if it belongs to the user; reports whether a
// row was removed.
func (r *NoteRepository) Delete(ctx context.Context, userID, noteID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notes WHERE id = $1 AND user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
