package domain

import "time"

// FlashcardSource tells how a set was generated.
type FlashcardSource string

const (
	FlashcardSourceAI       FlashcardSource = "ai"
	FlashcardSourceFallback FlashcardSource = "fallback"
)

// FlashcardSet groups the cards generated from one uploaded document.
type FlashcardSet struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Filename  string          `db:"filename" json:"filename"`
	Source    FlashcardSource `db:"source" json:"source"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

type Flashcard struct {
	ID       int64  `db:"id" json:"id"`
	SetID    int64  `db:"set_id" json:"set_id"`
	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
	Position int    `db:"position" json:"position"`
}

// FlashcardSetWithCards is the API shape for a set plus its cards.
type FlashcardSetWithCards struct {
	FlashcardSet
	Cards []Flashcard `json:"cards"`
}
