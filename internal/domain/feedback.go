package domain

import "time"

type Feedback struct {
	ID         string    `db:"id" json:"id"`
	UserID     *int64    `db:"user_id" json:"user_id,omitempty"`
	Name       string    `db:"name" json:"name"`
	Email      string    `db:"email" json:"email"`
	Type       string    `db:"type" json:"type"`
	Disability string    `db:"disability" json:"disability,omitempty"`
	Rating     int       `db:"rating" json:"rating"`
	Subject    string    `db:"subject" json:"subject"`
	Message    string    `db:"message" json:"message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
