package domain

import "time"

// LoginStreak tracks consecutive daily logins. Count increments only
// when LastDate advances by exactly one calendar day; a gap resets it
// to 1; a repeat login on the same day leaves it unchanged.
type LoginStreak struct {
	UserID   int64     `db:"user_id" json:"user_id"`
	Count    int       `db:"count" json:"count"`
	LastDate time.Time `db:"last_date" json:"last_date"`
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
