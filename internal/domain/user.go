package domain

import "time"

type User struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash []byte    `db:"password_hash" json:"-"`
	Coins        int64     `db:"coins" json:"coins"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
