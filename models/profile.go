package models

import "time"

// Profile represents a Discord user's betting account
type Profile struct {
	UserID    int64     `db:"user_id"`
	Credits   int64     `db:"credits"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
