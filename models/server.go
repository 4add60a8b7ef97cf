package models

import "time"

// Server represents per-guild settings. TeamID is the team the server
// follows; 0 means no team has been picked.
type Server struct {
	ID        int64     `db:"id"`
	TeamID    int64     `db:"team_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// NewServer returns a server record with default settings
func NewServer(id int64) *Server {
	return &Server{ID: id}
}
