package models

import "time"

// Channel represents per-channel game feed settings.
// Records are created lazily the first time a channel is configured;
// a channel with no record uses the schema defaults.
type Channel struct {
	ID               int64     `db:"id"`
	OnlyScoringPlays bool      `db:"only_scoring_plays"`
	GameAdvisories   bool      `db:"game_advisories"`
	InPlayDelay      int64     `db:"in_play_delay"`
	NoPlayDelay      int64     `db:"no_play_delay"`
	ShowScoreOnOut3  bool      `db:"show_score_on_out3"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// NewChannel returns a channel record with default settings
func NewChannel(id int64) *Channel {
	return &Channel{
		ID:               id,
		OnlyScoringPlays: false,
		GameAdvisories:   true,
		InPlayDelay:      13,
		NoPlayDelay:      18,
		ShowScoreOnOut3:  true,
	}
}
