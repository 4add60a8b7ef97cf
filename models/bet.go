package models

import "time"

// BetKind represents the lifecycle state of a bet
type BetKind string

const (
	// BetKindPending is a user-placed bet awaiting settlement
	BetKindPending BetKind = "pending"
	// BetKindAutomated is a system-placed bet for the server's followed team
	BetKindAutomated BetKind = "automated"
	// BetKindWin is a settled bet that paid out
	BetKindWin BetKind = "win"
	// BetKindLoss is a settled bet that paid nothing
	BetKindLoss BetKind = "loss"
)

// IsOpen returns true if the bet has not been settled yet
func (k BetKind) IsOpen() bool {
	return k == BetKindPending || k == BetKindAutomated
}

// IsTerminal returns true if the bet has reached a final state
func (k BetKind) IsTerminal() bool {
	return k == BetKindWin || k == BetKindLoss
}

// MaxReasonLength bounds the free-text reason column
const MaxReasonLength = 128

// Bet represents a single wager in the ledger
type Bet struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Bet       int64     `db:"bet"`
	Payout    int64     `db:"payout"`
	GamePk    *int64    `db:"game_pk"`
	TeamID    *int64    `db:"team_id"`
	Kind      BetKind   `db:"kind"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// Amount returns the net profit or loss of the bet. It is the payout minus
// the stake, so an unsettled bet reads as a pure deduction and a settled
// loss reads as -stake.
func (b *Bet) Amount() int64 {
	return b.Payout - b.Bet
}

// BetResult represents the outcome of placing a bet (returned to the user)
type BetResult struct {
	Bet        *Bet
	NewBalance int64
}
