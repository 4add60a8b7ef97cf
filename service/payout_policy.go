package service

import "dugout/models"

// PayoutPolicy computes the payout for each winning bet of a finished
// game. Losing bets always pay zero; the policy only decides how much
// the winners collect. Which policy runs is deployment configuration,
// not core ledger behavior.
type PayoutPolicy interface {
	// Payouts returns a payout per winning bet ID. Bets absent from the
	// map are settled as losses.
	Payouts(bets []*models.Bet, winningTeamID int64) map[int64]int64
}

// FixedOddsPolicy pays each winner its stake times a fixed multiplier
type FixedOddsPolicy struct {
	Multiplier int64
}

func (p FixedOddsPolicy) Payouts(bets []*models.Bet, winningTeamID int64) map[int64]int64 {
	payouts := make(map[int64]int64)
	for _, bet := range bets {
		if bet.TeamID != nil && *bet.TeamID == winningTeamID {
			payouts[bet.ID] = bet.Bet * p.Multiplier
		}
	}
	return payouts
}

// PariMutuelPolicy splits the whole pool staked on a game over the
// winning stakes: each winner collects floor(stake / winningPool *
// totalPool). With no winning stakes the pool is forfeited.
type PariMutuelPolicy struct{}

func (p PariMutuelPolicy) Payouts(bets []*models.Bet, winningTeamID int64) map[int64]int64 {
	var totalPool, winningPool int64
	for _, bet := range bets {
		totalPool += bet.Bet
		if bet.TeamID != nil && *bet.TeamID == winningTeamID {
			winningPool += bet.Bet
		}
	}

	payouts := make(map[int64]int64)
	if winningPool == 0 {
		return payouts
	}

	for _, bet := range bets {
		if bet.TeamID != nil && *bet.TeamID == winningTeamID {
			payouts[bet.ID] = bet.Bet * totalPool / winningPool
		}
	}
	return payouts
}
