package testutil

import (
	"dugout/models"
)

// CreateTestBet creates a pending bet with default values
func CreateTestBet(userID int64, amount int64) *models.Bet {
	gamePk := int64(744825)
	teamID := int64(137)
	return &models.Bet{
		UserID: userID,
		Bet:    amount,
		Payout: 0,
		GamePk: &gamePk,
		TeamID: &teamID,
		Kind:   models.BetKindPending,
		Reason: "Bet on Giants for Giants @ Dodgers",
	}
}

// CreateTestBetForGame creates a pending bet on a specific game and team
func CreateTestBetForGame(userID int64, amount int64, gamePk int64, teamID int64) *models.Bet {
	bet := CreateTestBet(userID, amount)
	bet.GamePk = &gamePk
	bet.TeamID = &teamID
	return bet
}

// CreateTestGrant creates a settled zero-stake credit grant
func CreateTestGrant(userID int64, amount int64, reason string) *models.Bet {
	return &models.Bet{
		UserID: userID,
		Bet:    0,
		Payout: amount,
		Kind:   models.BetKindWin,
		Reason: reason,
	}
}
