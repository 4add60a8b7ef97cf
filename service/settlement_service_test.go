package service

import (
	"context"
	"testing"

	"dugout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func openBet(id, userID, amount, teamID int64) *models.Bet {
	gamePk := int64(555)
	team := teamID
	return &models.Bet{
		ID:     id,
		UserID: userID,
		Bet:    amount,
		GamePk: &gamePk,
		TeamID: &team,
		Kind:   models.BetKindPending,
	}
}

func TestSettlementService_FixedOdds_SettlesAllBets(t *testing.T) {
	ctx := context.Background()
	mockBetting := new(MockBettingService)
	svc := NewSettlementService(mockBetting, FixedOddsPolicy{Multiplier: 2})

	bets := []*models.Bet{
		openBet(1, 100, 30, 137), // backed the winner
		openBet(2, 200, 50, 119), // backed the loser
	}
	mockBetting.On("OpenBetsForGame", ctx, int64(555)).Return(bets, nil)
	mockBetting.On("Settle", ctx, int64(1), int64(60), true).Return(&models.Bet{ID: 1, Kind: models.BetKindWin, Payout: 60}, nil)
	mockBetting.On("Settle", ctx, int64(2), int64(0), false).Return(&models.Bet{ID: 2, Kind: models.BetKindLoss}, nil)

	err := svc.HandleGameResult(ctx, 555, 137)
	require.NoError(t, err)
	mockBetting.AssertExpectations(t)
}

func TestSettlementService_NoOpenBets(t *testing.T) {
	ctx := context.Background()
	mockBetting := new(MockBettingService)
	svc := NewSettlementService(mockBetting, FixedOddsPolicy{Multiplier: 2})

	mockBetting.On("OpenBetsForGame", ctx, int64(555)).Return([]*models.Bet{}, nil)

	err := svc.HandleGameResult(ctx, 555, 137)
	require.NoError(t, err)

	mockBetting.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSettlementService_AlreadySettledIsSkipped(t *testing.T) {
	ctx := context.Background()
	mockBetting := new(MockBettingService)
	svc := NewSettlementService(mockBetting, FixedOddsPolicy{Multiplier: 2})

	bets := []*models.Bet{
		openBet(1, 100, 30, 137),
		openBet(2, 200, 50, 137),
	}
	mockBetting.On("OpenBetsForGame", ctx, int64(555)).Return(bets, nil)
	// A redelivered result races with the first pass on bet 1
	mockBetting.On("Settle", ctx, int64(1), int64(60), true).Return(nil, ErrAlreadySettled)
	mockBetting.On("Settle", ctx, int64(2), int64(100), true).Return(&models.Bet{ID: 2, Kind: models.BetKindWin, Payout: 100}, nil)

	err := svc.HandleGameResult(ctx, 555, 137)
	require.NoError(t, err)
	mockBetting.AssertExpectations(t)
}

func TestSettlementService_ReportsFailures(t *testing.T) {
	ctx := context.Background()
	mockBetting := new(MockBettingService)
	svc := NewSettlementService(mockBetting, FixedOddsPolicy{Multiplier: 2})

	bets := []*models.Bet{
		openBet(1, 100, 30, 137),
		openBet(2, 200, 50, 137),
	}
	mockBetting.On("OpenBetsForGame", ctx, int64(555)).Return(bets, nil)
	mockBetting.On("Settle", ctx, int64(1), int64(60), true).Return(nil, assert.AnError)
	mockBetting.On("Settle", ctx, int64(2), int64(100), true).Return(&models.Bet{ID: 2, Kind: models.BetKindWin, Payout: 100}, nil)

	err := svc.HandleGameResult(ctx, 555, 137)
	assert.Error(t, err)
	// One failure does not stop the rest of the pass
	mockBetting.AssertExpectations(t)
}

func TestSettlementService_PariMutuel(t *testing.T) {
	ctx := context.Background()
	mockBetting := new(MockBettingService)
	svc := NewSettlementService(mockBetting, PariMutuelPolicy{})

	// Pool is 100: winners split it in proportion to their stakes
	bets := []*models.Bet{
		openBet(1, 100, 30, 137),
		openBet(2, 200, 10, 137),
		openBet(3, 300, 60, 119),
	}
	mockBetting.On("OpenBetsForGame", ctx, int64(555)).Return(bets, nil)
	mockBetting.On("Settle", ctx, int64(1), int64(75), true).Return(&models.Bet{ID: 1, Kind: models.BetKindWin, Payout: 75}, nil)
	mockBetting.On("Settle", ctx, int64(2), int64(25), true).Return(&models.Bet{ID: 2, Kind: models.BetKindWin, Payout: 25}, nil)
	mockBetting.On("Settle", ctx, int64(3), int64(0), false).Return(&models.Bet{ID: 3, Kind: models.BetKindLoss}, nil)

	err := svc.HandleGameResult(ctx, 555, 137)
	require.NoError(t, err)
	mockBetting.AssertExpectations(t)
}
