package service

import (
	"context"
	"testing"
	"time"

	"dugout/config"
	"dugout/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newBettingServiceWithMocks() (BettingService, *MockProfileRepository, *MockBetRepository) {
	mockUoW := new(MockUnitOfWork)
	mockFactory := new(MockUnitOfWorkFactory)
	mockProfileRepo := new(MockProfileRepository)
	mockBetRepo := new(MockBetRepository)

	mockUoW.SetRepositories(mockProfileRepo, mockBetRepo, new(MockChannelRepository), new(MockServerRepository))
	mockFactory.On("Create").Return(mockUoW)
	mockUoW.On("Begin", mock.Anything).Return(nil)
	mockUoW.On("Commit").Return(nil)
	mockUoW.On("Rollback").Return(nil)

	return NewBettingService(mockFactory), mockProfileRepo, mockBetRepo
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestBettingService_PlaceBet(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	profile := &models.Profile{UserID: 123456, Credits: 100}
	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("DeductCredits", ctx, int64(123456), int64(30)).Return(int64(70), nil)

	mockBetRepo.On("Create", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.UserID == 123456 &&
			b.Bet == 30 &&
			b.Payout == 0 &&
			b.GamePk != nil && *b.GamePk == 555 &&
			b.TeamID != nil && *b.TeamID == 137 &&
			b.Kind == models.BetKindPending
	})).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Bet).ID = 42
	})

	result, err := svc.PlaceBet(ctx, 123456, 30, int64Ptr(555), int64Ptr(137), "Bet on Giants for Giants @ Dodgers", false)
	require.NoError(t, err)
	assert.Equal(t, int64(42), result.Bet.ID)
	assert.Equal(t, int64(70), result.NewBalance)
	assert.Equal(t, models.BetKindPending, result.Bet.Kind)

	mockProfileRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

// The reported balance comes from the debit itself, not from the profile
// read taken before it, so a concurrent balance change between the two
// never surfaces a stale number.
func TestBettingService_PlaceBet_BalanceFromDebit(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	// The read sees 100, but another commit lands before the debit
	profile := &models.Profile{UserID: 123456, Credits: 100}
	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("DeductCredits", ctx, int64(123456), int64(30)).Return(int64(65), nil)
	mockBetRepo.On("Create", ctx, mock.Anything).Return(nil)

	result, err := svc.PlaceBet(ctx, 123456, 30, int64Ptr(555), int64Ptr(137), "Bet on Giants", false)
	require.NoError(t, err)
	assert.Equal(t, int64(65), result.NewBalance)
}

func TestBettingService_PlaceBet_Automated(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	profile := &models.Profile{UserID: 123456, Credits: 100}
	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("DeductCredits", ctx, int64(123456), int64(10)).Return(int64(90), nil)

	mockBetRepo.On("Create", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.Kind == models.BetKindAutomated
	})).Return(nil)

	result, err := svc.PlaceBet(ctx, 123456, 10, int64Ptr(555), int64Ptr(137), "Auto-bet for followed team", true)
	require.NoError(t, err)
	assert.Equal(t, models.BetKindAutomated, result.Bet.Kind)
}

func TestBettingService_PlaceBet_InsufficientCredits(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	profile := &models.Profile{UserID: 123456, Credits: 10}
	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("DeductCredits", ctx, int64(123456), int64(30)).Return(int64(0), ErrInsufficientCredits)

	result, err := svc.PlaceBet(ctx, 123456, 30, int64Ptr(555), int64Ptr(137), "Bet on Giants", false)
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Nil(t, result)

	// Failed debits never leave a bet row behind
	mockBetRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBettingService_PlaceBet_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, _ := newBettingServiceWithMocks()

	_, err := svc.PlaceBet(ctx, 123456, 0, nil, nil, "", false)
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = svc.PlaceBet(ctx, 123456, -30, nil, nil, "", false)
	assert.ErrorIs(t, err, ErrInvalidValue)

	mockProfileRepo.AssertNotCalled(t, "DeductCredits", mock.Anything, mock.Anything, mock.Anything)
}

func TestBettingService_Settle_Win(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	open := &models.Bet{ID: 42, UserID: 123456, Bet: 30, Kind: models.BetKindPending, GamePk: int64Ptr(555), TeamID: int64Ptr(137)}
	mockBetRepo.On("GetByID", ctx, int64(42)).Return(open, nil)
	mockBetRepo.On("Settle", ctx, int64(42), models.BetKindWin, int64(60)).Return(true, nil)
	mockProfileRepo.On("AddCredits", ctx, int64(123456), int64(60)).Return(nil)

	bet, err := svc.Settle(ctx, 42, 60, true)
	require.NoError(t, err)
	assert.Equal(t, models.BetKindWin, bet.Kind)
	assert.Equal(t, int64(60), bet.Payout)
	assert.Equal(t, int64(30), bet.Amount())

	mockProfileRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBettingService_Settle_Loss_NoCredit(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	open := &models.Bet{ID: 42, UserID: 123456, Bet: 30, Kind: models.BetKindPending}
	mockBetRepo.On("GetByID", ctx, int64(42)).Return(open, nil)
	mockBetRepo.On("Settle", ctx, int64(42), models.BetKindLoss, int64(0)).Return(true, nil)

	bet, err := svc.Settle(ctx, 42, 0, false)
	require.NoError(t, err)
	assert.Equal(t, models.BetKindLoss, bet.Kind)
	assert.Equal(t, int64(-30), bet.Amount())

	// A zero payout never touches the balance
	mockProfileRepo.AssertNotCalled(t, "AddCredits", mock.Anything, mock.Anything, mock.Anything)
}

func TestBettingService_Settle_AlreadySettled(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	settled := &models.Bet{ID: 42, UserID: 123456, Bet: 30, Payout: 60, Kind: models.BetKindWin}
	mockBetRepo.On("GetByID", ctx, int64(42)).Return(settled, nil)
	mockBetRepo.On("Settle", ctx, int64(42), models.BetKindWin, int64(60)).Return(false, nil)

	_, err := svc.Settle(ctx, 42, 60, true)
	assert.ErrorIs(t, err, ErrAlreadySettled)

	// The losing CAS must not credit anything
	mockProfileRepo.AssertNotCalled(t, "AddCredits", mock.Anything, mock.Anything, mock.Anything)
}

func TestBettingService_Settle_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, mockBetRepo := newBettingServiceWithMocks()

	mockBetRepo.On("GetByID", ctx, int64(999)).Return(nil, nil)

	_, err := svc.Settle(ctx, 999, 60, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBettingService_Settle_RejectsNegativePayout(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBettingServiceWithMocks()

	_, err := svc.Settle(ctx, 42, -1, true)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestBettingService_RemoveBet_RefundsStake(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	open := &models.Bet{ID: 42, UserID: 123456, Bet: 30, Kind: models.BetKindPending}
	mockBetRepo.On("GetByID", ctx, int64(42)).Return(open, nil)
	mockBetRepo.On("DeleteOpen", ctx, int64(42)).Return(true, nil)
	mockProfileRepo.On("AddCredits", ctx, int64(123456), int64(30)).Return(nil)

	bet, err := svc.RemoveBet(ctx, 123456, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(30), bet.Bet)

	mockProfileRepo.AssertExpectations(t)
	mockBetRepo.AssertExpectations(t)
}

func TestBettingService_RemoveBet_WrongOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, mockBetRepo := newBettingServiceWithMocks()

	open := &models.Bet{ID: 42, UserID: 123456, Bet: 30, Kind: models.BetKindPending}
	mockBetRepo.On("GetByID", ctx, int64(42)).Return(open, nil)

	_, err := svc.RemoveBet(ctx, 654321, 42)
	assert.ErrorIs(t, err, ErrNotFound)

	mockBetRepo.AssertNotCalled(t, "DeleteOpen", mock.Anything, mock.Anything)
}

func TestBettingService_RemoveBet_AlreadySettled(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	// The read sees an open bet but settlement wins the race
	open := &models.Bet{ID: 42, UserID: 123456, Bet: 30, Kind: models.BetKindPending}
	mockBetRepo.On("GetByID", ctx, int64(42)).Return(open, nil)
	mockBetRepo.On("DeleteOpen", ctx, int64(42)).Return(false, nil)

	_, err := svc.RemoveBet(ctx, 123456, 42)
	assert.ErrorIs(t, err, ErrAlreadySettled)

	mockProfileRepo.AssertNotCalled(t, "AddCredits", mock.Anything, mock.Anything, mock.Anything)
}

func TestBettingService_ClaimDailyCredits(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()
	daily := config.Get().DailyCredits

	profile := &models.Profile{UserID: 123456, Credits: 70}
	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("GetByUserIDForUpdate", ctx, int64(123456)).Return(profile, nil)
	mockBetRepo.On("GetMostRecentByReason", ctx, int64(123456), "Daily Credits").Return(nil, nil)
	mockProfileRepo.On("AddCredits", ctx, int64(123456), daily).Return(nil)
	mockBetRepo.On("Create", ctx, mock.MatchedBy(func(b *models.Bet) bool {
		return b.Payout == daily && b.Reason == "Daily Credits" && b.Kind == models.BetKindWin
	})).Return(nil)

	grant, err := svc.ClaimDailyCredits(ctx, 123456)
	require.NoError(t, err)
	assert.Equal(t, daily, grant.Payout)

	// The claim takes the profile row lock before checking the last
	// grant, serializing concurrent claims by the same user
	mockProfileRepo.AssertCalled(t, "GetByUserIDForUpdate", ctx, int64(123456))
}

func TestBettingService_ClaimDailyCredits_TooSoon(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()

	profile := &models.Profile{UserID: 123456, Credits: 70}
	recent := &models.Bet{ID: 7, UserID: 123456, Reason: "Daily Credits", Kind: models.BetKindWin, CreatedAt: time.Now().Add(-time.Hour)}

	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("GetByUserIDForUpdate", ctx, int64(123456)).Return(profile, nil)
	mockBetRepo.On("GetMostRecentByReason", ctx, int64(123456), "Daily Credits").Return(recent, nil)

	_, err := svc.ClaimDailyCredits(ctx, 123456)
	assert.ErrorIs(t, err, ErrDailyCreditsClaimed)

	mockProfileRepo.AssertNotCalled(t, "AddCredits", mock.Anything, mock.Anything, mock.Anything)
}

func TestBettingService_ClaimDailyCredits_After24h(t *testing.T) {
	ctx := context.Background()
	svc, mockProfileRepo, mockBetRepo := newBettingServiceWithMocks()
	daily := config.Get().DailyCredits

	profile := &models.Profile{UserID: 123456, Credits: 70}
	old := &models.Bet{ID: 7, UserID: 123456, Reason: "Daily Credits", Kind: models.BetKindWin, CreatedAt: time.Now().Add(-25 * time.Hour)}

	mockProfileRepo.On("GetByUserID", ctx, int64(123456)).Return(profile, nil)
	mockProfileRepo.On("GetByUserIDForUpdate", ctx, int64(123456)).Return(profile, nil)
	mockBetRepo.On("GetMostRecentByReason", ctx, int64(123456), "Daily Credits").Return(old, nil)
	mockProfileRepo.On("AddCredits", ctx, int64(123456), daily).Return(nil)
	mockBetRepo.On("Create", ctx, mock.Anything).Return(nil)

	_, err := svc.ClaimDailyCredits(ctx, 123456)
	require.NoError(t, err)
}
