package service

import (
	"context"

	"dugout/events"
	"dugout/models"

	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, userID int64, credits int64) (*models.Profile, error) {
	args := m.Called(ctx, userID, credits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) AddCredits(ctx context.Context, userID int64, amount int64) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserIDForUpdate(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) DeductCredits(ctx context.Context, userID int64, amount int64) (int64, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetOpenByGamePk(ctx context.Context, gamePk int64) ([]*models.Bet, error) {
	args := m.Called(ctx, gamePk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetMostRecentByReason(ctx context.Context, userID int64, reason string) (*models.Bet, error) {
	args := m.Called(ctx, userID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) Settle(ctx context.Context, id int64, kind models.BetKind, payout int64) (bool, error) {
	args := m.Called(ctx, id, kind, payout)
	return args.Bool(0), args.Error(1)
}

func (m *MockBetRepository) DeleteOpen(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockChannelRepository is a mock implementation of ChannelRepository
type MockChannelRepository struct {
	mock.Mock
}

func (m *MockChannelRepository) GetByID(ctx context.Context, id int64) (*models.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) GetOrCreate(ctx context.Context, id int64) (*models.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Channel), args.Error(1)
}

func (m *MockChannelRepository) UpdateField(ctx context.Context, id int64, column string, value any) error {
	args := m.Called(ctx, id, column, value)
	return args.Error(0)
}

// MockServerRepository is a mock implementation of ServerRepository
type MockServerRepository struct {
	mock.Mock
}

func (m *MockServerRepository) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Server), args.Error(1)
}

func (m *MockServerRepository) GetOrCreate(ctx context.Context, id int64) (*models.Server, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Server), args.Error(1)
}

func (m *MockServerRepository) UpdateField(ctx context.Context, id int64, column string, value any) error {
	args := m.Called(ctx, id, column, value)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork. Transaction
// methods go through testify expectations; repository getters return
// the instances wired up with SetRepositories.
type MockUnitOfWork struct {
	mock.Mock
	profileRepo ProfileRepository
	betRepo     BetRepository
	channelRepo ChannelRepository
	serverRepo  ServerRepository
	publisher   EventPublisher
}

// SetRepositories wires the repositories returned by the getters
func (m *MockUnitOfWork) SetRepositories(profileRepo ProfileRepository, betRepo BetRepository, channelRepo ChannelRepository, serverRepo ServerRepository) {
	m.profileRepo = profileRepo
	m.betRepo = betRepo
	m.channelRepo = channelRepo
	m.serverRepo = serverRepo
}

// SetEventPublisher wires the publisher returned by EventBus
func (m *MockUnitOfWork) SetEventPublisher(publisher EventPublisher) {
	m.publisher = publisher
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) ProfileRepository() ProfileRepository {
	return m.profileRepo
}

func (m *MockUnitOfWork) BetRepository() BetRepository {
	return m.betRepo
}

func (m *MockUnitOfWork) ChannelRepository() ChannelRepository {
	return m.channelRepo
}

func (m *MockUnitOfWork) ServerRepository() ServerRepository {
	return m.serverRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	if m.publisher != nil {
		return m.publisher
	}
	return noopPublisher{}
}

type noopPublisher struct{}

func (noopPublisher) Publish(event events.Event) {}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockBettingService is a mock implementation of BettingService
type MockBettingService struct {
	mock.Mock
}

func (m *MockBettingService) PlaceBet(ctx context.Context, userID int64, amount int64, gamePk, teamID *int64, reason string, automated bool) (*models.BetResult, error) {
	args := m.Called(ctx, userID, amount, gamePk, teamID, reason, automated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BetResult), args.Error(1)
}

func (m *MockBettingService) Settle(ctx context.Context, betID int64, payout int64, won bool) (*models.Bet, error) {
	args := m.Called(ctx, betID, payout, won)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBettingService) RemoveBet(ctx context.Context, userID int64, betID int64) (*models.Bet, error) {
	args := m.Called(ctx, userID, betID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBettingService) OpenBetsForGame(ctx context.Context, gamePk int64) ([]*models.Bet, error) {
	args := m.Called(ctx, gamePk)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBettingService) BetsForUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBettingService) ClaimDailyCredits(ctx context.Context, userID int64) (*models.Bet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}
