package service

import (
	"context"

	"dugout/events"
	"dugout/models"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// GetByUserID retrieves a profile, or nil if none exists
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)

	// GetByUserIDForUpdate retrieves a profile and holds its row lock for
	// the rest of the transaction, serializing writers on the same user
	GetByUserIDForUpdate(ctx context.Context, userID int64) (*models.Profile, error)

	// Create inserts a new profile with the given starting credits, or
	// returns nil if another writer created it first
	Create(ctx context.Context, userID int64, credits int64) (*models.Profile, error)

	// AddCredits atomically increases a profile's credits
	AddCredits(ctx context.Context, userID int64, amount int64) error

	// DeductCredits atomically decreases a profile's credits and returns
	// the resulting balance, failing with ErrInsufficientCredits if the
	// balance does not cover the amount
	DeductCredits(ctx context.Context, userID int64, amount int64) (int64, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create persists a new bet and fills in its ID and creation time
	Create(ctx context.Context, bet *models.Bet) error

	// GetByID retrieves a bet, or nil if none exists
	GetByID(ctx context.Context, id int64) (*models.Bet, error)

	// GetByUser returns a user's bets, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error)

	// GetOpenByGamePk returns all open bets referencing a game
	GetOpenByGamePk(ctx context.Context, gamePk int64) ([]*models.Bet, error)

	// GetMostRecentByReason returns the user's newest bet with the given
	// reason, or nil if none exists
	GetMostRecentByReason(ctx context.Context, userID int64, reason string) (*models.Bet, error)

	// Settle transitions an open bet to a terminal kind and records its
	// payout. Returns false if the bet was not in an open state.
	Settle(ctx context.Context, id int64, kind models.BetKind, payout int64) (bool, error)

	// DeleteOpen removes a bet that is still in an open state.
	// Returns false if the bet was not open.
	DeleteOpen(ctx context.Context, id int64) (bool, error)
}

// ChannelRepository defines the interface for channel settings data access
type ChannelRepository interface {
	// GetByID retrieves a channel record, or nil if none exists
	GetByID(ctx context.Context, id int64) (*models.Channel, error)

	// GetOrCreate retrieves a channel record, creating it with default
	// settings if absent
	GetOrCreate(ctx context.Context, id int64) (*models.Channel, error)

	// UpdateField persists a single column of an existing channel record
	UpdateField(ctx context.Context, id int64, column string, value any) error
}

// ServerRepository defines the interface for server settings data access
type ServerRepository interface {
	// GetByID retrieves a server record, or nil if none exists
	GetByID(ctx context.Context, id int64) (*models.Server, error)

	// GetOrCreate retrieves a server record, creating it with default
	// settings if absent
	GetOrCreate(ctx context.Context, id int64) (*models.Server, error)

	// UpdateField persists a single column of an existing server record
	UpdateField(ctx context.Context, id int64, column string, value any) error
}

// EventPublisher defines the interface for publishing events within a
// unit of work; published events are delivered only after commit
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Repository getters
	ProfileRepository() ProfileRepository
	BetRepository() BetRepository
	ChannelRepository() ChannelRepository
	ServerRepository() ServerRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// CreditService manages per-user credit balances
type CreditService interface {
	// GetOrCreateProfile returns the user's profile, creating it with the
	// starting credits on first interaction
	GetOrCreateProfile(ctx context.Context, userID int64) (*models.Profile, error)

	// Balance returns the user's current credits
	Balance(ctx context.Context, userID int64) (int64, error)

	// Debit decreases the user's credits, failing with
	// ErrInsufficientCredits if the balance does not cover the amount
	Debit(ctx context.Context, userID int64, amount int64) error

	// Credit increases the user's credits
	Credit(ctx context.Context, userID int64, amount int64) error
}

// BettingService is the wager ledger: it records bets, enforces the bet
// state machine and settles outcomes against the credit balance
type BettingService interface {
	// PlaceBet debits the stake and records an open bet, atomically
	PlaceBet(ctx context.Context, userID int64, amount int64, gamePk, teamID *int64, reason string, automated bool) (*models.BetResult, error)

	// Settle transitions an open bet to WIN or LOSS and credits the payout
	Settle(ctx context.Context, betID int64, payout int64, won bool) (*models.Bet, error)

	// RemoveBet withdraws an open user-placed bet and refunds the stake
	RemoveBet(ctx context.Context, userID int64, betID int64) (*models.Bet, error)

	// OpenBetsForGame returns all open bets referencing a game
	OpenBetsForGame(ctx context.Context, gamePk int64) ([]*models.Bet, error)

	// BetsForUser returns a user's bets, newest first
	BetsForUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error)

	// ClaimDailyCredits grants the daily credits, at most once per 24h
	ClaimDailyCredits(ctx context.Context, userID int64) (*models.Bet, error)
}

// ConfigService is the dynamic config store: generic, schema-validated
// get/set of named fields on channel and server records
type ConfigService interface {
	// Get returns the current value of a named field, or its schema
	// default if the record has never been configured
	Get(ctx context.Context, kind EntityKind, id int64, field string) (any, error)

	// Set parses and validates a raw value and persists it, creating the
	// record with defaults on first touch
	Set(ctx context.Context, kind EntityKind, id int64, field string, raw string) error

	// ChannelSettings returns the full channel record, or defaults if the
	// channel has never been configured
	ChannelSettings(ctx context.Context, id int64) (*models.Channel, error)

	// ServerSettings returns the full server record, or defaults if the
	// server has never been configured
	ServerSettings(ctx context.Context, id int64) (*models.Server, error)
}

// SettlementService resolves open bets when a game finishes
type SettlementService interface {
	// HandleGameResult settles every open bet for the game. Safe to call
	// repeatedly with the same result.
	HandleGameResult(ctx context.Context, gamePk int64, winningTeamID int64) error
}
