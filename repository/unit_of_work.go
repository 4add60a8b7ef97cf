package repository

import (
	"context"
	"fmt"

	"dugout/database"
	"dugout/events"
	"dugout/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements the service.UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	profileRepo      service.ProfileRepository
	betRepo          service.BetRepository
	channelRepo      service.ChannelRepository
	serverRepo       service.ServerRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Create repositories bound to the transaction
	u.profileRepo = newProfileRepositoryWithTx(tx)
	u.betRepo = newBetRepositoryWithTx(tx)
	u.channelRepo = newChannelRepositoryWithTx(tx)
	u.serverRepo = newServerRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and flushes pending events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Flush(u.ctx)
	}

	return nil
}

// Rollback rolls back the transaction and discards pending events
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback(u.ctx)
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	u.tx = nil

	if u.transactionalBus != nil {
		u.transactionalBus.Discard()
	}

	return nil
}

// ProfileRepository returns the profile repository for this unit of work
func (u *unitOfWork) ProfileRepository() service.ProfileRepository {
	if u.profileRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.profileRepo
}

// BetRepository returns the bet repository for this unit of work
func (u *unitOfWork) BetRepository() service.BetRepository {
	if u.betRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.betRepo
}

// ChannelRepository returns the channel repository for this unit of work
func (u *unitOfWork) ChannelRepository() service.ChannelRepository {
	if u.channelRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.channelRepo
}

// ServerRepository returns the server repository for this unit of work
func (u *unitOfWork) ServerRepository() service.ServerRepository {
	if u.serverRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.serverRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
