package service

import (
	"context"
	"fmt"

	"dugout/config"
	"dugout/events"
	"dugout/models"
)

const initialCreditsReason = "Initial betting credits"

type creditService struct {
	uowFactory UnitOfWorkFactory
}

// NewCreditService creates a new credit service
func NewCreditService(uowFactory UnitOfWorkFactory) CreditService {
	return &creditService{
		uowFactory: uowFactory,
	}
}

// getOrCreateProfile loads the profile inside an existing unit of work,
// creating it with the starting credits on first interaction. Creation
// also records the initial grant in the bet ledger so the balance history
// starts from zero, matching how every later change is accounted for.
func getOrCreateProfile(ctx context.Context, uow UnitOfWork, userID int64) (*models.Profile, error) {
	profile, err := uow.ProfileRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	cfg := config.Get()
	profile, err = uow.ProfileRepository().Create(ctx, userID, cfg.StartingCredits)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	if profile == nil {
		// Another first-touch won the insert; its commit also wrote the
		// initial grant, so this side only reads the result back
		profile, err = uow.ProfileRepository().GetByUserID(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get profile: %w", err)
		}
		if profile == nil {
			return nil, fmt.Errorf("%w: profile for user %d", ErrNotFound, userID)
		}
		return profile, nil
	}

	grant := &models.Bet{
		UserID: userID,
		Bet:    0,
		Payout: cfg.StartingCredits,
		Kind:   models.BetKindWin,
		Reason: initialCreditsReason,
	}
	if err := uow.BetRepository().Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to record initial credits: %w", err)
	}

	uow.EventBus().Publish(events.ProfileCreatedEvent{
		UserID:         userID,
		InitialCredits: cfg.StartingCredits,
	})

	return profile, nil
}

func (s *creditService) GetOrCreateProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	profile, err := getOrCreateProfile(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return profile, nil
}

func (s *creditService) Balance(ctx context.Context, userID int64) (int64, error) {
	profile, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.Credits, nil
}

func (s *creditService) Debit(ctx context.Context, userID int64, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: debit amount must be positive", ErrInvalidValue)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getOrCreateProfile(ctx, uow, userID); err != nil {
		return err
	}

	if _, err := uow.ProfileRepository().DeductCredits(ctx, userID, amount); err != nil {
		return err
	}

	uow.EventBus().Publish(events.CreditsChangedEvent{
		UserID:       userID,
		ChangeAmount: -amount,
		Reason:       "debit",
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *creditService) Credit(ctx context.Context, userID int64, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: credit amount must not be negative", ErrInvalidValue)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getOrCreateProfile(ctx, uow, userID); err != nil {
		return err
	}

	if err := uow.ProfileRepository().AddCredits(ctx, userID, amount); err != nil {
		return err
	}

	uow.EventBus().Publish(events.CreditsChangedEvent{
		UserID:       userID,
		ChangeAmount: amount,
		Reason:       "credit",
	})

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
