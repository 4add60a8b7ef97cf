package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dugout/config"
	"dugout/events"
	"dugout/models"
)

const dailyCreditsReason = "Daily Credits"

// ErrDailyCreditsClaimed indicates a daily claim inside the 24h window
var ErrDailyCreditsClaimed = errors.New("daily credits already claimed")

type bettingService struct {
	uowFactory UnitOfWorkFactory
}

// NewBettingService creates a new betting service
func NewBettingService(uowFactory UnitOfWorkFactory) BettingService {
	return &bettingService{
		uowFactory: uowFactory,
	}
}

func (s *bettingService) PlaceBet(ctx context.Context, userID int64, amount int64, gamePk, teamID *int64, reason string, automated bool) (*models.BetResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: bet amount must be positive", ErrInvalidValue)
	}
	if len(reason) > models.MaxReasonLength {
		reason = reason[:models.MaxReasonLength]
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	if _, err := getOrCreateProfile(ctx, uow, userID); err != nil {
		return nil, err
	}

	// Debit first: when this fails no bet row is ever written. The debit
	// also reports the post-debit balance, which is the one callers see.
	newBalance, err := uow.ProfileRepository().DeductCredits(ctx, userID, amount)
	if err != nil {
		return nil, err
	}

	kind := models.BetKindPending
	if automated {
		kind = models.BetKindAutomated
	}

	bet := &models.Bet{
		UserID: userID,
		Bet:    amount,
		Payout: 0,
		GamePk: gamePk,
		TeamID: teamID,
		Kind:   kind,
		Reason: reason,
	}
	if err := uow.BetRepository().Create(ctx, bet); err != nil {
		return nil, fmt.Errorf("failed to create bet record: %w", err)
	}

	uow.EventBus().Publish(events.BetPlacedEvent{
		BetID:  bet.ID,
		UserID: userID,
		Amount: amount,
		GamePk: gamePk,
		Kind:   kind,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.BetResult{
		Bet:        bet,
		NewBalance: newBalance,
	}, nil
}

func (s *bettingService) Settle(ctx context.Context, betID int64, payout int64, won bool) (*models.Bet, error) {
	if payout < 0 {
		return nil, fmt.Errorf("%w: payout must not be negative", ErrInvalidValue)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil {
		return nil, fmt.Errorf("%w: bet %d", ErrNotFound, betID)
	}

	kind := models.BetKindLoss
	if won {
		kind = models.BetKindWin
	}

	// Compare-and-set on the bet's state: the transition succeeds for
	// exactly one caller, everyone else sees AlreadySettled
	settled, err := uow.BetRepository().Settle(ctx, betID, kind, payout)
	if err != nil {
		return nil, fmt.Errorf("failed to settle bet: %w", err)
	}
	if !settled {
		return nil, fmt.Errorf("%w: bet %d", ErrAlreadySettled, betID)
	}

	// The payout credit shares the transaction with the state transition,
	// so both happen or neither does
	if payout > 0 {
		if err := uow.ProfileRepository().AddCredits(ctx, bet.UserID, payout); err != nil {
			return nil, fmt.Errorf("failed to credit payout: %w", err)
		}
	}

	uow.EventBus().Publish(events.BetSettledEvent{
		BetID:  betID,
		UserID: bet.UserID,
		Kind:   kind,
		Payout: payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	bet.Kind = kind
	bet.Payout = payout
	return bet, nil
}

func (s *bettingService) RemoveBet(ctx context.Context, userID int64, betID int64) (*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bet, err := uow.BetRepository().GetByID(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bet: %w", err)
	}
	if bet == nil || bet.UserID != userID {
		return nil, fmt.Errorf("%w: bet %d", ErrNotFound, betID)
	}
	if bet.Kind == models.BetKindAutomated {
		return nil, fmt.Errorf("%w: automated bets cannot be withdrawn", ErrInvalidValue)
	}

	removed, err := uow.BetRepository().DeleteOpen(ctx, betID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove bet: %w", err)
	}
	if !removed {
		return nil, fmt.Errorf("%w: bet %d", ErrAlreadySettled, betID)
	}

	if err := uow.ProfileRepository().AddCredits(ctx, userID, bet.Bet); err != nil {
		return nil, fmt.Errorf("failed to refund stake: %w", err)
	}

	uow.EventBus().Publish(events.CreditsChangedEvent{
		UserID:       userID,
		ChangeAmount: bet.Bet,
		Reason:       "bet withdrawn",
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bet, nil
}

func (s *bettingService) OpenBetsForGame(ctx context.Context, gamePk int64) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetOpenByGamePk(ctx, gamePk)
	if err != nil {
		return nil, fmt.Errorf("failed to get open bets for game %d: %w", gamePk, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bets, nil
}

func (s *bettingService) BetsForUser(ctx context.Context, userID int64, limit int) ([]*models.Bet, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	bets, err := uow.BetRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %d: %w", userID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bets, nil
}

func (s *bettingService) ClaimDailyCredits(ctx context.Context, userID int64) (*models.Bet, error) {
	cfg := config.Get()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, err := getOrCreateProfile(ctx, uow, userID); err != nil {
		return nil, err
	}

	// Lock the profile row before checking the last grant so concurrent
	// claims serialize; the loser re-checks after the winner's grant row
	// is visible and lands inside the 24h window
	if _, err := uow.ProfileRepository().GetByUserIDForUpdate(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to lock profile: %w", err)
	}

	last, err := uow.BetRepository().GetMostRecentByReason(ctx, userID, dailyCreditsReason)
	if err != nil {
		return nil, fmt.Errorf("failed to check last daily claim: %w", err)
	}
	if last != nil {
		nextClaim := last.CreatedAt.Add(24 * time.Hour)
		if time.Now().Before(nextClaim) {
			return nil, fmt.Errorf("%w: next claim at %s", ErrDailyCreditsClaimed, nextClaim.UTC().Format(time.RFC3339))
		}
	}

	if err := uow.ProfileRepository().AddCredits(ctx, userID, cfg.DailyCredits); err != nil {
		return nil, fmt.Errorf("failed to add daily credits: %w", err)
	}

	grant := &models.Bet{
		UserID: userID,
		Bet:    0,
		Payout: cfg.DailyCredits,
		Kind:   models.BetKindWin,
		Reason: dailyCreditsReason,
	}
	if err := uow.BetRepository().Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to record daily credits: %w", err)
	}

	uow.EventBus().Publish(events.CreditsChangedEvent{
		UserID:       userID,
		ChangeAmount: cfg.DailyCredits,
		Reason:       dailyCreditsReason,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return grant, nil
}
