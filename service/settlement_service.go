package service

import (
	"context"
	"errors"
	"fmt"

	"dugout/events"

	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	bettingService BettingService
	policy         PayoutPolicy
}

// NewSettlementService creates a new settlement service
func NewSettlementService(bettingService BettingService, policy PayoutPolicy) SettlementService {
	return &settlementService{
		bettingService: bettingService,
		policy:         policy,
	}
}

// RegisterSettlementHandler subscribes the settlement service to the
// game-result feed
func RegisterSettlementHandler(bus *events.Bus, svc SettlementService) {
	bus.Subscribe(events.EventTypeGameResult, func(ctx context.Context, event events.Event) {
		result, ok := event.(events.GameResultEvent)
		if !ok {
			return
		}
		if err := svc.HandleGameResult(ctx, result.GamePk, result.WinningTeamID); err != nil {
			log.WithFields(log.Fields{
				"gamePk":        result.GamePk,
				"winningTeamId": result.WinningTeamID,
				"error":         err,
			}).Error("Failed to settle bets for game result")
		}
	})
}

func (s *settlementService) HandleGameResult(ctx context.Context, gamePk int64, winningTeamID int64) error {
	bets, err := s.bettingService.OpenBetsForGame(ctx, gamePk)
	if err != nil {
		return fmt.Errorf("failed to list open bets for game %d: %w", gamePk, err)
	}

	if len(bets) == 0 {
		log.WithField("gamePk", gamePk).Debug("No open bets for game result")
		return nil
	}

	payouts := s.policy.Payouts(bets, winningTeamID)

	var wins, losses int
	var totalPaid int64
	var failed []error

	for _, bet := range bets {
		payout, won := payouts[bet.ID]

		_, err := s.bettingService.Settle(ctx, bet.ID, payout, won)
		if err != nil {
			// Redelivered result or a concurrent settlement already
			// finalized this bet; skipping keeps the pass idempotent
			if errors.Is(err, ErrAlreadySettled) {
				log.WithFields(log.Fields{
					"betId":  bet.ID,
					"gamePk": gamePk,
				}).Debug("Bet already settled, skipping")
				continue
			}
			failed = append(failed, fmt.Errorf("bet %d: %w", bet.ID, err))
			continue
		}

		if won {
			wins++
			totalPaid += payout
		} else {
			losses++
		}
	}

	log.WithFields(log.Fields{
		"gamePk":        gamePk,
		"winningTeamId": winningTeamID,
		"wins":          wins,
		"losses":        losses,
		"totalPaid":     totalPaid,
	}).Info("Settled open bets for game")

	if len(failed) > 0 {
		return fmt.Errorf("settlement incomplete for game %d: %w", gamePk, errors.Join(failed...))
	}
	return nil
}
