package service

import (
	"testing"

	"dugout/models"

	"github.com/stretchr/testify/assert"
)

func TestFixedOddsPolicy(t *testing.T) {
	policy := FixedOddsPolicy{Multiplier: 2}

	bets := []*models.Bet{
		openBet(1, 100, 30, 137),
		openBet(2, 200, 50, 119),
		openBet(3, 300, 10, 137),
	}

	payouts := policy.Payouts(bets, 137)
	assert.Equal(t, map[int64]int64{1: 60, 3: 20}, payouts)
}

func TestPariMutuelPolicy(t *testing.T) {
	t.Run("splits pool by stake", func(t *testing.T) {
		bets := []*models.Bet{
			openBet(1, 100, 30, 137),
			openBet(2, 200, 10, 137),
			openBet(3, 300, 60, 119),
		}

		payouts := PariMutuelPolicy{}.Payouts(bets, 137)
		assert.Equal(t, map[int64]int64{1: 75, 2: 25}, payouts)
	})

	t.Run("rounds down", func(t *testing.T) {
		bets := []*models.Bet{
			openBet(1, 100, 3, 137),
			openBet(2, 200, 4, 137),
			openBet(3, 300, 3, 119),
		}

		// Pool is 10, winning pool 7: 3*10/7=4, 4*10/7=5
		payouts := PariMutuelPolicy{}.Payouts(bets, 137)
		assert.Equal(t, map[int64]int64{1: 4, 2: 5}, payouts)
	})

	t.Run("no winners forfeits the pool", func(t *testing.T) {
		bets := []*models.Bet{
			openBet(1, 100, 30, 119),
			openBet(2, 200, 10, 119),
		}

		payouts := PariMutuelPolicy{}.Payouts(bets, 137)
		assert.Empty(t, payouts)
	})

	t.Run("nil team never wins", func(t *testing.T) {
		bet := openBet(1, 100, 30, 137)
		bet.TeamID = nil

		payouts := PariMutuelPolicy{}.Payouts([]*models.Bet{bet}, 137)
		assert.Empty(t, payouts)
	})
}
