package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBetKind_IsOpen(t *testing.T) {
	assert.True(t, BetKindPending.IsOpen())
	assert.True(t, BetKindAutomated.IsOpen())
	assert.False(t, BetKindWin.IsOpen())
	assert.False(t, BetKindLoss.IsOpen())
}

func TestBetKind_IsTerminal(t *testing.T) {
	assert.False(t, BetKindPending.IsTerminal())
	assert.False(t, BetKindAutomated.IsTerminal())
	assert.True(t, BetKindWin.IsTerminal())
	assert.True(t, BetKindLoss.IsTerminal())
}

func TestBet_Amount(t *testing.T) {
	tests := []struct {
		name     string
		bet      Bet
		expected int64
	}{
		{
			name:     "open bet reads as deduction",
			bet:      Bet{Bet: 30, Payout: 0, Kind: BetKindPending},
			expected: -30,
		},
		{
			name:     "settled win is net profit",
			bet:      Bet{Bet: 30, Payout: 60, Kind: BetKindWin},
			expected: 30,
		},
		{
			name:     "settled loss is negative stake",
			bet:      Bet{Bet: 30, Payout: 0, Kind: BetKindLoss},
			expected: -30,
		},
		{
			name:     "credit grant is pure payout",
			bet:      Bet{Bet: 0, Payout: 100, Kind: BetKindWin},
			expected: 100,
		},
		{
			name:     "pari-mutuel win can round below stake",
			bet:      Bet{Bet: 30, Payout: 25, Kind: BetKindWin},
			expected: -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.bet.Amount())
		})
	}
}
