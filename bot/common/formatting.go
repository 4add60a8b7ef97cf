package common

import (
	"fmt"
	"strings"
	"time"

	"dugout/models"
)

// FormatCredits formats a credit amount with thousand separators
func FormatCredits(credits int64) string {
	sign := ""
	if credits < 0 {
		sign = "-"
		credits = -credits
	}
	str := fmt.Sprintf("%d", credits)

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatBetLine formats a single bet for a history listing
func FormatBetLine(bet *models.Bet) string {
	switch bet.Kind {
	case models.BetKindWin:
		if bet.Bet == 0 {
			return fmt.Sprintf("`#%d` 💰 +%s · %s", bet.ID, FormatCredits(bet.Payout), bet.Reason)
		}
		// A pool payout can land below the stake, so the net carries its
		// own sign
		net := bet.Amount()
		if net < 0 {
			return fmt.Sprintf("`#%d` 🎉 %s · %s", bet.ID, FormatCredits(net), bet.Reason)
		}
		return fmt.Sprintf("`#%d` 🎉 +%s · %s", bet.ID, FormatCredits(net), bet.Reason)
	case models.BetKindLoss:
		return fmt.Sprintf("`#%d` 😔 -%s · %s", bet.ID, FormatCredits(bet.Bet), bet.Reason)
	case models.BetKindAutomated:
		return fmt.Sprintf("`#%d` 🤖 %s staked · %s", bet.ID, FormatCredits(bet.Bet), bet.Reason)
	default:
		return fmt.Sprintf("`#%d` ⏳ %s staked · %s", bet.ID, FormatCredits(bet.Bet), bet.Reason)
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
