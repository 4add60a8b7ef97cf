package betting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dugout/bot/common"
	"dugout/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func parseInvokingUserID(i *discordgo.InteractionCreate) (int64, error) {
	return strconv.ParseInt(i.Member.User.ID, 10, 64)
}

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := parseInvokingUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	profile, err := f.creditService.GetOrCreateProfile(ctx, userID)
	if err != nil {
		log.Errorf("Error getting profile %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve balance. Please try again.")
		return
	}

	displayName := common.GetDisplayName(s, i.GuildID, i.Member.User.ID)
	message := fmt.Sprintf("%s, your current balance: **%s credits**", displayName, common.FormatCredits(profile.Credits))
	if err := common.Respond(s, i, message, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handlePlace(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := parseInvokingUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var amount, gamePk, teamID int64
	var reason string
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		switch opt.Name {
		case "amount":
			amount = opt.IntValue()
		case "game":
			gamePk = opt.IntValue()
		case "team":
			teamID = opt.IntValue()
		case "reason":
			reason = opt.StringValue()
		}
	}

	if amount <= 0 {
		common.RespondWithError(s, i, "Bet amount must be positive.")
		return
	}
	if reason == "" {
		reason = fmt.Sprintf("Bet on team %d for game %d", teamID, gamePk)
	}

	result, err := f.bettingService.PlaceBet(ctx, userID, amount, &gamePk, &teamID, reason, false)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientCredits) {
			balance, berr := f.creditService.Balance(ctx, userID)
			if berr == nil {
				common.RespondWithError(s, i, fmt.Sprintf("Insufficient credits: you have **%s**, the bet needs **%s**.",
					common.FormatCredits(balance), common.FormatCredits(amount)))
				return
			}
			common.RespondWithError(s, i, "Insufficient credits for this bet.")
			return
		}
		log.Errorf("Error placing bet for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to place bet. Please try again.")
		return
	}

	message := fmt.Sprintf("Bet `#%d` placed: **%s credits** on team %d for game %d. New balance: **%s credits**",
		result.Bet.ID, common.FormatCredits(amount), teamID, gamePk, common.FormatCredits(result.NewBalance))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to bet command: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := parseInvokingUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	bets, err := f.bettingService.BetsForUser(ctx, userID, 10)
	if err != nil {
		log.Errorf("Error listing bets for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to retrieve bets. Please try again.")
		return
	}

	if len(bets) == 0 {
		if err := common.Respond(s, i, "You have no bets yet.", true); err != nil {
			log.Errorf("Error responding to bet list command: %v", err)
		}
		return
	}

	var lines []string
	for _, bet := range bets {
		lines = append(lines, common.FormatBetLine(bet))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Your recent bets",
		Description: strings.Join(lines, "\n"),
		Color:       0x1E90FF,
	}
	if err := common.RespondWithEmbed(s, i, embed, true); err != nil {
		log.Errorf("Error responding to bet list command: %v", err)
	}
}

func (f *Feature) handleRemove(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := parseInvokingUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	var betID int64
	for _, opt := range i.ApplicationCommandData().Options[0].Options {
		if opt.Name == "id" {
			betID = opt.IntValue()
		}
	}

	bet, err := f.bettingService.RemoveBet(ctx, userID, betID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			common.RespondWithError(s, i, fmt.Sprintf("Bet `#%d` was not found among your bets.", betID))
		case errors.Is(err, service.ErrAlreadySettled):
			common.RespondWithError(s, i, fmt.Sprintf("Bet `#%d` has already been settled and cannot be withdrawn.", betID))
		case errors.Is(err, service.ErrInvalidValue):
			common.RespondWithError(s, i, "Automated bets cannot be withdrawn.")
		default:
			log.Errorf("Error removing bet %d for user %d: %v", betID, userID, err)
			common.RespondWithError(s, i, "Unable to remove bet. Please try again.")
		}
		return
	}

	message := fmt.Sprintf("Bet `#%d` withdrawn, **%s credits** refunded.", bet.ID, common.FormatCredits(bet.Bet))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to bet remove command: %v", err)
	}
}

func (f *Feature) handleClaim(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := parseInvokingUserID(i)
	if err != nil {
		log.Errorf("Error parsing Discord ID %s: %v", i.Member.User.ID, err)
		common.RespondWithError(s, i, "Unable to process request. Please try again.")
		return
	}

	grant, err := f.bettingService.ClaimDailyCredits(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrDailyCreditsClaimed) {
			common.RespondWithError(s, i, "You already claimed your daily credits. Come back tomorrow!")
			return
		}
		log.Errorf("Error claiming daily credits for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to claim daily credits. Please try again.")
		return
	}

	balance, err := f.creditService.Balance(ctx, userID)
	if err != nil {
		log.Errorf("Error reading balance for user %d: %v", userID, err)
		common.RespondWithError(s, i, "Unable to claim daily credits. Please try again.")
		return
	}

	message := fmt.Sprintf("Claimed **%s credits**. New balance: **%s credits**",
		common.FormatCredits(grant.Payout), common.FormatCredits(balance))
	if err := common.RespondWithSuccess(s, i, message, false); err != nil {
		log.Errorf("Error responding to claim command: %v", err)
	}
}
