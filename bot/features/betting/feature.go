package betting

import (
	"dugout/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles betting commands: placing, listing, and withdrawing
// bets, plus credit claims
type Feature struct {
	creditService  service.CreditService
	bettingService service.BettingService
}

// NewFeature creates a new betting feature instance
func NewFeature(creditService service.CreditService, bettingService service.BettingService) *Feature {
	return &Feature{
		creditService:  creditService,
		bettingService: bettingService,
	}
}

// HandleCommand routes betting subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "place":
		f.handlePlace(s, i)
	case "list":
		f.handleList(s, i)
	case "remove":
		f.handleRemove(s, i)
	case "claim":
		f.handleClaim(s, i)
	}
}

// HandleBalance handles the top-level /balance command
func (f *Feature) HandleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}
