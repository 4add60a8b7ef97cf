package settings

import (
	"dugout/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles per-channel and per-server configuration
type Feature struct {
	configService service.ConfigService
}

// NewFeature creates a new settings feature instance
func NewFeature(configService service.ConfigService) *Feature {
	return &Feature{
		configService: configService,
	}
}

// HandleCommand routes config subcommands to appropriate handlers
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}

	switch options[0].Name {
	case "channel":
		f.handleEntity(s, i, service.EntityChannel)
	case "server":
		f.handleEntity(s, i, service.EntityServer)
	}
}
