package bot

import (
	"fmt"

	"dugout/bot/features/betting"
	"dugout/bot/features/settings"
	"dugout/events"
	"dugout/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

type Bot struct {
	config          Config
	session         *discordgo.Session
	bettingFeature  *betting.Feature
	settingsFeature *settings.Feature
	eventBus        *events.Bus
}

func New(config Config, creditService service.CreditService, bettingService service.BettingService, configService service.ConfigService, eventBus *events.Bus) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	bot := &Bot{
		config:          config,
		session:         dg,
		bettingFeature:  betting.NewFeature(creditService, bettingService),
		settingsFeature: settings.NewFeature(configService),
		eventBus:        eventBus,
	}

	dg.AddHandler(bot.handleCommands)

	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "balance":
		b.bettingFeature.HandleBalance(s, i)
	case "bet":
		b.bettingFeature.HandleCommand(s, i)
	case "config":
		b.settingsFeature.HandleCommand(s, i)
	}
}
