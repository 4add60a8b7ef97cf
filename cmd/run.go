package cmd

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"dugout/bot"
	"dugout/config"
	"dugout/database"
	"dugout/events"
	"dugout/repository"
	"dugout/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting dugout bot...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	log.Info("Initializing services...")
	creditService := service.NewCreditService(uowFactory)
	bettingService := service.NewBettingService(uowFactory)
	configService := service.NewConfigService(uowFactory)
	settlementService := service.NewSettlementService(bettingService, service.FixedOddsPolicy{
		Multiplier: cfg.FixedOddsMultiplier,
	})
	service.RegisterSettlementHandler(eventBus, settlementService)
	log.Info("Services initialized successfully")

	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}
	discordBot, err := bot.New(botConfig, creditService, bettingService, configService, eventBus)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Warn("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Info("Shutdown completed")
	}

	return nil
}
