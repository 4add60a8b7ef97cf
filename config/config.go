package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	DiscordGuildID string

	// Database configuration
	DatabaseURL string

	// Ledger configuration
	StartingCredits int64 // Credits granted when a profile is first created
	DailyCredits    int64 // Credits granted per daily claim

	// Settlement configuration
	FixedOddsMultiplier int64 // Payout multiplier for the fixed-odds policy

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Database
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// Ledger settings with defaults
		StartingCredits: 100,
		DailyCredits:    10,

		// Settlement settings with defaults
		FixedOddsMultiplier: 2,

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if credits := os.Getenv("STARTING_CREDITS"); credits != "" {
		if parsed, err := strconv.ParseInt(credits, 10, 64); err == nil {
			config.StartingCredits = parsed
		}
	}
	if credits := os.Getenv("DAILY_CREDITS"); credits != "" {
		if parsed, err := strconv.ParseInt(credits, 10, 64); err == nil {
			config.DailyCredits = parsed
		}
	}
	if odds := os.Getenv("FIXED_ODDS_MULTIPLIER"); odds != "" {
		parsed, err := strconv.ParseInt(odds, 10, 64)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("invalid FIXED_ODDS_MULTIPLIER %q", odds)
		}
		config.FixedOddsMultiplier = parsed
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	return config, nil
}
