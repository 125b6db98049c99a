package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"whitelister/bot"
	"whitelister/config"
	"whitelister/store"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("Unknown log level %q, using default", cfg.LogLevel)
	}

	log.Info("Starting whitelist manager bot...")

	// Load persisted guild data
	st := store.New(cfg.DataFile)
	if err := st.Load(); err != nil {
		return fmt.Errorf("failed to load guild data: %w", err)
	}

	// Initialize Discord bot
	discordBot, err := bot.New(bot.Config{Token: cfg.DiscordToken}, st)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Errorf("Error closing Discord bot: %v", err)
	}

	return nil
}
