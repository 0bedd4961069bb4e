package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/moodmusic/internal/shared"
	"github.com/desertthunder/moodmusic/internal/store"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database schema and seed data.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	if cmd.Bool("no-seed") {
		config.Database.Seed = false
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	s := store.New(config.Database, r.logger)
	defer s.Close()

	if err := s.InitAndSeed(ctx); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}
