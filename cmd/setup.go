package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/freshtracks/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the roster database and runs migrations.
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

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// SetupConfig writes a config.toml from the embedded template.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if err := shared.CreateConfigFile(configPath); err != nil {
		return err
	}

	r.writePlain("✓ Config created at %s\n\n", configPath)
	r.writePlain("Next steps:\n")
	r.writePlain("1. Add your Spotify client_id and client_secret under [credentials.spotify]\n")
	r.writePlain("2. Set the destination playlist under [playlist]\n")
	r.writePlain("3. Run 'freshtracks auth login'\n")

	return nil
}
