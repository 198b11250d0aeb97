package main

import (
	"context"
	"os"

	"github.com/desertthunder/freshtracks/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "freshtracks",
		Usage:    "Discover new releases and keep a Spotify playlist fresh",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
