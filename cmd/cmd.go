// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// runCommand is the main discovery-and-reconciliation entry point.
func runCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Discover new releases and reconcile the playlist",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "genre",
				Aliases: []string{"g"},
				Usage:   "Genre to search artists for",
			},
			&cli.StringFlag{
				Name:    "artists",
				Aliases: []string{"a"},
				Usage:   "Artist CSV file, bypasses genre search",
			},
			&cli.StringFlag{
				Name:    "tracks",
				Aliases: []string{"t"},
				Usage:   "Track CSV file, bypasses discovery entirely",
			},
			&cli.IntFlag{
				Name:    "days",
				Aliases: []string{"d"},
				Usage:   "Lookback window in days (0 selects the previous-Friday rule)",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Track ordering: ascending, descending, or none",
				Value: "ascending",
			},
			&cli.StringFlag{
				Name:    "playlist",
				Aliases: []string{"p"},
				Usage:   "Destination playlist ID (overrides config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory for snapshot reports (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Write the report but leave the playlist untouched",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable the interactive progress display",
			},
		},
		Action: r.Run,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Spotify authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check the saved authentication state",
				Action: r.AuthStatus,
			},
		},
	}
}

// artistsCommand manages the local artist roster.
func artistsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "artists",
		Usage: "Manage the local artist roster",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import artists from a CSV snapshot",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.ArtistsImport,
			},
			{
				Name:  "list",
				Usage: "List roster artists",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ArtistsList,
			},
			{
				Name:  "add",
				Usage: "Add a single artist to the roster",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Artist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "id",
						Usage: "Catalog artist ID (generated when omitted)",
					},
					&cli.StringFlag{
						Name:  "url",
						Usage: "Artist page URL",
					},
				},
				Action: r.ArtistsAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove an artist from the roster by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.ArtistsRemove,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize the roster database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config.toml from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}
