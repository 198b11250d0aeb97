package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/freshtracks/internal/repositories"
	"github.com/desertthunder/freshtracks/internal/services"
	"github.com/desertthunder/freshtracks/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		runCommand, authCommand, artistsCommand, setupCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureCatalog returns the injected catalog or builds an authenticated
// Spotify service from config credentials and the saved token.
func (r *Runner) ensureCatalog() (services.Catalog, error) {
	if r.catalog != nil {
		return r.catalog, nil
	}

	creds := r.config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: set credentials.spotify in config.toml", shared.ErrMissingCredentials)
	}

	svc, err := services.NewSpotifyService(map[string]string{
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"redirect_uri":  creds.RedirectURI,
	})
	if err != nil {
		return nil, err
	}

	token, err := loadToken()
	if err != nil {
		return nil, fmt.Errorf("%w: run 'freshtracks auth login' first", shared.ErrNotAuthenticated)
	}
	svc.SetToken(token)

	r.catalog = svc
	return svc, nil
}

// openRoster opens the artist roster database and returns a ready repository.
// Migrations are idempotent and applied on every open.
func (r *Runner) openRoster() (*sql.DB, *repositories.ArtistRepository, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open roster database: %w", err)
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, repositories.NewArtistRepository(db), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
