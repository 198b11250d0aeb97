package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/freshtracks/internal/formatter"
	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/shared"
	"github.com/urfave/cli/v3"
)

// ArtistsImport loads a CSV snapshot into the roster database.
func (r *Runner) ArtistsImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to a CSV file is required", shared.ErrMissingArgument)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open artist file: %w", err)
	}
	defer f.Close()

	artists, err := formatter.ReadArtistsCSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse artist file: %w", err)
	}

	db, repo, err := r.openRoster()
	if err != nil {
		return err
	}
	defer db.Close()

	imported, err := repo.Import(artists)
	if err != nil {
		return err
	}

	r.logger.Info("roster import complete", "file", path, "imported", imported)
	return r.writePlain("✓ Imported %d artists from %s\n", imported, path)
}

// ArtistsList prints the roster.
func (r *Runner) ArtistsList(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openRoster()
	if err != nil {
		return err
	}
	defer db.Close()

	artists, err := repo.List()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(artists, cmd.Bool("pretty"))
	}

	if len(artists) == 0 {
		return r.writePlain("Roster is empty. Add artists with 'freshtracks artists add' or 'artists import'.\n")
	}

	r.writePlain("Roster: %d artists\n\n", len(artists))
	for i, artist := range artists {
		r.writePlain("%d. %s\n", i+1, artist.Name)
		r.writePlain("   ID: %s\n", artist.ID)
		if artist.URL != "" {
			r.writePlain("   URL: %s\n", artist.URL)
		}
	}

	return nil
}

// ArtistsAdd inserts a single artist into the roster.
func (r *Runner) ArtistsAdd(ctx context.Context, cmd *cli.Command) error {
	db, repo, err := r.openRoster()
	if err != nil {
		return err
	}
	defer db.Close()

	artist := &models.Artist{
		ID:   cmd.String("id"),
		Name: cmd.String("name"),
		URL:  cmd.String("url"),
	}

	if err := repo.Create(artist); err != nil {
		return err
	}

	return r.writePlain("✓ Added %s (%s)\n", artist.Name, artist.ID)
}

// ArtistsRemove deletes an artist from the roster by ID.
func (r *Runner) ArtistsRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist ID is required", shared.ErrMissingArgument)
	}

	db, repo, err := r.openRoster()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Delete(id); err != nil {
		return err
	}

	return r.writePlain("✓ Removed %s\n", id)
}
