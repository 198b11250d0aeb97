package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/pipeline"
	"github.com/desertthunder/freshtracks/internal/shared"
	"github.com/desertthunder/freshtracks/internal/ui"
	"github.com/urfave/cli/v3"
)

// Run executes a full discovery run: cohort resolution, catalog traversal,
// sorting, report snapshot, and playlist reconciliation.
func (r *Runner) Run(ctx context.Context, cmd *cli.Command) error {
	genre := cmd.String("genre")
	artistsFile := cmd.String("artists")
	tracksFile := cmd.String("tracks")

	if genre == "" && artistsFile == "" && tracksFile == "" {
		return fmt.Errorf("%w: provide --genre or an input file", shared.ErrMissingGenre)
	}

	mode, ok := models.ParseSortMode(cmd.String("sort"))
	if !ok {
		r.logger.Warn("unrecognized sort mode", "sort", cmd.String("sort"))
	}

	playlistID := cmd.String("playlist")
	if playlistID == "" {
		playlistID = r.config.Playlist.ID
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Output.Dir
	}
	if outputDir == "" {
		outputDir = "."
	}

	catalog, err := r.ensureCatalog()
	if err != nil {
		return err
	}

	var roster pipeline.RosterSource
	db, repo, rosterErr := r.openRoster()
	if rosterErr != nil {
		r.logger.Warn("artist roster unavailable", "err", rosterErr)
	} else {
		defer db.Close()
		roster = repo
	}

	engine := pipeline.NewDiscoveryEngine(catalog, roster, r.logger)
	opts := pipeline.RunOpts{
		Genre:       genre,
		Days:        cmd.Int("days"),
		ArtistsFile: artistsFile,
		TracksFile:  tracksFile,
		Sort:        mode,
		DryRun:      cmd.Bool("dry-run"),
		OutputDir:   outputDir,
		PlaylistID:  playlistID,
	}

	var result *pipeline.RunResult
	if cmd.Bool("no-progress") {
		result, err = engine.Run(ctx, nil, opts)
	} else {
		result, err = r.runWithProgress(ctx, engine, opts)
	}
	if err != nil {
		return err
	}

	r.writePlain("✓ Run complete\n")
	r.writePlain("  Threshold: %s\n", result.Threshold.Format("2006-01-02"))
	if result.CohortSize > 0 {
		r.writePlain("  Artists scanned: %d\n", result.CohortSize)
	}
	r.writePlain("  Tracks: %d\n", len(result.Tracks))
	r.writePlain("  Report: %s\n", result.ReportPath)
	if result.PlaylistUpdated {
		r.writePlain("  Playlist: updated\n")
	} else {
		r.writePlain("  Playlist: unchanged\n")
	}

	return nil
}

// runWithProgress executes the engine in a goroutine while the terminal
// shows a live progress display. The run continues even if the display is
// dismissed.
func (r *Runner) runWithProgress(ctx context.Context, engine *pipeline.DiscoveryEngine, opts pipeline.RunOpts) (*pipeline.RunResult, error) {
	updates := make(chan pipeline.ProgressUpdate, 64)
	done := make(chan struct{})

	var result *pipeline.RunResult
	var runErr error

	go func() {
		defer close(done)
		result, runErr = engine.Run(ctx, updates, opts)
		close(updates)
	}()

	program := tea.NewProgram(ui.NewModel(updates), tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil {
		r.logger.Warn("progress display failed", "err", err)
	}

	<-done
	return result, runErr
}
