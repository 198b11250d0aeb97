package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/freshtracks/internal/formatter"
	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/shared"
)

const playlistDescription = "Automated playlist created with freshtracks."

// ReconcileOpts contains the reconciliation inputs for one run.
type ReconcileOpts struct {
	Genre      string
	Threshold  time.Time
	Today      time.Time
	OutputDir  string
	PlaylistID string
	DryRun     bool
}

// Reconcile writes the dated snapshot report and replaces the destination
// playlist's membership with the final track list.
//
// The report is always written, header-only when no tracks qualified, and
// supersedes prior same-genre reports. The destination is mutated only when
// tracks were found, a playlist ID is configured, and the run is not a dry
// run; a missing playlist ID skips reconciliation without failing the run.
// Returns the report path and whether the playlist was updated.
func (e *DiscoveryEngine) Reconcile(ctx context.Context, progress chan<- ProgressUpdate, tracks []models.Track, opts ReconcileOpts) (string, bool, error) {
	removed, err := formatter.RemovePriorReports(opts.OutputDir, opts.Genre)
	if err != nil {
		return "", false, err
	}
	if removed > 0 {
		e.logger.Info("removed prior reports", "count", removed)
	}

	reportPath := filepath.Join(opts.OutputDir, formatter.ReportFilename(opts.Genre, opts.Threshold, opts.Today))
	e.sendProgress(progress, writingReportUpdate(reportPath))

	f, err := os.Create(reportPath)
	if err != nil {
		return "", false, fmt.Errorf("failed to create report: %w", err)
	}

	if err := formatter.WriteTracksCSV(f, tracks); err != nil {
		f.Close()
		return "", false, fmt.Errorf("failed to write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("failed to close report: %w", err)
	}

	e.logger.Info("track list saved", "path", reportPath, "tracks", len(tracks))

	if opts.PlaylistID == "" {
		e.logger.Error("playlist not updated", "err", shared.ErrMissingPlaylistID)
		return reportPath, false, nil
	}

	if len(tracks) == 0 {
		e.logger.Info("no new tracks found, playlist not updated")
		return reportPath, false, nil
	}

	name := formatter.PlaylistName(opts.Genre, opts.Threshold, opts.Today)

	if opts.DryRun {
		e.logger.Info("dry run, playlist not updated", "playlist", name, "tracks", len(tracks))
		return reportPath, false, nil
	}

	trackIDs := dedupTrackIDs(tracks)
	e.sendProgress(progress, updatingPlaylistUpdate(name, len(trackIDs)))

	if err := e.catalog.ReplacePlaylistItems(ctx, opts.PlaylistID, trackIDs); err != nil {
		return reportPath, false, fmt.Errorf("failed to replace playlist items: %w", err)
	}

	if err := e.catalog.UpdatePlaylistDetails(ctx, opts.PlaylistID, name, playlistDescription); err != nil {
		return reportPath, false, fmt.Errorf("failed to update playlist details: %w", err)
	}

	e.logger.Info("playlist updated", "playlist", name, "tracks", len(trackIDs))
	return reportPath, true, nil
}

// dedupTrackIDs removes duplicate track IDs while preserving the final
// sort order. Duplicates occur when the same track is reached through two
// qualifying albums.
func dedupTrackIDs(tracks []models.Track) []string {
	seen := make(map[string]struct{}, len(tracks))
	ids := make([]string, 0, len(tracks))

	for _, track := range tracks {
		if _, ok := seen[track.ID]; ok {
			continue
		}
		seen[track.ID] = struct{}{}
		ids = append(ids, track.ID)
	}

	return ids
}
