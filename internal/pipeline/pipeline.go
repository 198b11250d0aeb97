// package pipeline implements the discovery-and-reconciliation run.
//
// The core abstraction is DiscoveryEngine, which resolves the artist cohort,
// traverses the catalog for qualifying releases, sorts the result, and
// reconciles the destination playlist. Operations emit progress updates via
// channels for non-blocking status reporting to the CLI/UI layers.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/freshtracks/internal/formatter"
	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/services"
)

// Page size for artist search and album listing requests. 50 is the Web
// API's maximum.
const pageSize = 50

// RosterSource supplies artists from local persistence, used as a cohort
// source when no input file is given.
type RosterSource interface {
	List() ([]models.Artist, error)
}

// RunOpts contains the parameters of one discovery run.
type RunOpts struct {
	Genre       string
	Days        int           // Lookback window; 0 selects the Friday rule
	ArtistsFile string        // Optional cohort CSV, bypasses search
	TracksFile  string        // Optional track CSV, bypasses discovery entirely
	Sort        models.SortMode
	DryRun      bool
	OutputDir   string
	PlaylistID  string
	Today       time.Time // Zero value means time.Now
}

// RunResult summarizes a completed run.
type RunResult struct {
	Threshold       time.Time
	CohortSize      int
	Tracks          []models.Track
	ReportPath      string
	PlaylistUpdated bool
}

// DiscoveryEngine orchestrates one run against a catalog.
// All work is sequential and blocking; the engine owns no state that
// outlives a Run call.
type DiscoveryEngine struct {
	catalog services.Catalog
	roster  RosterSource
	logger  *log.Logger
}

// NewDiscoveryEngine creates a DiscoveryEngine. roster may be nil when no
// local artist roster is configured.
func NewDiscoveryEngine(catalog services.Catalog, roster RosterSource, logger *log.Logger) *DiscoveryEngine {
	return &DiscoveryEngine{catalog: catalog, roster: roster, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never blocks execution.
func (e *DiscoveryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Run executes the full pipeline: threshold, cohort resolution, catalog
// traversal, sorting, and reconciliation.
func (e *DiscoveryEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, opts RunOpts) (*RunResult, error) {
	today := opts.Today
	if today.IsZero() {
		now := time.Now()
		today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	threshold := Threshold(today, opts.Days)
	e.logger.Info("computed threshold date", "threshold", threshold.Format("2006-01-02"))

	result := &RunResult{Threshold: threshold}

	tracks, bypassed, err := e.loadTracksFile(opts.TracksFile)
	if err != nil {
		return nil, err
	}

	if bypassed {
		e.logger.Info("track file loaded, discovery bypassed", "tracks", len(tracks))
	} else {
		cohort, err := e.ResolveCohort(ctx, progress, ResolveOpts{
			Genre:       opts.Genre,
			ArtistsFile: opts.ArtistsFile,
			OutputDir:   opts.OutputDir,
		})
		if err != nil {
			return nil, err
		}
		result.CohortSize = len(cohort)

		tracks, err = e.Traverse(ctx, progress, cohort, threshold)
		if err != nil {
			return nil, err
		}
	}

	mode := opts.Sort
	if mode == models.SortUnspecified {
		e.logger.Warn("unrecognized sort mode, leaving track order unchanged")
	}
	result.Tracks = SortTracks(tracks, mode)

	reportPath, updated, err := e.Reconcile(ctx, progress, result.Tracks, ReconcileOpts{
		Genre:      opts.Genre,
		Threshold:  threshold,
		Today:      today,
		OutputDir:  opts.OutputDir,
		PlaylistID: opts.PlaylistID,
		DryRun:     opts.DryRun,
	})
	if err != nil {
		return nil, err
	}

	result.ReportPath = reportPath
	result.PlaylistUpdated = updated
	return result, nil
}

// loadTracksFile reads a track input file when one is supplied. A readable
// file bypasses discovery entirely; an unreadable one is a recoverable
// warning, not a failure.
func (e *DiscoveryEngine) loadTracksFile(path string) ([]models.Track, bool, error) {
	if path == "" {
		return nil, false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		e.logger.Warn("could not read track file, falling back to discovery", "path", path, "err", err)
		return nil, false, nil
	}
	defer f.Close()

	tracks, err := formatter.ReadTracksCSV(f)
	if err != nil {
		return nil, false, fmt.Errorf("failed to parse track file %s: %w", path, err)
	}

	return tracks, true, nil
}
