package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/desertthunder/freshtracks/internal/formatter"
	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/services"
	"github.com/desertthunder/freshtracks/internal/shared"
)

// ResolveOpts contains the cohort resolution inputs for one run.
type ResolveOpts struct {
	Genre       string
	ArtistsFile string // Optional CSV path; read failure falls back to other sources
	OutputDir   string // Directory for the cohort snapshot file
}

// ResolveCohort produces the artist cohort for a run. Sources are tried in
// order: the artists CSV file, the local roster, then paginated genre
// search. Search results and roster cohorts are persisted as a snapshot
// CSV, sorted case-insensitively by name.
//
// A missing genre with no other source is a configuration error surfaced
// before any network call.
func (e *DiscoveryEngine) ResolveCohort(ctx context.Context, progress chan<- ProgressUpdate, opts ResolveOpts) ([]models.Artist, error) {
	if artists, ok := e.loadArtistsFile(opts.ArtistsFile); ok {
		e.sendProgress(progress, cohortResolvedUpdate(len(artists)))
		return artists, nil
	}

	if e.roster != nil {
		artists, err := e.roster.List()
		if err != nil {
			e.logger.Warn("could not read artist roster, falling back to search", "err", err)
		} else if len(artists) > 0 {
			e.logger.Info("cohort loaded from roster", "artists", len(artists))
			if err := e.writeCohortSnapshot(opts, artists); err != nil {
				return nil, err
			}
			e.sendProgress(progress, cohortResolvedUpdate(len(artists)))
			return artists, nil
		}
	}

	if opts.Genre == "" {
		return nil, shared.ErrMissingGenre
	}

	e.logger.Info("searching for artists", "genre", opts.Genre)
	e.sendProgress(progress, searchingArtistsUpdate(opts.Genre))

	pager := services.NewPager(func(ctx context.Context, limit, offset int) ([]models.Artist, bool, error) {
		artists, err := e.catalog.SearchArtists(ctx, opts.Genre, limit, offset)
		return artists, true, err
	}, pageSize)

	artists, err := pager.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("artist search failed: %w", err)
	}

	e.logger.Info("artist search completed", "artists", len(artists))

	if err := e.writeCohortSnapshot(opts, artists); err != nil {
		return nil, err
	}

	e.sendProgress(progress, cohortResolvedUpdate(len(artists)))
	return artists, nil
}

// loadArtistsFile reads an artist input CSV. Unreadable or malformed files
// are recoverable: the resolver logs a warning and falls back to the next
// source.
func (e *DiscoveryEngine) loadArtistsFile(path string) ([]models.Artist, bool) {
	if path == "" {
		return nil, false
	}

	f, err := os.Open(path)
	if err != nil {
		e.logger.Warn("could not read artist file, falling back", "path", path, "err", err)
		return nil, false
	}
	defer f.Close()

	artists, err := formatter.ReadArtistsCSV(f)
	if err != nil {
		e.logger.Warn("could not parse artist file, falling back", "path", path, "err", err)
		return nil, false
	}

	e.logger.Info("cohort loaded from file", "path", path, "artists", len(artists))
	return artists, true
}

// writeCohortSnapshot persists the resolved cohort for auditability.
func (e *DiscoveryEngine) writeCohortSnapshot(opts ResolveOpts, artists []models.Artist) error {
	snapshot := make([]models.Artist, len(artists))
	copy(snapshot, artists)
	sort.SliceStable(snapshot, func(i, j int) bool {
		return strings.ToLower(snapshot[i].Name) < strings.ToLower(snapshot[j].Name)
	})

	path := filepath.Join(opts.OutputDir, formatter.ArtistSnapshotFilename(opts.Genre))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create cohort snapshot: %w", err)
	}
	defer f.Close()

	if err := formatter.WriteArtistsCSV(f, snapshot); err != nil {
		return fmt.Errorf("failed to write cohort snapshot: %w", err)
	}

	e.logger.Info("cohort snapshot saved", "path", path)
	return nil
}
