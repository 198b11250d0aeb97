package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/services"
	"github.com/desertthunder/freshtracks/internal/shared"
)

// Traverse walks each cohort artist's album listings in order and expands
// every qualifying album into track records.
//
// Albums are deduplicated by ID across the whole run: the visited set is
// checked and updated before any date evaluation, so an album skipped as
// too old or as a compilation is never re-evaluated through another
// credited artist. Network errors are not recovered locally; the first
// failure aborts the run with no partial result.
func (e *DiscoveryEngine) Traverse(ctx context.Context, progress chan<- ProgressUpdate, cohort []models.Artist, threshold time.Time) ([]models.Track, error) {
	visited := make(map[string]struct{})
	var found []models.Track

	for i, artist := range cohort {
		e.sendProgress(progress, scanningArtistUpdate(i+1, len(cohort), artist))
		e.logger.Info("scanning artist", "artist", artist.Name, "position", fmt.Sprintf("%d/%d", i+1, len(cohort)))

		albums, err := e.artistAlbums(ctx, artist.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list albums for %s: %w", artist.Name, err)
		}

		for _, album := range albums {
			if album.Type == models.AlbumTypeCompilation {
				continue
			}

			if _, seen := visited[album.ID]; seen {
				continue
			}
			visited[album.ID] = struct{}{}

			released, err := album.ResolveReleaseDate()
			if err != nil {
				return nil, fmt.Errorf("%w: album %s: %v", shared.ErrMalformedDate, album.ID, err)
			}

			if released.Before(threshold) {
				continue
			}

			tracks, err := e.expandAlbum(ctx, album, released)
			if err != nil {
				return nil, err
			}

			e.sendProgress(progress, albumExpandedUpdate(i+1, len(cohort), album, len(tracks)))
			e.logger.Info("expanded new album", "album", album.Name, "type", album.Type, "tracks", len(tracks))
			found = append(found, tracks...)
		}
	}

	e.logger.Info("catalog traversal completed", "tracks", len(found))
	return found, nil
}

// artistAlbums drains the artist's album listing through the pager.
func (e *DiscoveryEngine) artistAlbums(ctx context.Context, artistID string) ([]models.Album, error) {
	pager := services.NewPager(func(ctx context.Context, limit, offset int) ([]models.Album, bool, error) {
		return e.catalog.ArtistAlbums(ctx, artistID, limit, offset)
	}, pageSize)

	return pager.All(ctx)
}

// expandAlbum fetches album detail and copies album-level fields onto each
// contained track. Free-text fields are stripped of quote characters to
// keep the CSV snapshot unambiguous.
func (e *DiscoveryEngine) expandAlbum(ctx context.Context, album models.Album, released time.Time) ([]models.Track, error) {
	detail, err := e.catalog.GetAlbum(ctx, album.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album %s: %w", album.ID, err)
	}

	tracks := make([]models.Track, 0, len(detail.Tracks))
	for _, item := range detail.Tracks {
		tracks = append(tracks, models.Track{
			Title:       shared.StripQuotes(item.Name),
			Artist:      shared.StripQuotes(item.Artist),
			Album:       shared.StripQuotes(album.Name),
			AlbumType:   string(album.Type),
			ReleaseDate: released,
			URL:         item.URL,
			ID:          item.ID,
		})
	}

	return tracks, nil
}
