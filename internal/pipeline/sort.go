package pipeline

import (
	"sort"
	"strings"

	"github.com/desertthunder/freshtracks/internal/models"
)

// SortTracks applies the tiered ordering policy to the final track list.
//
// Two stable passes: first by (release date, lowercased artist) in the
// requested direction, then by lowercased album type descending. The second
// pass groups singles ahead of albums under either direction while
// preserving the date ordering within each type group. SortNone and
// SortUnspecified return the input unchanged.
func SortTracks(tracks []models.Track, mode models.SortMode) []models.Track {
	if mode == models.SortNone || mode == models.SortUnspecified {
		return tracks
	}

	sorted := make([]models.Track, len(tracks))
	copy(sorted, tracks)

	sort.SliceStable(sorted, func(i, j int) bool {
		if mode == models.SortDescending {
			return dateArtistLess(sorted[j], sorted[i])
		}
		return dateArtistLess(sorted[i], sorted[j])
	})

	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].AlbumType) > strings.ToLower(sorted[j].AlbumType)
	})

	return sorted
}

func dateArtistLess(a, b models.Track) bool {
	if !a.ReleaseDate.Equal(b.ReleaseDate) {
		return a.ReleaseDate.Before(b.ReleaseDate)
	}
	return strings.ToLower(a.Artist) < strings.ToLower(b.Artist)
}
