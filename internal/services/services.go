// package services defines interface Catalog for interacting with HTTP music catalog APIs
package services

import (
	"context"

	"github.com/desertthunder/freshtracks/internal/models"
)

// Catalog defines the catalog operations the discovery pipeline depends on:
// artist search, album listing, album detail retrieval, and destination
// playlist mutation.
type Catalog interface {
	// SearchArtists returns one page of artists matching the genre query.
	SearchArtists(ctx context.Context, genre string, limit, offset int) ([]models.Artist, error)

	// ArtistAlbums returns one page of the artist's albums starting at offset,
	// plus whether the catalog advertises another page.
	ArtistAlbums(ctx context.Context, artistID string, limit, offset int) ([]models.Album, bool, error)

	// GetAlbum retrieves full album detail including its track listing.
	GetAlbum(ctx context.Context, albumID string) (*AlbumDetail, error)

	// ReplacePlaylistItems replaces the playlist's entire membership with the
	// given track IDs, in order.
	ReplacePlaylistItems(ctx context.Context, playlistID string, trackIDs []string) error

	// UpdatePlaylistDetails sets the playlist's name and description.
	UpdatePlaylistDetails(ctx context.Context, playlistID, name, description string) error

	// Name returns the name of the catalog service (e.g., "Spotify")
	Name() string
}

// AlbumDetail is a full album retrieval: the listing fields plus the
// contained tracks.
type AlbumDetail struct {
	Album  models.Album
	Tracks []AlbumTrack
}

// AlbumTrack is one track inside an album detail response.
type AlbumTrack struct {
	ID     string
	Name   string
	Artist string
	URL    string
}
