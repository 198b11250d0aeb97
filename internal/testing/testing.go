// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/services"
)

// MockCatalog is a configurable test double for [services.Catalog].
type MockCatalog struct {
	SearchResults []models.Artist
	Albums        map[string][]models.Album          // keyed by artist ID
	Details       map[string]*services.AlbumDetail   // keyed by album ID

	SearchErr error
	AlbumsErr error
	DetailErr error

	AlbumCalls map[string]int // GetAlbum invocations per album ID

	ReplacedPlaylist string
	ReplacedIDs      []string
	ReplaceCalls     int
	UpdatedName      string
	UpdatedDesc      string
	UpdateCalls      int
}

func (m *MockCatalog) SearchArtists(ctx context.Context, genre string, limit, offset int) ([]models.Artist, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if offset >= len(m.SearchResults) {
		return nil, nil
	}
	end := offset + limit
	if end > len(m.SearchResults) {
		end = len(m.SearchResults)
	}
	return m.SearchResults[offset:end], nil
}

func (m *MockCatalog) ArtistAlbums(ctx context.Context, artistID string, limit, offset int) ([]models.Album, bool, error) {
	if m.AlbumsErr != nil {
		return nil, false, m.AlbumsErr
	}
	albums := m.Albums[artistID]
	if offset >= len(albums) {
		return nil, false, nil
	}
	end := offset + limit
	if end > len(albums) {
		end = len(albums)
	}
	return albums[offset:end], end < len(albums), nil
}

func (m *MockCatalog) GetAlbum(ctx context.Context, albumID string) (*services.AlbumDetail, error) {
	if m.AlbumCalls == nil {
		m.AlbumCalls = make(map[string]int)
	}
	m.AlbumCalls[albumID]++

	if m.DetailErr != nil {
		return nil, m.DetailErr
	}

	detail, ok := m.Details[albumID]
	if !ok {
		return nil, errors.New("album not found")
	}
	return detail, nil
}

func (m *MockCatalog) ReplacePlaylistItems(ctx context.Context, playlistID string, trackIDs []string) error {
	m.ReplaceCalls++
	m.ReplacedPlaylist = playlistID
	m.ReplacedIDs = trackIDs
	return nil
}

func (m *MockCatalog) UpdatePlaylistDetails(ctx context.Context, playlistID, name, description string) error {
	m.UpdateCalls++
	m.UpdatedName = name
	m.UpdatedDesc = description
	return nil
}

func (m *MockCatalog) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// DiscardLogs returns a writer for silencing logger output in tests.
func DiscardLogs() io.Writer {
	return io.Discard
}
