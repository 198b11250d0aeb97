// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Requests per second against the Web API. Not a retry policy; failed
	// requests still propagate.
	spotifyRateLimit = 5
)

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Genres       []string     `json:"genres"`
	ExternalURLs externalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

// SpotifyAlbum represents a simplified Spotify album as returned by the
// artist-albums listing.
type SpotifyAlbum struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	AlbumType            string       `json:"album_type"`
	ReleaseDate          string       `json:"release_date"`
	ReleaseDatePrecision string       `json:"release_date_precision"`
	TotalTracks          int          `json:"total_tracks"`
	ExternalURLs         externalURLs `json:"external_urls"`
	URI                  string       `json:"uri"`
}

// SpotifyAlbumTrack represents a track within an album detail response.
type SpotifyAlbumTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

type albumTracks struct {
	Total int                 `json:"total"`
	Items []SpotifyAlbumTrack `json:"items"`
}

// SpotifyFullAlbum represents a full album detail response.
type SpotifyFullAlbum struct {
	SpotifyAlbum
	Tracks albumTracks `json:"tracks"`
}

// SpotifyPaginatedArtists represents the artists portion of a search response.
type SpotifyPaginatedArtists struct {
	Items    []SpotifyArtist `json:"items"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
}

// SpotifyPaginatedAlbums represents a paginated artist-albums response.
type SpotifyPaginatedAlbums struct {
	Items    []SpotifyAlbum `json:"items"`
	Total    int            `json:"total"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
}

type searchResponse struct {
	Artists SpotifyPaginatedArtists `json:"artists"`
}

// SpotifyService implements the Catalog interface for Spotify API interactions.
// Uses [oauth2] for authentication and a client-side [rate.Limiter] to stay
// inside the Web API's request budget.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"user-library-read",
			"playlist-read-private",
			"playlist-read-collaborative",
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(spotifyRateLimit), 1),
	}, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		s.SetToken(&oauth2.Token{AccessToken: accessToken})
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		s.SetToken(token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// SetToken installs a previously obtained token and an auto-refreshing HTTP client.
func (s *SpotifyService) SetToken(token *oauth2.Token) {
	s.token = token
	s.httpClient = s.config.Client(context.Background(), token)
}

// OAuthConfig exposes the service's OAuth2 configuration for the callback flow.
func (s *SpotifyService) OAuthConfig() *oauth2.Config {
	return s.config
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated, rate-limited HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	apiURL := spotifyBaseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchArtists returns one page of artists matching a genre query.
func (s *SpotifyService) SearchArtists(ctx context.Context, genre string, limit, offset int) ([]models.Artist, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	params := url.Values{}
	params.Set("q", fmt.Sprintf("genre:%s", genre))
	params.Set("type", "artist")
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("offset", fmt.Sprintf("%d", offset))

	var response searchResponse
	if err := s.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &response); err != nil {
		return nil, err
	}

	artists := make([]models.Artist, 0, len(response.Artists.Items))
	for _, item := range response.Artists.Items {
		artists = append(artists, models.Artist{
			Name: item.Name,
			ID:   item.ID,
			URL:  item.ExternalURLs.Spotify,
		})
	}

	return artists, nil
}

// ArtistAlbums returns one page of the artist's albums and whether the
// catalog advertises a next page.
func (s *SpotifyService) ArtistAlbums(ctx context.Context, artistID string, limit, offset int) ([]models.Album, bool, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/artists/%s/albums?include_groups=album,single,compilation&limit=%d&offset=%d", artistID, limit, offset)

	var response SpotifyPaginatedAlbums
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, false, err
	}

	albums := make([]models.Album, 0, len(response.Items))
	for _, item := range response.Items {
		albums = append(albums, models.Album{
			ID:          item.ID,
			Name:        item.Name,
			Type:        models.AlbumType(item.AlbumType),
			ReleaseDate: item.ReleaseDate,
			Precision:   models.ReleasePrecision(item.ReleaseDatePrecision),
		})
	}

	return albums, response.Next != nil, nil
}

// GetAlbum retrieves full album detail including its track listing.
func (s *SpotifyService) GetAlbum(ctx context.Context, albumID string) (*AlbumDetail, error) {
	endpoint := fmt.Sprintf("/albums/%s", albumID)

	var response SpotifyFullAlbum
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	detail := &AlbumDetail{
		Album: models.Album{
			ID:          response.ID,
			Name:        response.Name,
			Type:        models.AlbumType(response.AlbumType),
			ReleaseDate: response.ReleaseDate,
			Precision:   models.ReleasePrecision(response.ReleaseDatePrecision),
		},
		Tracks: make([]AlbumTrack, 0, len(response.Tracks.Items)),
	}

	for _, item := range response.Tracks.Items {
		track := AlbumTrack{
			ID:   item.ID,
			Name: item.Name,
			URL:  item.ExternalURLs.Spotify,
		}
		if len(item.Artists) > 0 {
			track.Artist = item.Artists[0].Name
		}
		detail.Tracks = append(detail.Tracks, track)
	}

	return detail, nil
}

// ReplacePlaylistItems replaces the playlist's entire membership with the given track IDs.
func (s *SpotifyService) ReplacePlaylistItems(ctx context.Context, playlistID string, trackIDs []string) error {
	uris := make([]string, 0, len(trackIDs))
	for _, id := range trackIDs {
		uris = append(uris, "spotify:track:"+id)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", playlistID)
	body := map[string]any{"uris": uris}

	return s.doRequest(ctx, http.MethodPut, endpoint, body, nil)
}

// UpdatePlaylistDetails sets the playlist's name and description.
func (s *SpotifyService) UpdatePlaylistDetails(ctx context.Context, playlistID, name, description string) error {
	endpoint := fmt.Sprintf("/playlists/%s", playlistID)
	body := map[string]any{"name": name, "description": description}

	return s.doRequest(ctx, http.MethodPut, endpoint, body, nil)
}
