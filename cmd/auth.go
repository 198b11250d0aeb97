package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/desertthunder/freshtracks/internal/server"
	"github.com/desertthunder/freshtracks/internal/services"
	"github.com/desertthunder/freshtracks/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const authTimeout = 2 * time.Minute

// tokenPath returns the saved token location under the user's home directory.
func tokenPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".freshtracks", "token.json"), nil
}

// saveToken persists an OAuth token for later runs.
func saveToken(token *oauth2.Token) (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write token file: %w", err)
	}

	return path, nil
}

// loadToken reads the saved OAuth token.
func loadToken() (*oauth2.Token, error) {
	path, err := tokenPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// AuthLogin performs the OAuth2 authorization code flow.
//
// Starts a loopback HTTP server, opens the browser for user consent, and
// saves the exchanged token for later runs.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: set credentials.spotify in %s", shared.ErrMissingCredentials, cmd.String("config"))
	}

	svc, err := services.NewSpotifyService(map[string]string{
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"redirect_uri":  creds.RedirectURI,
	})
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}

	state := shared.GenerateID()
	authURL := svc.GetAuthURL(state)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warn("failed to open browser automatically", "err", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%s timeout)...\n", authTimeout)

	token, err := server.WaitForCallback(ctx, svc.OAuthConfig(), state, authTimeout)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	path, err := saveToken(token)
	if err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n\n", path)
	r.writePlain("You can now use: freshtracks run --genre \"your genre\"\n")

	return nil
}

// AuthStatus reports on the saved token.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	token, err := loadToken()
	if err != nil {
		r.writePlain("✗ Not authenticated\n")
		r.writePlain("Run 'freshtracks auth login' to authenticate.\n")
		return nil
	}

	if token.Valid() {
		r.writePlain("✓ Authenticated\n")
	} else if token.RefreshToken != "" {
		r.writePlain("✓ Authenticated (access token expired, will refresh)\n")
	} else {
		r.writePlain("✗ Token expired\n")
		r.writePlain("Run 'freshtracks auth login' to reauthenticate.\n")
		return nil
	}

	if !token.Expiry.IsZero() {
		r.writePlain("Expires: %s\n", token.Expiry.Format(time.RFC1123))
	}

	return nil
}
