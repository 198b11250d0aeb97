package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrMissingGenre       = fmt.Errorf("no genre specified")
	ErrMissingPlaylistID  = fmt.Errorf("no playlist ID configured")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")

	// API and catalog errors
	ErrAPIRequest       = fmt.Errorf("API request failed")
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrMalformedDate    = fmt.Errorf("malformed release date")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrMissingColumn   = fmt.Errorf("missing required column")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
