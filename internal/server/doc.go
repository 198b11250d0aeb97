// Package server implements the loopback HTTP server for the OAuth2
// authorization code flow.
//
// The server exists for a single callback: `auth login` opens the provider's
// consent page in a browser, the provider redirects to the configured
// loopback address, and [CallbackHandler] validates the state parameter,
// exchanges the authorization code for a token, and delivers the result to
// the waiting CLI through a channel. The server shuts down after the first
// callback.
package server
