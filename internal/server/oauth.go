package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// CallbackResult is the outcome of one authorization code exchange.
type CallbackResult struct {
	Token *oauth2.Token
	Err   error
}

// CallbackHandler serves the OAuth2 redirect endpoint for the login flow.
//
// The handler accepts exactly one callback. The state parameter is compared
// against the value sent with the authorization URL before the code is
// exchanged.
type CallbackHandler struct {
	config  *oauth2.Config
	state   string
	results chan CallbackResult
	once    sync.Once
}

// NewCallbackHandler creates a handler expecting the given state token.
func NewCallbackHandler(config *oauth2.Config, state string) *CallbackHandler {
	return &CallbackHandler{
		config:  config,
		state:   state,
		results: make(chan CallbackResult, 1),
	}
}

// ServeHTTP validates the callback, exchanges the code, and reports the
// result. Repeat requests after the first result are rejected.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("state") != h.state {
		h.deliver(CallbackResult{Err: fmt.Errorf("state mismatch in OAuth callback")})
		http.Error(w, "State mismatch", http.StatusBadRequest)
		return
	}

	code := query.Get("code")
	if code == "" {
		h.deliver(CallbackResult{Err: fmt.Errorf("authorization denied: %s %s",
			query.Get("error"), query.Get("error_description"))})
		http.Error(w, "Authorization denied", http.StatusBadRequest)
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.deliver(CallbackResult{Err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.deliver(CallbackResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, callbackPage)
}

// deliver sends the result exactly once; later callbacks are dropped.
func (h *CallbackHandler) deliver(result CallbackResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the channel carrying the single callback result.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.results
}

// WaitForCallback runs a loopback server at the redirect URI until the first
// callback arrives, the context is canceled, or the timeout elapses.
func WaitForCallback(ctx context.Context, config *oauth2.Config, state string, timeout time.Duration) (*oauth2.Token, error) {
	redirect, err := url.Parse(config.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect URI %q: %w", config.RedirectURL, err)
	}

	handler := NewCallbackHandler(config, state)

	mux := http.NewServeMux()
	mux.Handle(redirect.Path, handler)

	srv := &http.Server{Addr: redirect.Host, Handler: mux}

	errs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errs <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	select {
	case result := <-handler.Result():
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Token, nil
	case err := <-errs:
		return nil, fmt.Errorf("callback server failed: %w", err)
	case <-time.After(timeout):
		return nil, fmt.Errorf("timed out waiting for authorization after %s", timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

const callbackPage = `<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`
