package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"
)

func newTestConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		RedirectURL:  "http://localhost:8080/callback",
	}
}

func TestCallbackHandler(t *testing.T) {
	t.Run("State Mismatch", func(t *testing.T) {
		handler := NewCallbackHandler(newTestConfig(""), "expected-state")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=wrong&code=abc", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}

		result := <-handler.Result()
		if result.Err == nil || !strings.Contains(result.Err.Error(), "state mismatch") {
			t.Errorf("expected state mismatch error, got %v", result.Err)
		}
	})

	t.Run("Authorization Denied", func(t *testing.T) {
		handler := NewCallbackHandler(newTestConfig(""), "s1")

		req := httptest.NewRequest(http.MethodGet, "/callback?state=s1&error=access_denied", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		result := <-handler.Result()
		if result.Err == nil || !strings.Contains(result.Err.Error(), "access_denied") {
			t.Errorf("expected denial error, got %v", result.Err)
		}
	})

	t.Run("Successful Exchange", func(t *testing.T) {
		tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Errorf("bad token request: %v", err)
			}
			if got := r.FormValue("code"); got != "auth-code" {
				t.Errorf("code = %q, want auth-code", got)
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok123","token_type":"Bearer","expires_in":3600}`))
		}))
		defer tokenServer.Close()

		handler := NewCallbackHandler(newTestConfig(tokenServer.URL), "s1")

		params := url.Values{"state": {"s1"}, "code": {"auth-code"}}
		req := httptest.NewRequest(http.MethodGet, "/callback?"+params.Encode(), nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if !strings.Contains(rec.Body.String(), "Authorization Successful") {
			t.Error("expected the success page")
		}

		result := <-handler.Result()
		if result.Err != nil {
			t.Fatalf("unexpected error: %v", result.Err)
		}
		if result.Token == nil || result.Token.AccessToken != "tok123" {
			t.Errorf("unexpected token: %+v", result.Token)
		}
	})

	t.Run("Only First Result Delivered", func(t *testing.T) {
		handler := NewCallbackHandler(newTestConfig(""), "s1")

		for i := 0; i < 2; i++ {
			req := httptest.NewRequest(http.MethodGet, "/callback?state=wrong", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}

		if result, ok := <-handler.Result(); !ok || result.Err == nil {
			t.Error("expected one delivered result")
		}
		if _, ok := <-handler.Result(); ok {
			t.Error("expected channel to be closed after first result")
		}
	})
}
