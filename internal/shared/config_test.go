package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.Spotify.RedirectURI != "http://localhost:8080/callback" {
			t.Errorf("unexpected default redirect URI: %s", config.Credentials.Spotify.RedirectURI)
		}

		if config.Database.Path != "freshtracks.db" {
			t.Errorf("unexpected default database path: %s", config.Database.Path)
		}

		if config.Output.Dir != "." {
			t.Errorf("unexpected default output dir: %s", config.Output.Dir)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[credentials.spotify]
client_id = "test_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9999/callback"

[playlist]
id = "37i9dQZF1DXcBWIGoYBM5M"

[output]
dir = "reports"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_id" {
			t.Errorf("unexpected client_id: %s", config.Credentials.Spotify.ClientID)
		}
		if config.Playlist.ID != "37i9dQZF1DXcBWIGoYBM5M" {
			t.Errorf("unexpected playlist id: %s", config.Playlist.ID)
		}
		if config.Output.Dir != "reports" {
			t.Errorf("unexpected output dir: %s", config.Output.Dir)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		if err := os.WriteFile(path, []byte("not [ valid"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Fatal("expected config file to exist")
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}
