package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/freshtracks/internal/models"
	th "github.com/desertthunder/freshtracks/internal/testing"
)

func TestReconcile(t *testing.T) {
	ctx := context.Background()
	threshold := date(2024, 3, 8)
	today := date(2024, 3, 15)

	baseOpts := func(dir string) ReconcileOpts {
		return ReconcileOpts{
			Genre:      "idm",
			Threshold:  threshold,
			Today:      today,
			OutputDir:  dir,
			PlaylistID: "pl1",
		}
	}

	tracks := []models.Track{
		mkTrack("t1", "Autechre", "single", date(2024, 3, 10)),
		mkTrack("t2", "Plaid", "album", date(2024, 3, 12)),
	}

	t.Run("Report Written And Playlist Updated", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{}
		engine := newTestEngine(catalog, nil)

		reportPath, updated, err := engine.Reconcile(ctx, nil, tracks, baseOpts(dir))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !updated {
			t.Error("expected playlist to be updated")
		}

		wantPath := filepath.Join(dir, "new_idm_2024-03-08_to_2024-03-15.csv")
		if reportPath != wantPath {
			t.Errorf("report path = %q, want %q", reportPath, wantPath)
		}
		th.AssertFileExists(t, reportPath)

		if catalog.ReplacedPlaylist != "pl1" {
			t.Errorf("wrong playlist: %q", catalog.ReplacedPlaylist)
		}
		if len(catalog.ReplacedIDs) != 2 || catalog.ReplacedIDs[0] != "t1" || catalog.ReplacedIDs[1] != "t2" {
			t.Errorf("unexpected replaced IDs: %v", catalog.ReplacedIDs)
		}
		if catalog.UpdatedName != "Automated New Idm:  3-08 to  3-15" {
			t.Errorf("unexpected playlist name: %q", catalog.UpdatedName)
		}
		if !strings.Contains(catalog.UpdatedDesc, "freshtracks") {
			t.Errorf("unexpected description: %q", catalog.UpdatedDesc)
		}
	})

	t.Run("Prior Reports Removed", func(t *testing.T) {
		dir := t.TempDir()
		stale := filepath.Join(dir, "new_idm_2024-02-23_to_2024-03-01.csv")
		other := filepath.Join(dir, "new_techno_2024-02-23_to_2024-03-01.csv")
		for _, p := range []string{stale, other} {
			if err := os.WriteFile(p, []byte("id\n"), 0644); err != nil {
				t.Fatal(err)
			}
		}

		engine := newTestEngine(&th.MockCatalog{}, nil)
		if _, _, err := engine.Reconcile(ctx, nil, tracks, baseOpts(dir)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if _, err := os.Stat(stale); !os.IsNotExist(err) {
			t.Error("expected stale same-genre report to be removed")
		}
		th.AssertFileExists(t, other)
	})

	t.Run("Empty Run Writes Header-Only Report", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{}
		engine := newTestEngine(catalog, nil)

		reportPath, updated, err := engine.Reconcile(ctx, nil, nil, baseOpts(dir))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated {
			t.Error("expected no playlist update for an empty run")
		}
		if catalog.ReplaceCalls != 0 || catalog.UpdateCalls != 0 {
			t.Error("expected no catalog writes for an empty run")
		}

		content := th.MustReadFile(t, reportPath)
		lines := strings.Split(strings.TrimSpace(content), "\n")
		if len(lines) != 1 || !strings.HasPrefix(lines[0], "id,") {
			t.Errorf("expected header-only report, got %q", content)
		}
	})

	t.Run("Dry Run Skips Playlist", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{}
		engine := newTestEngine(catalog, nil)

		opts := baseOpts(dir)
		opts.DryRun = true

		reportPath, updated, err := engine.Reconcile(ctx, nil, tracks, opts)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated || catalog.ReplaceCalls != 0 {
			t.Error("dry run must not touch the playlist")
		}
		th.AssertFileExists(t, reportPath)
	})

	t.Run("Missing Playlist ID Is Not Fatal", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{}
		engine := newTestEngine(catalog, nil)

		opts := baseOpts(dir)
		opts.PlaylistID = ""

		reportPath, updated, err := engine.Reconcile(ctx, nil, tracks, opts)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated || catalog.ReplaceCalls != 0 {
			t.Error("expected reconciliation to be skipped")
		}
		th.AssertFileExists(t, reportPath)
	})

	t.Run("Duplicate Track IDs Collapsed", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{}
		engine := newTestEngine(catalog, nil)

		dupes := []models.Track{
			mkTrack("t1", "A", "single", date(2024, 3, 10)),
			mkTrack("t2", "B", "single", date(2024, 3, 11)),
			mkTrack("t1", "A", "album", date(2024, 3, 10)),
		}

		if _, _, err := engine.Reconcile(ctx, nil, dupes, baseOpts(dir)); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(catalog.ReplacedIDs) != 2 || catalog.ReplacedIDs[0] != "t1" || catalog.ReplacedIDs[1] != "t2" {
			t.Errorf("unexpected replaced IDs: %v", catalog.ReplacedIDs)
		}
	})
}
