package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/services"
	th "github.com/desertthunder/freshtracks/internal/testing"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("Full Discovery Run", func(t *testing.T) {
		dir := t.TempDir()

		single := mkAlbum("alb-s", "Fresh Single", models.AlbumTypeSingle, "2024-03-08")
		album := mkAlbum("alb-a", "Fresh Album", models.AlbumTypeAlbum, "2024-03-09")
		stale := mkAlbum("alb-old", "Old Album", models.AlbumTypeAlbum, "2024-01-01")

		catalog := &th.MockCatalog{
			SearchResults: []models.Artist{
				{ID: "a1", Name: "Autechre"},
				{ID: "a2", Name: "Plaid"},
			},
			Albums: map[string][]models.Album{
				"a1": {single, album},
				"a2": {album, stale},
			},
			Details: map[string]*services.AlbumDetail{
				"alb-s": mkDetail(single, "t1"),
				"alb-a": mkDetail(album, "t2"),
			},
		}

		engine := newTestEngine(catalog, nil)
		result, err := engine.Run(ctx, nil, RunOpts{
			Genre:      "idm",
			Sort:       models.SortAscending,
			OutputDir:  dir,
			PlaylistID: "pl1",
			Today:      date(2024, 3, 15),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !result.Threshold.Equal(date(2024, 3, 8)) {
			t.Errorf("threshold = %v, want 2024-03-08", result.Threshold)
		}
		if result.CohortSize != 2 {
			t.Errorf("cohort size = %d, want 2", result.CohortSize)
		}
		if len(result.Tracks) != 2 {
			t.Fatalf("expected 2 tracks, got %d", len(result.Tracks))
		}

		// Singles sort ahead of albums regardless of date order.
		if result.Tracks[0].ID != "t1" || result.Tracks[1].ID != "t2" {
			t.Errorf("unexpected track order: %v, %v", result.Tracks[0].ID, result.Tracks[1].ID)
		}

		if catalog.AlbumCalls["alb-a"] != 1 {
			t.Errorf("shared album expanded %d times, want 1", catalog.AlbumCalls["alb-a"])
		}
		if catalog.AlbumCalls["alb-old"] != 0 {
			t.Error("stale album should never be expanded")
		}

		if !result.PlaylistUpdated {
			t.Error("expected playlist to be updated")
		}
		if len(catalog.ReplacedIDs) != 2 {
			t.Errorf("replaced %d IDs, want 2", len(catalog.ReplacedIDs))
		}
		if catalog.UpdatedName != "Automated New Idm:  3-08 to  3-15" {
			t.Errorf("unexpected playlist name: %q", catalog.UpdatedName)
		}

		th.AssertFileExists(t, result.ReportPath)
		th.AssertFileExists(t, filepath.Join(dir, "idm_artists.csv"))
	})

	t.Run("Empty Result Short-Circuits", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{
			SearchResults: []models.Artist{{ID: "a1", Name: "Autechre"}},
			Albums: map[string][]models.Album{
				"a1": {mkAlbum("alb-old", "Old", models.AlbumTypeAlbum, "2020-01-01")},
			},
		}

		engine := newTestEngine(catalog, nil)
		result, err := engine.Run(ctx, nil, RunOpts{
			Genre:      "idm",
			Sort:       models.SortAscending,
			OutputDir:  dir,
			PlaylistID: "pl1",
			Today:      date(2024, 3, 15),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Tracks) != 0 || result.PlaylistUpdated {
			t.Errorf("expected empty run, got %d tracks, updated=%v", len(result.Tracks), result.PlaylistUpdated)
		}
		if catalog.ReplaceCalls != 0 || catalog.UpdateCalls != 0 {
			t.Error("expected no playlist writes")
		}

		content := th.MustReadFile(t, result.ReportPath)
		if lines := strings.Split(strings.TrimSpace(content), "\n"); len(lines) != 1 {
			t.Errorf("expected header-only report, got %q", content)
		}
	})

	t.Run("Track File Bypasses Discovery", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tracks.csv")
		csv := "id,title,artist,album,album_type,release_date,url\n" +
			"t9,Saved Track,Plaid,Reachy Prints,album,2024-03-10,\n"
		if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
			t.Fatal(err)
		}

		catalog := &th.MockCatalog{}
		engine := newTestEngine(catalog, nil)

		result, err := engine.Run(ctx, nil, RunOpts{
			Genre:      "idm",
			TracksFile: path,
			Sort:       models.SortNone,
			OutputDir:  dir,
			PlaylistID: "pl1",
			Today:      date(2024, 3, 15),
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if result.CohortSize != 0 {
			t.Error("expected no cohort resolution")
		}
		if len(result.Tracks) != 1 || result.Tracks[0].ID != "t9" {
			t.Errorf("unexpected tracks: %+v", result.Tracks)
		}
		if len(catalog.ReplacedIDs) != 1 || catalog.ReplacedIDs[0] != "t9" {
			t.Errorf("unexpected replaced IDs: %v", catalog.ReplacedIDs)
		}
	})

	t.Run("Malformed Track File Is Fatal", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "tracks.csv")
		if err := os.WriteFile(path, []byte("title\nNo ID Column\n"), 0644); err != nil {
			t.Fatal(err)
		}

		engine := newTestEngine(&th.MockCatalog{}, nil)
		_, err := engine.Run(ctx, nil, RunOpts{
			Genre:      "idm",
			TracksFile: path,
			OutputDir:  dir,
			Today:      date(2024, 3, 15),
		})
		if err == nil {
			t.Fatal("expected a parse error")
		}
	})

	t.Run("Progress Updates Delivered", func(t *testing.T) {
		dir := t.TempDir()
		catalog := &th.MockCatalog{
			SearchResults: []models.Artist{{ID: "a1", Name: "Autechre"}},
			Albums: map[string][]models.Album{
				"a1": {mkAlbum("alb1", "Fresh", models.AlbumTypeSingle, "2024-03-10")},
			},
			Details: map[string]*services.AlbumDetail{
				"alb1": mkDetail(mkAlbum("alb1", "Fresh", models.AlbumTypeSingle, "2024-03-10"), "t1"),
			},
		}

		progress := make(chan ProgressUpdate, 64)
		engine := newTestEngine(catalog, nil)
		if _, err := engine.Run(ctx, progress, RunOpts{
			Genre:     "idm",
			Sort:      models.SortAscending,
			OutputDir: dir,
			Today:     date(2024, 3, 15),
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		close(progress)

		phases := map[Phase]bool{}
		for update := range progress {
			phases[update.Phase] = true
		}

		for _, phase := range []Phase{ResolveCohort, ScanArtists, ExpandAlbum, WriteReport} {
			if !phases[phase] {
				t.Errorf("missing progress phase %v", phase)
			}
		}
	})
}
