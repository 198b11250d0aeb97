// package formatter handles the flat-file surfaces of a run: artist and
// track CSV snapshots, report naming, and prior-report cleanup
package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/shared"
)

const dateLayout = "2006-01-02"

var trackHeaders = []string{"id", "title", "artist", "album", "album_type", "release_date", "url"}

// WriteTracksCSV writes the final track list with one row per track.
// An empty list still produces the header row.
func WriteTracksCSV(w io.Writer, tracks []models.Track) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(trackHeaders); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			track.AlbumType,
			track.ReleaseDate.Format(dateLayout),
			track.URL,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}

	return nil
}

// ReadTracksCSV parses a track snapshot. The id column is required; every
// other column is optional and extra columns are ignored.
func ReadTracksCSV(r io.Reader) ([]models.Track, error) {
	rows, index, err := readTable(r)
	if err != nil {
		return nil, err
	}

	idCol, ok := index["id"]
	if !ok {
		return nil, fmt.Errorf("%w: id", shared.ErrMissingColumn)
	}

	tracks := make([]models.Track, 0, len(rows))
	for _, row := range rows {
		track := models.Track{
			ID:        cell(row, idCol),
			Title:     cell(row, column(index, "title")),
			Artist:    cell(row, column(index, "artist")),
			Album:     cell(row, column(index, "album")),
			AlbumType: cell(row, column(index, "album_type")),
			URL:       cell(row, column(index, "url")),
		}

		if date, err := time.Parse(dateLayout, cell(row, column(index, "release_date"))); err == nil {
			track.ReleaseDate = date
		}

		tracks = append(tracks, track)
	}

	return tracks, nil
}

// WriteArtistsCSV writes the resolved cohort snapshot.
func WriteArtistsCSV(w io.Writer, artists []models.Artist) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"name", "id", "url"}); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artist := range artists {
		if err := writer.Write([]string{artist.Name, artist.ID, artist.URL}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("CSV writer error: %w", err)
	}

	return nil
}

// ReadArtistsCSV parses an artist input file. The id column is required,
// name is typical, and extra columns are ignored.
func ReadArtistsCSV(r io.Reader) ([]models.Artist, error) {
	rows, index, err := readTable(r)
	if err != nil {
		return nil, err
	}

	idCol, ok := index["id"]
	if !ok {
		return nil, fmt.Errorf("%w: id", shared.ErrMissingColumn)
	}

	artists := make([]models.Artist, 0, len(rows))
	for _, row := range rows {
		artists = append(artists, models.Artist{
			ID:   cell(row, idCol),
			Name: cell(row, column(index, "name")),
			URL:  cell(row, column(index, "url")),
		})
	}

	return artists, nil
}

// readTable reads a headered CSV into rows plus a lowercased header index.
func readTable(r io.Reader) ([][]string, map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, map[string]int{}, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		index[strings.ToLower(strings.TrimSpace(header))] = i
	}

	return records[1:], index, nil
}

// column returns the index of a header, or -1 when absent.
func column(index map[string]int, name string) int {
	if col, ok := index[name]; ok {
		return col
	}
	return -1
}

// cell returns row[col], or "" when the column is absent or the row is short.
func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// PlaylistName builds the destination playlist title from genre and date range.
func PlaylistName(genre string, threshold, today time.Time) string {
	return fmt.Sprintf("Automated New %s: %2d-%02d to %2d-%02d",
		shared.TitleCase(genre),
		int(threshold.Month()), threshold.Day(),
		int(today.Month()), today.Day())
}

// slugGenre normalizes a genre for use in file names.
func slugGenre(genre string) string {
	return strings.ToLower(strings.Join(strings.Fields(genre), "_"))
}

// ReportFilename builds the dated snapshot file name for a run.
func ReportFilename(genre string, threshold, today time.Time) string {
	return fmt.Sprintf("new_%s_%s_to_%s.csv",
		slugGenre(genre), threshold.Format(dateLayout), today.Format(dateLayout))
}

// ArtistSnapshotFilename builds the cohort snapshot file name for a genre.
func ArtistSnapshotFilename(genre string) string {
	return fmt.Sprintf("%s_artists.csv", slugGenre(genre))
}

// RemovePriorReports deletes report files for the genre in dir, so the
// directory holds the single latest snapshot rather than an append log.
// Returns the number of files removed.
func RemovePriorReports(dir, genre string) (int, error) {
	pattern := filepath.Join(dir, fmt.Sprintf("new_%s_*.csv", slugGenre(genre)))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("failed to match prior reports: %w", err)
	}

	removed := 0
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return removed, fmt.Errorf("failed to remove prior report %s: %w", match, err)
		}
		removed++
	}

	return removed, nil
}
