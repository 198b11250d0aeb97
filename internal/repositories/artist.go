package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/freshtracks/internal/models"
	"github.com/desertthunder/freshtracks/internal/shared"
)

// ArtistRepository persists the artist roster used as a cohort source.
type ArtistRepository struct {
	db *sql.DB
}

// NewArtistRepository creates a new [ArtistRepository] with the given database connection
func NewArtistRepository(db *sql.DB) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts an artist, updating name and url when the ID already exists.
// The ID is the catalog's artist identifier so re-adding is idempotent.
func (r *ArtistRepository) Create(artist *models.Artist) error {
	if artist.Name == "" {
		return fmt.Errorf("%w: artist name is required", shared.ErrInvalidInput)
	}
	if artist.ID == "" {
		artist.ID = shared.GenerateID()
	}

	now := time.Now()

	query := `
		INSERT INTO artists (id, name, url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, url = excluded.url, updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, artist.ID, artist.Name, artist.URL, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert artist: %w", err)
	}

	return nil
}

// Get retrieves an artist by ID
func (r *ArtistRepository) Get(id string) (*models.Artist, error) {
	query := `
		SELECT id, name, url
		FROM artists
		WHERE id = ?
	`

	var (
		artistID string
		name     string
		url      sql.NullString
	)

	err := r.db.QueryRow(query, id).Scan(&artistID, &name, &url)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("artist not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query artist: %w", err)
	}

	return &models.Artist{ID: artistID, Name: name, URL: url.String}, nil
}

// List retrieves the full roster ordered case-insensitively by name.
//
// Satisfies the pipeline's roster source interface.
func (r *ArtistRepository) List() ([]models.Artist, error) {
	query := `
		SELECT id, name, url
		FROM artists
		ORDER BY name COLLATE NOCASE ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query artists: %w", err)
	}
	defer rows.Close()

	var artists []models.Artist
	for rows.Next() {
		var (
			artistID string
			name     string
			url      sql.NullString
		)

		if err := rows.Scan(&artistID, &name, &url); err != nil {
			return nil, fmt.Errorf("failed to scan artist: %w", err)
		}

		artists = append(artists, models.Artist{ID: artistID, Name: name, URL: url.String})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return artists, nil
}

// Delete removes an artist from the roster by ID
func (r *ArtistRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("artist not found: %s", id)
	}

	return nil
}

// Import upserts a batch of artists in one transaction and returns the
// number of rows written. Used by `artists import` to load a CSV snapshot.
func (r *ArtistRepository) Import(artists []models.Artist) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO artists (id, name, url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, url = excluded.url, updated_at = excluded.updated_at
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare import statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	imported := 0

	for _, artist := range artists {
		if artist.ID == "" || artist.Name == "" {
			continue
		}
		if _, err := stmt.Exec(artist.ID, artist.Name, artist.URL, now, now); err != nil {
			return 0, fmt.Errorf("failed to import artist %s: %w", artist.ID, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit import: %w", err)
	}

	return imported, nil
}
