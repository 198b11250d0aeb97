// package models defines the data model for the release discovery pipeline
package models

import (
	"fmt"
	"strings"
	"time"
)

// Artist is one member of a run's cohort, resolved from a CSV file, the
// roster database, or a genre search. Identity is the catalog ID.
type Artist struct {
	Name string
	ID   string
	URL  string
}

// AlbumType classifies a catalog album listing.
type AlbumType string

const (
	AlbumTypeAlbum       AlbumType = "album"
	AlbumTypeSingle      AlbumType = "single"
	AlbumTypeCompilation AlbumType = "compilation"
)

// ReleasePrecision is the granularity at which the catalog reports an
// album's release date.
type ReleasePrecision string

const (
	PrecisionDay   ReleasePrecision = "day"
	PrecisionMonth ReleasePrecision = "month"
	PrecisionYear  ReleasePrecision = "year"
)

// Album is a transient catalog listing, alive only during traversal.
type Album struct {
	ID          string
	Name        string
	Type        AlbumType
	ReleaseDate string
	Precision   ReleasePrecision
}

// ResolveReleaseDate normalizes the album's release date string to a
// comparable calendar date: month precision resolves to the first of the
// month, year precision to January 1.
func (a Album) ResolveReleaseDate() (time.Time, error) {
	var layout string
	switch a.Precision {
	case PrecisionDay:
		layout = "2006-01-02"
	case PrecisionMonth:
		layout = "2006-01"
	case PrecisionYear:
		layout = "2006"
	default:
		return time.Time{}, fmt.Errorf("unknown release date precision %q", a.Precision)
	}

	date, err := time.Parse(layout, a.ReleaseDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("release date %q does not match precision %q: %w", a.ReleaseDate, a.Precision, err)
	}

	return date, nil
}

// Track is one discovered track, produced once per qualifying album.
// Identity is the catalog ID.
type Track struct {
	Title       string
	Artist      string
	Album       string
	AlbumType   string
	ReleaseDate time.Time
	URL         string
	ID          string
}

// SortMode selects the ordering policy applied to the final track list.
type SortMode int

const (
	SortAscending SortMode = iota
	SortDescending
	SortNone
	// SortUnspecified marks an unrecognized mode string. It behaves as
	// SortNone but lets the caller warn about the input.
	SortUnspecified
)

func (m SortMode) String() string {
	switch m {
	case SortAscending:
		return "ascending"
	case SortDescending:
		return "descending"
	case SortNone:
		return "none"
	case SortUnspecified:
		return "unspecified"
	default:
		return ""
	}
}

// ParseSortMode maps a mode string to a SortMode. Unrecognized input maps
// to SortUnspecified with ok=false.
func ParseSortMode(s string) (SortMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascending", "asc":
		return SortAscending, true
	case "descending", "desc":
		return SortDescending, true
	case "none", "":
		return SortNone, true
	default:
		return SortUnspecified, false
	}
}
