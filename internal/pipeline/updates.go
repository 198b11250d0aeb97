package pipeline

import (
	"fmt"

	"github.com/desertthunder/freshtracks/internal/models"
)

// ProgressUpdate represents a progress event during a run.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveCohort Phase = iota
	ScanArtists
	ExpandAlbum
	WriteReport
	UpdatePlaylist
)

func (p Phase) String() string {
	switch p {
	case ResolveCohort:
		return "resolve_cohort"
	case ScanArtists:
		return "scan_artists"
	case ExpandAlbum:
		return "expand_album"
	case WriteReport:
		return "write_report"
	case UpdatePlaylist:
		return "update_playlist"
	default:
		return ""
	}
}

func searchingArtistsUpdate(genre string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveCohort,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching for artists in genre %q...", genre),
	}
}

func cohortResolvedUpdate(count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveCohort,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Cohort resolved: %d artists", count),
	}
}

func scanningArtistUpdate(step, total int, artist models.Artist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanArtists,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, artist.Name),
		Data:    artist,
	}
}

func albumExpandedUpdate(step, total int, album models.Album, tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExpandAlbum,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found new %s: %s (%d tracks)", album.Type, album.Name, tracks),
		Data:    album,
	}
}

func writingReportUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteReport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing snapshot report to %s", path),
	}
}

func updatingPlaylistUpdate(name string, tracks int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   UpdatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Replacing playlist with %d tracks: %s", tracks, name),
	}
}
