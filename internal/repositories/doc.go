// Package repositories implements SQLite persistence for the artist roster.
//
// The roster is an optional local cohort source: artists stored here are
// picked up by discovery runs when no input file is supplied. [ArtistRepository]
// handles CRUD operations plus bulk import from CSV snapshots.
package repositories
