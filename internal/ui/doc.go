// Package ui implements the terminal progress display using bubbletea's Elm
// architecture.
//
// A discovery run emits [pipeline.ProgressUpdate] values through a channel;
// the [Model] consumes them one message at a time, rendering the current
// phase with a spinner and a per-cohort progress bar. The display quits when
// the channel closes, handing the terminal back to the CLI for the run
// summary.
package ui
