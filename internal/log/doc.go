// Package log provides terminal-oriented progress logging, built on top
// of the standard slog package.
//
// Long builds spend minutes waiting on rate-limited HTTP calls, so the
// log stream doubles as the progress display. The ProgressHandler keeps
// each record on a single compact line:
//
//	15:04:05 INFO fetched species counts group=birds page=2 count=200
//
// # Usage
//
//	logger := log.NewProgressLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
