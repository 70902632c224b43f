// Package logging provides structured logging utilities for the recording
// downloader.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "recordings.list")
//	logger.Info("listing recordings",
//	    logging.Status(logging.StatusSuccess))
//
// Attribute helpers keep keys uniform across packages:
//
//	logger.Warn("download failed",
//	    logging.MeetingID(meetingID),
//	    logging.FileID(fileID),
//	    logging.Err(err))
//
// Access tokens must never be logged directly; use SanitizeToken when a
// token needs to appear in a log line at all.
package logging
