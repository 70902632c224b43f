package logging

import (
	"fmt"
	"log/slog"
	"os"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyOperation = "operation"
	KeyMeetingID = "meeting_id"
	KeyFileID    = "file_id"
	KeyFileType  = "file_type"
	KeyWindow    = "window"
	KeyPath      = "path"
	KeyStatus    = "status"
	KeyError     = "error"
	KeyUser      = "user"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// New returns a text-handler logger writing to stderr at the given level.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return logger.With(slog.String(KeyOperation, operation))
}

// Operation returns a slog attribute for the operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// MeetingID returns a slog attribute for a meeting identifier.
func MeetingID(id string) slog.Attr {
	return slog.String(KeyMeetingID, id)
}

// FileID returns a slog attribute for a recording file identifier.
func FileID(id string) slog.Attr {
	return slog.String(KeyFileID, id)
}

// FileType returns a slog attribute for a recording file type label.
func FileType(t string) slog.Attr {
	return slog.String(KeyFileType, t)
}

// Window returns a slog attribute for a query window rendered as a string.
func Window(w fmt.Stringer) slog.Attr {
	return slog.String(KeyWindow, w.String())
}

// Path returns a slog attribute for a filesystem path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// User returns a slog attribute for the subject user identifier.
func User(u string) slog.Attr {
	return slog.String(KeyUser, u)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken returns a masked version of a token for logging.
// It returns a length indicator without exposing any token content.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
