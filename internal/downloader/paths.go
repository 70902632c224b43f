package downloader

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/georgeb3/zoom-recording-downloader/internal/zoom"
)

const (
	maxSegmentLen   = 120
	maxMeetingIDLen = 80

	startTimeLayout = "2006-01-02T15-04-05"
)

var (
	invalidPathChars = regexp.MustCompile(`[^\w\-.()\s]+`)
	repeatWhitespace = regexp.MustCompile(`\s+`)
)

// sanitizeSegment makes a string safe to use as a single path component:
// characters outside [\w\-.()\s] are stripped, whitespace is collapsed, and
// the result is capped at maxLen. An empty result becomes "untitled".
func sanitizeSegment(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	s = invalidPathChars.ReplaceAllString(s, "")
	s = repeatWhitespace.ReplaceAllString(s, " ")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "untitled"
	}
	return s
}

// savePath derives the local destination for a recording file:
// outputDir/<start> - <topic>/<meetingID>/<TYPE>.<ext>.
func savePath(outputDir string, f zoom.RecordingFile) string {
	start := "unknown_start"
	if !f.RecordingStart.IsZero() {
		start = f.RecordingStart.Format(startTimeLayout)
	}
	topic := sanitizeSegment(f.MeetingTopic, maxSegmentLen)
	meetingDir := sanitizeSegment(start+" - "+topic, maxSegmentLen)
	return filepath.Join(outputDir, meetingDir, sanitizeSegment(f.MeetingID, maxMeetingIDLen), f.Filename())
}
