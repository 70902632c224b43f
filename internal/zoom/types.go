package zoom

import (
	"strconv"
	"strings"
	"time"
)

// FileType classifies a recording file. Labels the API reports outside this
// set are mapped to FileTypeOther rather than dropped.
type FileType string

const (
	FileTypeMP4        FileType = "MP4"
	FileTypeM4A        FileType = "M4A"
	FileTypeChat       FileType = "CHAT"
	FileTypeVTT        FileType = "VTT"
	FileTypeTranscript FileType = "TRANSCRIPT"
	FileTypeOther      FileType = "OTHER"
)

// ParseFileType maps a remote file_type label to a FileType.
func ParseFileType(label string) FileType {
	switch FileType(strings.ToUpper(strings.TrimSpace(label))) {
	case FileTypeMP4:
		return FileTypeMP4
	case FileTypeM4A:
		return FileTypeM4A
	case FileTypeChat:
		return FileTypeChat
	case FileTypeVTT:
		return FileTypeVTT
	case FileTypeTranscript:
		return FileTypeTranscript
	default:
		return FileTypeOther
	}
}

// Ext returns the filename extension for the file type. Types that arrive
// without a canonical extension fall back to the remote-reported extension,
// then to "bin".
func (t FileType) Ext(remoteExt string) string {
	switch t {
	case FileTypeMP4:
		return "mp4"
	case FileTypeM4A:
		return "m4a"
	case FileTypeChat:
		return "txt"
	case FileTypeVTT, FileTypeTranscript:
		return "vtt"
	}
	if ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(remoteExt), ".")); ext != "" {
		return ext
	}
	return "bin"
}

// Window is a half-open [Start, End) date range used to query the recording
// catalog. The API restricts query ranges, so windows are at most one
// calendar month wide.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) String() string {
	return w.FromDate() + ".." + w.ToDate()
}

// FromDate renders the inclusive lower bound in the API's date format.
func (w Window) FromDate() string {
	return w.Start.Format(time.DateOnly)
}

// ToDate renders the inclusive upper bound in the API's date format. The
// window is half-open, so a midnight End falls on the previous day.
func (w Window) ToDate() string {
	end := w.End
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		end = end.AddDate(0, 0, -1)
	}
	return end.Format(time.DateOnly)
}

// RecordingFile is one downloadable artifact of a recorded meeting, produced
// by the catalog client from API pages. It lives only for the current run;
// completed downloads are remembered through the manifest instead.
type RecordingFile struct {
	MeetingID      string
	MeetingTopic   string
	RecordingStart time.Time
	FileID         string
	FileType       FileType
	FileExtension  string
	DownloadURL    string
}

// Filename returns the deterministic local name for the file, derived from
// its type and extension (e.g. "MP4.mp4").
func (f RecordingFile) Filename() string {
	return string(f.FileType) + "." + f.FileType.Ext(f.FileExtension)
}

// Wire types for GET /users/{userId}/recordings.

type recordingsPage struct {
	Meetings      []meetingRecord `json:"meetings"`
	NextPageToken string          `json:"next_page_token"`
}

type meetingRecord struct {
	UUID           string       `json:"uuid"`
	ID             int64        `json:"id"`
	Topic          string       `json:"topic"`
	StartTime      string       `json:"start_time"`
	RecordingFiles []fileRecord `json:"recording_files"`
}

type fileRecord struct {
	ID             string `json:"id"`
	FileType       string `json:"file_type"`
	FileExtension  string `json:"file_extension"`
	DownloadURL    string `json:"download_url"`
	RecordingStart string `json:"recording_start"`
	RecordingEnd   string `json:"recording_end"`
}

// meetingID prefers the stable UUID and falls back to the numeric id.
func (m meetingRecord) meetingID() string {
	if m.UUID != "" {
		return m.UUID
	}
	if m.ID != 0 {
		return strconv.FormatInt(m.ID, 10)
	}
	return "unknown_meeting"
}

// fileID falls back through recording_end and the type label for the rare
// API responses that omit the file id.
func (r fileRecord) fileID() string {
	if r.ID != "" {
		return r.ID
	}
	if r.RecordingEnd != "" {
		return r.RecordingEnd
	}
	return r.FileType
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
