package zoom

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *CatalogClient {
	t.Helper()
	tokenSrv, _ := newTestTokenServer(t)
	apiSrv := httptest.NewServer(handler)
	t.Cleanup(apiSrv.Close)

	c := NewCatalogClient(newTestInvoker(t, tokenSrv.URL), nil)
	c.BaseURL = apiSrv.URL
	c.PagePause = 0
	return c
}

func testWindow() Window {
	return Window{
		Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestForeachRecordingFilePagination(t *testing.T) {
	var pages []string
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/me/recordings", r.URL.Path)
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("to"))
		assert.Equal(t, "300", r.URL.Query().Get("page_size"))

		cursor := r.URL.Query().Get("next_page_token")
		pages = append(pages, cursor)
		if cursor == "" {
			fmt.Fprint(w, `{
				"meetings": [{
					"uuid": "M1", "topic": "Standup", "start_time": "2024-01-05T10:00:00Z",
					"recording_files": [
						{"id": "F1", "file_type": "MP4", "download_url": "https://dl/f1"},
						{"id": "F2", "file_type": "CHAT", "download_url": "https://dl/f2"}
					]
				}],
				"next_page_token": "p2"
			}`)
			return
		}
		fmt.Fprint(w, `{
			"meetings": [{
				"uuid": "M2", "topic": "Retro", "start_time": "2024-01-12T15:00:00Z",
				"recording_files": [
					{"id": "F3", "file_type": "M4A", "download_url": "https://dl/f3"}
				]
			}],
			"next_page_token": ""
		}`)
	}

	c := newTestCatalog(t, handler)

	var got []RecordingFile
	err := c.ForeachRecordingFile(context.Background(), "me", testWindow(), func(f RecordingFile) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"", "p2"}, pages, "cursor must be threaded through page fetches")
	require.Len(t, got, 3)
	assert.Equal(t, "M1", got[0].MeetingID)
	assert.Equal(t, "Standup", got[0].MeetingTopic)
	assert.Equal(t, FileTypeMP4, got[0].FileType)
	assert.Equal(t, time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), got[0].RecordingStart)
	assert.Equal(t, FileTypeChat, got[1].FileType)
	assert.Equal(t, "M2", got[2].MeetingID)
	assert.Equal(t, FileTypeM4A, got[2].FileType)
}

func TestForeachRecordingFileMapsUnknownTypesToOther(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"meetings": [{
				"uuid": "M1", "topic": "Standup", "start_time": "2024-01-05T10:00:00Z",
				"recording_files": [
					{"id": "F1", "file_type": "SUMMARY", "file_extension": "JSON", "download_url": "https://dl/f1"}
				]
			}]
		}`)
	}

	c := newTestCatalog(t, handler)

	var got []RecordingFile
	err := c.ForeachRecordingFile(context.Background(), "me", testWindow(), func(f RecordingFile) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 1, "unrecognized labels map to OTHER, never dropped")
	assert.Equal(t, FileTypeOther, got[0].FileType)
	assert.Equal(t, "OTHER.json", got[0].Filename())
}

func TestForeachRecordingFileSkipsFilesWithoutDownloadURL(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"meetings": [{
				"uuid": "M1", "topic": "Standup", "start_time": "2024-01-05T10:00:00Z",
				"recording_files": [
					{"id": "F1", "file_type": "MP4"},
					{"id": "F2", "file_type": "M4A", "download_url": "https://dl/f2"}
				]
			}]
		}`)
	}

	c := newTestCatalog(t, handler)

	var got []RecordingFile
	err := c.ForeachRecordingFile(context.Background(), "me", testWindow(), func(f RecordingFile) error {
		got = append(got, f)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "F2", got[0].FileID)
}

func TestForeachRecordingFileListingFailure(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":300,"message":"The next page token is invalid or expired."}`)
	}

	c := newTestCatalog(t, handler)

	err := c.ForeachRecordingFile(context.Background(), "me", testWindow(), func(f RecordingFile) error {
		t.Fatal("callback should not run when the listing fails")
		return nil
	})
	require.Error(t, err)

	var reqErr *RequestError
	assert.True(t, errors.As(err, &reqErr), "listing failure should be a *RequestError, got %T", err)
}

func TestForeachRecordingFileStopsOnCallbackError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"meetings": [{
				"uuid": "M1", "topic": "Standup", "start_time": "2024-01-05T10:00:00Z",
				"recording_files": [
					{"id": "F1", "file_type": "MP4", "download_url": "https://dl/f1"},
					{"id": "F2", "file_type": "M4A", "download_url": "https://dl/f2"}
				]
			}]
		}`)
	}

	c := newTestCatalog(t, handler)

	sentinel := errors.New("stop")
	calls := 0
	err := c.ForeachRecordingFile(context.Background(), "me", testWindow(), func(f RecordingFile) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls, "the drain stops at the first callback error")
}

func TestParseFileType(t *testing.T) {
	tests := []struct {
		label string
		want  FileType
	}{
		{"MP4", FileTypeMP4},
		{"mp4", FileTypeMP4},
		{"M4A", FileTypeM4A},
		{"CHAT", FileTypeChat},
		{"VTT", FileTypeVTT},
		{"TRANSCRIPT", FileTypeTranscript},
		{"TIMELINE", FileTypeOther},
		{"", FileTypeOther},
	}
	for _, tt := range tests {
		if got := ParseFileType(tt.label); got != tt.want {
			t.Errorf("ParseFileType(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestFileTypeExt(t *testing.T) {
	tests := []struct {
		t         FileType
		remoteExt string
		want      string
	}{
		{FileTypeMP4, "", "mp4"},
		{FileTypeM4A, "", "m4a"},
		{FileTypeChat, "", "txt"},
		{FileTypeVTT, "", "vtt"},
		{FileTypeTranscript, "", "vtt"},
		{FileTypeOther, "JSON", "json"},
		{FileTypeOther, ".csv", "csv"},
		{FileTypeOther, "", "bin"},
	}
	for _, tt := range tests {
		if got := tt.t.Ext(tt.remoteExt); got != tt.want {
			t.Errorf("%v.Ext(%q) = %q, want %q", tt.t, tt.remoteExt, got, tt.want)
		}
	}
}

func TestWindowDates(t *testing.T) {
	w := testWindow()
	assert.Equal(t, "2024-01-01", w.FromDate())
	assert.Equal(t, "2024-01-31", w.ToDate(), "half-open midnight end falls on the previous day")

	partial := Window{
		Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "2024-03-15", partial.ToDate(), "mid-day end is reported as that day")
}
