package zoom

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/georgeb3/zoom-recording-downloader/internal/logging"
)

// DefaultAPIBase is the Zoom REST API root.
const DefaultAPIBase = "https://api.zoom.us/v2"

const (
	defaultPageSize  = 300
	defaultPagePause = 200 * time.Millisecond
)

// CatalogClient lists cloud recordings for a user over bounded date windows,
// de-paginating the listing endpoint. All page fetches go through the
// Invoker so token refresh applies uniformly.
type CatalogClient struct {
	// BaseURL may be overridden for tests; defaults to DefaultAPIBase.
	BaseURL string
	// PageSize is the page_size sent to the listing endpoint.
	PageSize int
	// PagePause is the fixed delay between page fetches, a rate-limit
	// courtesy rather than a retry mechanism.
	PagePause time.Duration

	invoker *Invoker
	logger  *slog.Logger
}

// NewCatalogClient creates a catalog client over the given invoker.
func NewCatalogClient(invoker *Invoker, logger *slog.Logger) *CatalogClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogClient{
		BaseURL:   DefaultAPIBase,
		PageSize:  defaultPageSize,
		PagePause: defaultPagePause,
		invoker:   invoker,
		logger:    logger,
	}
}

// ForeachRecordingFile calls fn for every recording file of every meeting
// the user recorded inside the window, page by page. The traversal is
// finite and drained exactly once per call; an error from fn stops it and
// is returned as-is. Files the API reports without a download URL are
// logged and skipped. A non-auth API failure mid-pagination surfaces as a
// *RequestError for this window only.
func (c *CatalogClient) ForeachRecordingFile(ctx context.Context, userID string, w Window, fn func(RecordingFile) error) error {
	listURL := fmt.Sprintf("%s/users/%s/recordings", c.BaseURL, url.PathEscape(userID))
	logger := logging.WithOperation(c.logger, "recordings.list")

	nextToken := ""
	for page := 0; ; page++ {
		if page > 0 {
			if err := pause(ctx, c.PagePause); err != nil {
				return err
			}
		}

		query := url.Values{
			"from":      {w.FromDate()},
			"to":        {w.ToDate()},
			"page_size": {strconv.Itoa(c.PageSize)},
		}
		if nextToken != "" {
			query.Set("next_page_token", nextToken)
		}

		var resp recordingsPage
		if err := c.invoker.GetJSON(ctx, listURL, query, &resp); err != nil {
			return err
		}

		logger.Debug("fetched recordings page",
			logging.User(userID),
			logging.Window(w),
			slog.Int("meetings", len(resp.Meetings)))

		for _, m := range resp.Meetings {
			start, _ := time.Parse(time.RFC3339, m.StartTime)
			for _, r := range m.RecordingFiles {
				if r.DownloadURL == "" {
					logger.Debug("recording file has no download URL, skipping",
						logging.MeetingID(m.meetingID()),
						logging.FileType(r.FileType))
					continue
				}
				file := RecordingFile{
					MeetingID:      m.meetingID(),
					MeetingTopic:   m.Topic,
					RecordingStart: start,
					FileID:         r.fileID(),
					FileType:       ParseFileType(r.FileType),
					FileExtension:  r.FileExtension,
					DownloadURL:    r.DownloadURL,
				}
				if err := fn(file); err != nil {
					return err
				}
			}
		}

		nextToken = resp.NextPageToken
		if nextToken == "" {
			return nil
		}
	}
}

// pause sleeps for d or until the context is cancelled.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
