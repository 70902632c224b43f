package downloader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/georgeb3/zoom-recording-downloader/internal/logging"
	"github.com/georgeb3/zoom-recording-downloader/internal/manifest"
	"github.com/georgeb3/zoom-recording-downloader/internal/zoom"
)

const defaultFilePause = 200 * time.Millisecond

// Summary reports what a run did.
type Summary struct {
	FilesSeen  int
	Downloaded int
	Skipped    int
	Failed     int
}

// Orchestrator is the top-level sequential control loop: it computes the
// query windows, drains the catalog per window, decides what is new against
// the manifest, downloads one file at a time, and records every success
// before moving on.
type Orchestrator struct {
	// FilePause is the fixed delay after each downloaded file.
	FilePause time.Duration
	// Now is the clock used to anchor the window range; replaced in tests.
	Now func() time.Time

	catalog    *zoom.CatalogClient
	invoker    *zoom.Invoker
	store      *manifest.Store
	outputDir  string
	userID     string
	monthsBack int
	logger     *slog.Logger
}

// New creates an orchestrator. userID is the subject whose recordings are
// listed ("me" means the account owner under Server-to-Server OAuth).
func New(catalog *zoom.CatalogClient, invoker *zoom.Invoker, store *manifest.Store, outputDir, userID string, monthsBack int, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		FilePause:  defaultFilePause,
		Now:        time.Now,
		catalog:    catalog,
		invoker:    invoker,
		store:      store,
		outputDir:  outputDir,
		userID:     userID,
		monthsBack: monthsBack,
		logger:     logger,
	}
}

// Run processes every window oldest first. Single-file failures (network,
// non-auth HTTP, filesystem) are logged and the loop continues; a listing
// failure skips the affected window only. Only an auth failure or a
// manifest write failure aborts the run.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	windows := MonthWindows(o.Now(), o.monthsBack)
	o.logger.Info("starting run",
		logging.User(o.userID),
		slog.Int("windows", len(windows)),
		slog.Int("manifest_entries", o.store.Count()))

	for _, w := range windows {
		o.logger.Info("listing recordings",
			logging.User(o.userID),
			logging.Window(w))

		err := o.catalog.ForeachRecordingFile(ctx, o.userID, w, func(f zoom.RecordingFile) error {
			sum.FilesSeen++
			return o.processFile(ctx, w, f, &sum)
		})
		if err != nil {
			if isFatal(err) {
				return sum, err
			}
			o.logger.Warn("window listing failed, skipping window",
				logging.Window(w),
				logging.Err(err))
		}
	}

	o.logger.Info("run complete",
		slog.Int("files_seen", sum.FilesSeen),
		slog.Int("downloaded", sum.Downloaded),
		slog.Int("skipped", sum.Skipped),
		slog.Int("failed", sum.Failed))

	return sum, nil
}

// processFile handles a single recording file. It returns an error only for
// the fatal classes; everything else is logged, counted, and contained so
// the run continues with the next file.
func (o *Orchestrator) processFile(ctx context.Context, w zoom.Window, f zoom.RecordingFile, sum *Summary) error {
	key := manifest.NewKey(f.MeetingID, f.FileID, f.Filename())
	logger := o.logger.With(
		logging.MeetingID(f.MeetingID),
		logging.FileID(f.FileID),
		logging.FileType(string(f.FileType)))

	if o.store.Contains(key) {
		sum.Skipped++
		logger.Debug("already downloaded", logging.Status(logging.StatusSkipped))
		return nil
	}

	dest := savePath(o.outputDir, f)
	logger.Info("downloading", logging.Path(dest))

	if err := o.download(ctx, f.DownloadURL, dest); err != nil {
		var authErr *zoom.AuthError
		if errors.As(err, &authErr) || errors.Is(err, context.Canceled) {
			return err
		}
		sum.Failed++
		logger.Warn("download failed",
			logging.Window(w),
			logging.Status(logging.StatusFailed),
			logging.Err(err))
		return nil
	}

	entry := manifest.Entry{
		SavePath:     dest,
		DownloadedAt: time.Now().UTC(),
		WindowStart:  w.FromDate(),
		WindowEnd:    w.ToDate(),
	}
	if err := o.store.RecordSuccess(key, entry); err != nil {
		return err
	}

	sum.Downloaded++
	logger.Info("saved", logging.Path(dest), logging.Status(logging.StatusSuccess))

	return pause(ctx, o.FilePause)
}

// download streams the file to dest through a .part temp file renamed only
// after the byte transfer completed, so an interrupted transfer never
// leaves a plausible-looking partial file behind. The request goes through
// the invoker: protected download URLs take the bearer token both as a
// header and as an access_token query parameter, and expired tokens are
// refreshed mid-run like any other call.
func (o *Orchestrator) download(ctx context.Context, rawURL, dest string) error {
	resp, err := o.invoker.Do(ctx, func(token string) (*http.Request, error) {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, err
		}
		q := u.Query()
		q.Set("access_token", token)
		u.RawQuery = q.Encode()

		req, err := http.NewRequest(http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		return req, nil
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmpPath := dest + ".part"
	out, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// isFatal reports whether err must abort the whole run.
func isFatal(err error) bool {
	var authErr *zoom.AuthError
	var writeErr *manifest.WriteError
	return errors.As(err, &authErr) || errors.As(err, &writeErr) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
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
