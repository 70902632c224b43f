package downloader

import (
	"time"

	"github.com/georgeb3/zoom-recording-downloader/internal/zoom"
)

// MonthWindows partitions [now - monthsBack months, now] into consecutive
// half-open windows, oldest first. Each window ends at the first of the next
// calendar month (or at now for the last one), so no window exceeds one
// calendar month and the range is tiled without gaps or overlaps. The
// listing API rejects wider query ranges.
func MonthWindows(now time.Time, monthsBack int) []zoom.Window {
	if monthsBack < 0 {
		monthsBack = 0
	}

	start := now.AddDate(0, -monthsBack, 0)
	var windows []zoom.Window

	cur := start
	for cur.Before(now) {
		next := time.Date(cur.Year(), cur.Month(), 1, 0, 0, 0, 0, cur.Location()).AddDate(0, 1, 0)
		if next.After(now) {
			next = now
		}
		windows = append(windows, zoom.Window{Start: cur, End: next})
		cur = next
	}

	return windows
}
