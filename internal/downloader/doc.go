// Package downloader implements the sequential control loop that pulls
// cloud recordings to local disk.
//
// A run partitions the lookback period into calendar-month windows, lists
// recordings per window oldest first, skips files already present in the
// manifest, and downloads the rest one at a time, recording each success in
// the manifest before touching the next file. There is no concurrency: one
// window, one recording, one file at a time, with fixed pacing delays to
// stay under the provider's rate limits.
//
// Per file the lifecycle is pending -> downloading -> saved or failed.
// Failed files stay pending and are retried naturally on the next run.
// Only two error classes abort a run: an authentication failure that
// survived a token refresh, and a manifest write failure after a completed
// download.
package downloader
