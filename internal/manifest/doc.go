// Package manifest implements the durable ledger of completed recording
// downloads.
//
// The manifest is a single JSON document mapping a deterministic key
// (meetingID:fileID:filename) to the local save record. It is read fully
// into memory at startup and rewritten after every successful download via
// a write-temp-then-rename, so the file on disk is always a complete,
// parseable document. On interruption the only possible loss is the
// download in flight, which stays absent from the manifest and is retried
// safely on the next run.
package manifest
