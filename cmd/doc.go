// Package cmd implements the command-line interface for the recording
// downloader.
//
// The CLI owns configuration sourcing (config file, ZOOM_* environment
// variables, flags) and process concerns (signal handling, exit codes); the
// downloading itself lives in the internal packages, which only see the
// assembled Config value.
package cmd
