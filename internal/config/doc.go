// Package config defines the configuration record for the recording
// downloader and its sourcing rules: built-in defaults, then an optional
// TOML file, then ZOOM_* environment variables, then command-line flags
// (applied by the cmd package). The downloader core only ever sees the
// final Config value.
package config
