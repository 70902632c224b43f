package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the record the downloader core consumes. How it is sourced
// (file, environment, flags) is the CLI's concern, not the core's.
type Config struct {
	AccountID    string `toml:"account_id"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	OutputDir    string `toml:"output_dir"`
	// UserID is the subject whose recordings are listed; "me" means the
	// account owner under Server-to-Server OAuth.
	UserID string `toml:"user_id"`
	// MonthsBack is the lookback period for the catalog scan.
	MonthsBack int `toml:"months_back"`
	// PageSize is the listing page size.
	PageSize int `toml:"page_size"`
	// RequestPauseMS is the pacing delay between page fetches and between
	// file downloads, in milliseconds.
	RequestPauseMS int `toml:"request_pause_ms"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		UserID:         "me",
		MonthsBack:     24,
		PageSize:       300,
		RequestPauseMS: 200,
	}
}

// Load reads a TOML config file over the defaults. An empty path or a
// missing file yields the defaults; a present but unparseable file is an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overlays ZOOM_* environment variables onto the config. Set
// variables win over file values; unset ones leave the config untouched.
func (c *Config) ApplyEnv() error {
	overlay := func(dst *string, name string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	overlay(&c.AccountID, "ZOOM_ACCOUNT_ID")
	overlay(&c.ClientID, "ZOOM_CLIENT_ID")
	overlay(&c.ClientSecret, "ZOOM_CLIENT_SECRET")
	overlay(&c.OutputDir, "ZOOM_OUT_DIR")
	overlay(&c.UserID, "ZOOM_USER_ID")

	if v := os.Getenv("ZOOM_MONTHS_BACK"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid ZOOM_MONTHS_BACK %q: %w", v, err)
		}
		c.MonthsBack = n
	}
	return nil
}

// Validate checks that the required fields are present and sane.
func (c Config) Validate() error {
	if c.AccountID == "" {
		return errors.New("account id is required")
	}
	if c.ClientID == "" {
		return errors.New("client id is required")
	}
	if c.ClientSecret == "" {
		return errors.New("client secret is required")
	}
	if c.OutputDir == "" {
		return errors.New("output directory is required")
	}
	if c.MonthsBack < 0 {
		return fmt.Errorf("months back must not be negative, got %d", c.MonthsBack)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	return nil
}

// RequestPause returns the pacing delay as a duration.
func (c Config) RequestPause() time.Duration {
	return time.Duration(c.RequestPauseMS) * time.Millisecond
}
