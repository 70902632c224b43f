package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/georgeb3/zoom-recording-downloader/internal/logging"
)

// Key identifies one physical recording file across runs. Two files with
// the same meeting id, file id, and filename always map to the same key.
type Key string

// NewKey builds the deterministic manifest key for a file instance.
func NewKey(meetingID, fileID, filename string) Key {
	return Key(meetingID + ":" + fileID + ":" + filename)
}

// Entry records a completed download. Entries are created only after the
// bytes are fully on disk and are never deleted by the downloader; removing
// one is a manual operation.
type Entry struct {
	SavePath     string    `json:"saved_to"`
	DownloadedAt time.Time `json:"downloaded_at"`
	WindowStart  string    `json:"from"`
	WindowEnd    string    `json:"to"`
}

// WriteError indicates the manifest could not be persisted after a
// successful download. It is fatal: continuing without a reliable ledger
// risks re-downloading completed files on the next run.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("persist manifest %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// manifestFile is the on-disk document: a single JSON object holding the
// full key-to-entry mapping.
type manifestFile struct {
	Downloaded map[Key]Entry `json:"downloaded"`
}

// Store is the durable ledger of completed downloads. The whole manifest is
// loaded into memory at startup and rewritten atomically after every
// successful download, so a crash loses at most the file in flight.
type Store struct {
	path    string
	logger  *slog.Logger
	entries map[Key]Entry
}

// Load reads the manifest at path. A missing file yields an empty store; an
// unreadable or unparseable file is an error, since silently starting empty
// would re-download everything already on disk.
func Load(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		path:    path,
		logger:  logger,
		entries: make(map[Key]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var doc manifestFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if doc.Downloaded != nil {
		s.entries = doc.Downloaded
	}

	logger.Debug("loaded manifest",
		logging.Path(path),
		slog.Int("entry_count", len(s.entries)))

	return s, nil
}

// Contains reports whether key has already been downloaded.
func (s *Store) Contains(key Key) bool {
	_, ok := s.entries[key]
	return ok
}

// Count returns the number of recorded downloads.
func (s *Store) Count() int {
	return len(s.entries)
}

// RecordSuccess adds or overwrites the entry for key and persists the full
// manifest before returning. Persistence failure is a *WriteError and the
// in-memory entry is kept as-is; the file on disk has already been
// downloaded, so the entry must not revert to pending.
func (s *Store) RecordSuccess(key Key, entry Entry) error {
	s.entries[key] = entry

	if err := s.save(); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	s.logger.Debug("recorded download",
		slog.String("key", string(key)),
		logging.Path(entry.SavePath))

	return nil
}

// save writes the manifest to disk atomically via a temp file.
func (s *Store) save() error {
	data, err := json.MarshalIndent(manifestFile{Downloaded: s.entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create manifest directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
