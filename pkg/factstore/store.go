package factstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config holds configuration for the file-backed fact store.
type Config struct {
	// Path is the location of the fact base document.
	Path string

	// Logger receives store activity. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Store reads and rewrites the fact base document at a fixed path.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a store for the document at config.Path.
func NewStore(config Config) (*Store, error) {
	if config.Path == "" {
		return nil, errors.New("fact base path is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{
		path:   config.Path,
		logger: logger,
	}, nil
}

// Path returns the document location this store operates on.
func (s *Store) Path() string {
	return s.path
}

// Load reads the fact base with strict error reporting: ErrNoStore when the
// file does not exist, a *CorruptError when it cannot be decoded as a JSON
// object, and a wrapped IO error otherwise. The file is never modified.
func (s *Store) Load() (*FactBase, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoStore
		}

		return nil, fmt.Errorf("reading fact base %s: %w", s.path, err)
	}

	return ParseFactBase(s.path, data)
}

// Upsert stores or overwrites a single fact. The whole document is reloaded,
// merged, and atomically rewritten so concurrent readers always observe a
// complete snapshot. A missing or damaged document is replaced by a fresh one
// holding just this fact.
func (s *Store) Upsert(key, value string) error {
	fb := s.loadForWrite()
	fb.Set(key, value)

	if err := s.writeDocument(fb); err != nil {
		return err
	}

	s.logger.Info("fact stored",
		zap.String("key", key),
		zap.Int("total", fb.Len()),
		zap.String("path", s.path),
	)

	return nil
}

// loadForWrite reads the document leniently. Missing, unreadable, and corrupt
// files all become an empty fact base so the write can proceed; reads report
// those conditions, writes heal them.
func (s *Store) loadForWrite() *FactBase {
	fb, err := s.Load()
	if err == nil {
		return fb
	}

	if errors.Is(err, ErrNoStore) {
		s.logger.Debug("fact base missing, starting fresh", zap.String("path", s.path))
	} else {
		s.logger.Warn("fact base unreadable, starting fresh",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}

	return NewFactBase()
}

// writeDocument serializes the fact base and replaces the file on disk.
// The document is written to a temp file in the same directory and renamed
// into place, so a crash mid-write leaves the previous document intact.
func (s *Store) writeDocument(fb *FactBase) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating fact base directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(fb, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding fact base: %w", err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing fact base temp file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing fact base %s: %w", s.path, err)
	}

	return nil
}
