// Package snapshot stores the raw text of each run next to what was parsed
// from it, so later parser changes can be replayed against real postings.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/jimezsa/jobclip/internal/models"
	"github.com/rs/zerolog"
)

const (
	filePrefix  = "linkedin_snapshot_"
	fileExt     = ".json"
	stampLayout = "20060102_150405"
	lockName    = ".snapshots.lock"
)

// Snapshot formats recognized by Load.
const (
	FormatV3 = "v3"
	FormatV2 = "v2"
)

// ErrInvalidSnapshot is returned for files that decode but carry no usable
// raw text.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Entry is one snapshot read from disk.
type Entry struct {
	Path     string
	Format   string
	Snapshot models.Snapshot
}

// Store writes snapshots into a single directory.
type Store struct {
	dir    string
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock sets the clock used for file names and date_parsed.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a store rooted at dir.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, logger: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes rec as a new snapshot file and returns its path. Concurrent
// writers are serialized by a lock file in the store directory.
func (s *Store) Save(rec models.JobRecord) (string, error) {
	if strings.TrimSpace(s.dir) == "" {
		return "", fmt.Errorf("snapshot dir is required")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	now := s.now()
	snap := models.ToSnapshot(rec)
	snap.DateParsed = now.Format(time.RFC3339)
	if err := snap.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", err
	}

	lock := flock.New(filepath.Join(s.dir, lockName))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock snapshot dir: %w", err)
	}
	defer lock.Unlock()

	name := filePrefix + now.Format(stampLayout) + "_" + uuid.NewString()[:8] + fileExt
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	s.logger.Debug().Str("path", path).Msg("snapshot saved")
	return path, nil
}

// List returns the snapshot files in the store, oldest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// legacyFile covers both the current layout and the older one that kept
// the text under "input" with a compact timestamp.
type legacyFile struct {
	models.Snapshot
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Input     string `json:"input"`
}

// Load reads one snapshot file in either known format.
func Load(path string) (Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Entry{}, err
	}
	var raw legacyFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return Entry{}, fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, filepath.Base(path), err)
	}

	entry := Entry{Path: path, Format: FormatV3, Snapshot: raw.Snapshot}
	if entry.Snapshot.RawText == "" && raw.Input != "" {
		entry.Format = FormatV2
		entry.Snapshot.RawText = raw.Input
		if ts, err := time.ParseInLocation(stampLayout, raw.Timestamp, time.Local); err == nil {
			entry.Snapshot.DateParsed = ts.Format(time.RFC3339)
		}
	}
	if err := entry.Snapshot.Validate(); err != nil {
		return entry, fmt.Errorf("%w: %s: %v", ErrInvalidSnapshot, filepath.Base(path), err)
	}
	return entry, nil
}

// ParsedAt returns the time the snapshot was taken, when it recorded one.
func ParsedAt(snap models.Snapshot) (time.Time, bool) {
	if snap.DateParsed == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, snap.DateParsed)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
