
// Package cache persists per-source catalogs to disk with a capture
// timestamp and serves them back while within a time-to-live.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"minirates/internal/catalog"
)

// envelope is the on-disk shape: the catalog fields plus the capture
// epoch used solely for TTL evaluation. It is always overwritten
// wholesale, never patched.
type envelope struct {
	catalog.Catalog
	CachedAt int64 `json:"cachedAt"`
}

// Store reads and writes per-source cache files under one directory.
// Each file is owned by exactly one source.
type Store struct {
	dir string
	log *logrus.Logger
	now func() time.Time
}

func NewStore(dir string, log *logrus.Logger) *Store {
	return &Store{dir: dir, log: log, now: time.Now}
}

// Load returns the cached catalog when the entry is no older than ttl
// (inclusive boundary). A missing file, malformed JSON or an absent
// capture epoch is a miss, never an error.
func (s *Store) Load(file string, ttl time.Duration) (catalog.Catalog, bool) {
	env, ok := s.read(file)
	if !ok {
		return catalog.Catalog{}, false
	}
	age := s.now().Unix() - env.CachedAt
	if age > int64(ttl/time.Second) {
		return catalog.Catalog{}, false
	}
	return env.Catalog, true
}

// LoadStale returns whatever the cache holds regardless of age. Used as
// the fallback when a fresh scrape comes back empty.
func (s *Store) LoadStale(file string) (catalog.Catalog, bool) {
	env, ok := s.read(file)
	if !ok {
		return catalog.Catalog{}, false
	}
	return env.Catalog, true
}

func (s *Store) read(file string) (envelope, bool) {
	b, err := os.ReadFile(s.path(file))
	if err != nil {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		s.log.Debugf("cache %s: %v", file, err)
		return envelope{}, false
	}
	if env.CachedAt <= 0 {
		return envelope{}, false
	}
	return env, true
}

// Save writes the catalog with a fresh capture epoch. It is best-effort:
// a cache write failure must not block showing freshly scraped data, so
// problems are logged and swallowed. The write goes through a temp file
// and rename so a crashed process never leaves a truncated cache.
func (s *Store) Save(file string, cat catalog.Catalog) {
	env := envelope{Catalog: cat, CachedAt: s.now().Unix()}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		s.log.Warnf("cache %s: encode: %v", file, err)
		return
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		s.log.Warnf("cache %s: %v", file, err)
		return
	}
	tmp := s.path(file + "." + uuid.New().String() + ".tmp")
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		s.log.Warnf("cache %s: %v", file, err)
		return
	}
	if err := os.Rename(tmp, s.path(file)); err != nil {
		_ = os.Remove(tmp)
		s.log.Warnf("cache %s: %v", file, err)
	}
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}
