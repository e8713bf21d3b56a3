package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Clock returns the current time. Injectable so TTL expiry is testable.
type Clock func() time.Time

// entry is the JSON document persisted per key.
type entry struct {
	Key       string `json:"key"`
	WrittenAt int64  `json:"written_at"` // UnixNano
	Value     string `json:"value"`
}

// Stats is a point-in-time summary of the on-disk cache.
type Stats struct {
	Entries int
	Bytes   int64
}

// Store is a file-per-key TTL cache. Multiple sessions may share the same
// directory concurrently: writes are atomic (temp file then rename) and
// last-writer-wins, with no locking. Keys are always prefixed by the owning
// widget id, keeping the flat namespace collision-free.
type Store struct {
	dir string
	now Clock
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", dir, err)
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// WithClock returns a copy of the store using the supplied clock.
func (s *Store) WithClock(clock Clock) *Store {
	return &Store{dir: s.dir, now: clock}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// Set writes value under key, stamping it with the current time.
func (s *Store) Set(key, value string) error {
	e := entry{Key: key, WrittenAt: s.now().UnixNano(), Value: value}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cache: marshal %q: %w", key, err)
	}
	if err := atomicWrite(s.entryPath(key), data, s.dir); err != nil {
		return fmt.Errorf("cache: write %q: %w", key, err)
	}
	return nil
}

// Get returns the value for key if it was written less than ttl ago.
// Missing, corrupt, or expired entries are misses; corrupt files are
// removed best-effort.
func (s *Store) Get(key string, ttl time.Duration) (string, bool) {
	if ttl <= 0 {
		return "", false
	}

	path := s.entryPath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = os.Remove(path)
		return "", false
	}

	age := s.now().Sub(time.Unix(0, e.WrittenAt))
	if age >= ttl {
		return "", false
	}
	return e.Value, true
}

// Delete removes the entry for key, if present.
func (s *Store) Delete(key string) error {
	err := os.Remove(s.entryPath(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every cache entry in the directory.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(name, ".json") || strings.HasPrefix(name, ".tmp-") {
			_ = os.Remove(filepath.Join(s.dir, name))
		}
	}
	return nil
}

// Stats walks the cache directory and reports entry count and total bytes.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		stats.Entries++
		stats.Bytes += info.Size()
	}
	return stats, nil
}

func (s *Store) entryPath(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".json")
}

// atomicWrite writes data to path via a temporary file and rename, so a
// concurrent reader never observes a partial entry.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	success = true
	return nil
}
