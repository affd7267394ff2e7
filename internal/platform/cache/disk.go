package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
)

type diskEnvelope struct {
	Key      string    `json:"key"`
	StoredAt time.Time `json:"stored_at"`
	Body     []byte    `json:"body"`
}

// DiskStore persists entries as one JSON file per key under dir, so cached
// pages survive between runs. Expired files are removed when read.
type DiskStore struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

func NewDiskStore(dir string, ttl time.Duration) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &DiskStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

func (s *DiskStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	path := s.pathFor(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", path, err)
	}

	var env diskEnvelope
	if err := sonic.Unmarshal(raw, &env); err != nil || env.Key != key {
		// Unreadable or foreign entries are treated as misses and overwritten.
		_ = os.Remove(path)
		return nil, false, nil
	}
	if s.ttl > 0 && !env.StoredAt.Add(s.ttl).After(s.now()) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return env.Body, true, nil
}

func (s *DiskStore) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return nil
	}

	raw, err := sonic.Marshal(diskEnvelope{Key: key, StoredAt: s.now().UTC(), Body: value})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmpName, s.pathFor(key)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("commit cache file: %w", err)
	}
	return nil
}

func (s *DiskStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.pathFor(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *DiskStore) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".json")
}
