package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-redis/redis/v8"
)

// FileStorage keeps the config in a JSON file, the desktop equivalent of browser local storage.
type FileStorage struct {
	Path string
}

// DefaultFilePath is <user config dir>/weld-registry/weld-registry.theme.json.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "weld-registry", StorageKey+".json"), nil
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{Path: path}
}

func (f *FileStorage) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *FileStorage) Save(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("create theme dir: %w", err)
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// RedisStorage shares one config between terminals through a Redis key.
type RedisStorage struct {
	c   *redis.Client
	key string
}

func NewRedisStorage(c *redis.Client, key string) *RedisStorage {
	if key == "" {
		key = StorageKey
	}
	return &RedisStorage{c: c, key: key}
}

func (r *RedisStorage) Load(ctx context.Context) ([]byte, error) {
	data, err := r.c.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (r *RedisStorage) Save(ctx context.Context, data []byte) error {
	return r.c.Set(ctx, r.key, data, 0).Err()
}

// MemoryStorage holds the blob in memory.
type MemoryStorage struct {
	mu    sync.Mutex
	data  []byte
	Saves int
}

func (m *MemoryStorage) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStorage) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.Saves++
	return nil
}

// Put seeds the stored blob.
func (m *MemoryStorage) Put(data string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = []byte(data)
}
