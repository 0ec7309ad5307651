package cart

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoCart reports that nothing has been saved under a key yet.
var ErrNoCart = errors.New("no cart stored")

// Storage is the key-value persistence port behind the cart store.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// FileStorage keeps one JSON file per cart under a directory.
type FileStorage struct {
	Dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{Dir: dir}, nil
}

func (f *FileStorage) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCart
	}
	return data, err
}

func (f *FileStorage) Save(key string, data []byte) error {
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FileStorage) path(key string) string {
	// keys are server-issued UUIDs; Base guards against path segments anyway
	return filepath.Join(f.Dir, filepath.Base(key)+".json")
}

// MemoryStorage is the test double for Storage.
type MemoryStorage struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNoCart
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

func (m *MemoryStorage) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.blobs[key] = cp
	return nil
}
