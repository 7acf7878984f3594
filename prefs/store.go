package prefs

import (
	"sync"

	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/srtdeck/srtdeck/filesystem"
	"github.com/srtdeck/srtdeck/log"
)

// FileStore keeps preferences in a JSON file through gache.
type FileStore struct {
	mu    sync.Mutex
	cache *gache.Cache[map[string]string]
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		cache: gache.New[map[string]string](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

// All returns every stored preference.
func (s *FileStore) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() (map[string]string, error) {
	cached, expired, err := s.cache.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]string), nil
	}
	// callers may mutate the result; the cached map is shared
	return lo.Assign(cached), nil
}

// Get returns the value stored under key. Read failures are logged and reported as absent.
func (s *FileStore) Get(key string) (string, bool) {
	values, err := s.All()
	if err != nil {
		log.Warnf("prefs: read %s: %v", key, err)
		return "", false
	}

	value, ok := values[key]
	return value, ok
}

// Set stores value under key and writes the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}

	values[key] = value
	return s.cache.Set(values)
}

// Reset removes every stored preference.
func (s *FileStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Set(make(map[string]string))
}

// Memory is a Store that lives only as long as the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	return value, ok
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) All() (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return lo.Assign(m.values), nil
}

func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = make(map[string]string)
	return nil
}
