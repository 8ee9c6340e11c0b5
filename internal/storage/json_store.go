package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// Store is the on-disk shape of a JSONStore file.
type Store struct {
	Version int               `json:"version"`
	Records map[string]string `json:"records"`
}

// JSONStore keeps every record in one JSON file, rewritten on each change.
type JSONStore struct {
	fs    afero.Fs
	path  string
	mu    sync.Mutex
	store *Store
}

// NewJSONStore creates a JSON store on the OS filesystem.
func NewJSONStore(configPath string) *JSONStore {
	return NewJSONStoreFs(afero.NewOsFs(), configPath)
}

// NewJSONStoreFs creates a JSON store on the given filesystem.
func NewJSONStoreFs(fs afero.Fs, configPath string) *JSONStore {
	return &JSONStore{
		fs:   fs,
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if exists, _ := afero.Exists(s.fs, s.path); exists {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version: 1,
		Records: make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'chime init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &Store{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Records == nil {
		store.Records = make(map[string]string)
	}
	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save must be called with s.mu held
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.store.Records[key]
	return value, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}

	prev, existed := s.store.Records[key]
	s.store.Records[key] = value
	if err := s.save(); err != nil {
		// keep memory in step with the file
		if existed {
			s.store.Records[key] = prev
		} else {
			delete(s.store.Records, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return ErrNotLoaded
	}

	prev, existed := s.store.Records[key]
	if !existed {
		return nil
	}
	delete(s.store.Records, key)
	if err := s.save(); err != nil {
		s.store.Records[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
