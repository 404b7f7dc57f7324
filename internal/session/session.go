// Package session remembers per-user preferences between chat messages.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/chase3718/lou-chords/internal/tuning"
)

// Preferences are the settings a user can change from chat.
type Preferences struct {
	Tuning  string `yaml:"tuning,omitempty"`
	Reverse bool   `yaml:"reverse,omitempty"`
}

// TuningName is the user's tuning, falling back to standard guitar.
func (p Preferences) TuningName() string {
	if p.Tuning == "" {
		return tuning.DefaultName
	}
	return p.Tuning
}

// Store keeps Preferences keyed by user.
type Store interface {
	Get(user string) (Preferences, error)
	Put(user string, p Preferences) error
}

// MemoryStore is a Store that forgets everything on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[string]Preferences
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]Preferences)}
}

func (s *MemoryStore) Get(user string) (Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs[user], nil
}

func (s *MemoryStore) Put(user string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[user] = p
	return nil
}

// FileStore is a Store persisted as one YAML document. Every Put rewrites
// the file.
type FileStore struct {
	mu    sync.Mutex
	path  string
	prefs map[string]Preferences
}

// OpenFileStore loads path, or starts empty when it does not exist yet.
func OpenFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, prefs: make(map[string]Preferences)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session store: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.prefs); err != nil {
		return nil, fmt.Errorf("failed to parse session store: %w", err)
	}
	if s.prefs == nil {
		s.prefs = make(map[string]Preferences)
	}
	return s, nil
}

func (s *FileStore) Get(user string) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs[user], nil
}

func (s *FileStore) Put(user string, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.prefs[user]
	s.prefs[user] = p
	if err := s.flush(); err != nil {
		if had {
			s.prefs[user] = prev
		} else {
			delete(s.prefs, user)
		}
		return err
	}
	return nil
}

// flush writes to a temp file and renames it over the store.
func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal session store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write session store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session store: %w", err)
	}
	return nil
}
