package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrNoSession is returned by Store.Load when nothing has been saved
var ErrNoSession = errors.New("no saved session")

// Record is what a Store persists between runs
type Record struct {
	Token    string    `json:"token"`
	Username string    `json:"username,omitempty"`
	Server   string    `json:"server,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// Store persists the session token. It is the only owner of the token on disk.
type Store interface {
	Load() (*Record, error)
	Save(rec *Record) error
	Clear() error
}

// FileStore keeps the session in a single JSON file readable only by the owner
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns ~/.wmsctl/session.json
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".wmsctl", "session.json")
	}
	return filepath.Join(home, ".wmsctl", "session.json")
}

// Path returns the file the store writes to
func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Load() (*Record, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("failed to read session file '%s': %w", fs.path, err)
	}

	rec := &Record{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, fmt.Errorf("invalid session file format: %w", err)
	}
	if rec.Token == "" {
		return nil, ErrNoSession
	}
	return rec, nil
}

func (fs *FileStore) Save(rec *Record) error {
	if rec == nil || rec.Token == "" {
		return errors.New("session token cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(fs.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(fs.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is a no-op.
func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// MemoryStore keeps the session in memory, for tests and one-shot runs
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record
}

// NewMemoryStore creates a MemoryStore, optionally seeded with a token
func NewMemoryStore(token string) *MemoryStore {
	ms := &MemoryStore{}
	if token != "" {
		ms.rec = &Record{Token: token, SavedAt: time.Now()}
	}
	return ms
}

func (ms *MemoryStore) Load() (*Record, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.rec == nil {
		return nil, ErrNoSession
	}
	cp := *ms.rec
	return &cp, nil
}

func (ms *MemoryStore) Save(rec *Record) error {
	if rec == nil || rec.Token == "" {
		return errors.New("session token cannot be empty")
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	cp := *rec
	ms.rec = &cp
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.rec = nil
	return nil
}
