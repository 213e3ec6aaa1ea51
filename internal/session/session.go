// Package session persists the logged-in user between runs.
// The record lives in a single TOML file, by default
// ~/.config/bloglist/session.toml.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Session is the authenticated identity plus its bearer token.
type Session struct {
	Username string `toml:"username"`
	Name     string `toml:"name"`
	Token    string `toml:"token"`
}

// Valid reports whether the session can authenticate requests.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Token) != ""
}

// DisplayName prefers the full name and falls back to the username.
func (s Session) DisplayName() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	return strings.TrimSpace(s.Username)
}

// Storage is durable storage for at most one session.
type Storage interface {
	Load() (Session, bool, error)
	Save(Session) error
	Clear() error
}

// StorageKey is the fixed table name the record is stored under.
const StorageKey = "loggedBlogListAppUser"

// ErrCorrupt is returned by Load when the file exists but cannot be decoded.
var ErrCorrupt = errors.New("session file corrupt")

type record struct {
	User *Session `toml:"loggedBlogListAppUser"`
}

// FileStorage keeps the session in a TOML file.
type FileStorage struct {
	path string
}

// Ensure FileStorage implements Storage at compile time.
var _ Storage = (*FileStorage)(nil)

// NewFileStorage returns storage backed by path. The path must already be
// expanded and absolute.
func NewFileStorage(path string) (*FileStorage, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("session path is empty")
	}
	return &FileStorage{path: trimmed}, nil
}

// Path returns the backing file.
func (f *FileStorage) Path() string {
	return f.path
}

// Load reads the stored session. A missing file is not an error.
func (f *FileStorage) Load() (Session, bool, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("open session: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}

	var rec record
	if err := toml.Unmarshal(bytes, &rec); err != nil {
		return Session{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.User == nil || !rec.User.Valid() {
		return Session{}, false, nil
	}
	return *rec.User, true, nil
}

// Save writes the session, creating directories as needed. The file is
// readable by the owner only since it holds a bearer token.
func (f *FileStorage) Save(s Session) error {
	if !s.Valid() {
		return fmt.Errorf("session has no token")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := toml.Marshal(record{User: &s})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session succeeds.
func (f *FileStorage) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
