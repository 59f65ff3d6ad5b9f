package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
)

// Session holds the bearer token the client presents. Invalidate is called
// whenever the task API answers 401.
type Session interface {
	Token() string
	SetToken(token string) error
	Invalidate() error
}

// MemorySession keeps the token in process memory.
type MemorySession struct {
	mu    sync.RWMutex
	token string
}

func NewMemorySession(token string) *MemorySession {
	return &MemorySession{token: token}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySession) Invalidate() error {
	return s.SetToken("")
}

// FileSession persists the token as an oauth2.Token JSON document, for
// clients that outlive a single process.
type FileSession struct {
	path string
}

// NewFileSession stores the token at path.
func NewFileSession(path string) *FileSession {
	return &FileSession{path: path}
}

// DefaultSessionPath is token.json under the user's config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("unable to locate config directory: %w", err)
	}
	return filepath.Join(dir, "taskzen", "token.json"), nil
}

// Token returns the stored access token, or "" when none is stored.
func (s *FileSession) Token() string {
	tok, err := s.load()
	if err != nil {
		return ""
	}
	return tok.AccessToken
}

func (s *FileSession) load() (*oauth2.Token, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("failed to decode token from %s: %w", s.path, err)
	}
	return tok, nil
}

func (s *FileSession) SetToken(token string) error {
	return s.Save(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

// Save writes tok with owner-only permissions.
func (s *FileSession) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to cache token to %s: %w", s.path, err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(tok)
}

// Invalidate removes the token file.
func (s *FileSession) Invalidate() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}
