package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

const sessionFileName = "session.yaml"

// Session is the authentication capability object. It is created once at
// startup and passed explicitly to every component that issues API calls;
// there is no ambient global.
type Session struct {
	mu sync.RWMutex

	Token    string `yaml:"token"`
	UserID   int64  `yaml:"user_id"`
	Username string `yaml:"username"`
	IsAdmin  bool   `yaml:"is_admin"`

	path string
}

// New creates an empty, unauthenticated session persisted at the default path.
func New() *Session {
	return &Session{path: DefaultPath()}
}

// DefaultPath returns the session file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sessionFileName
	}
	return filepath.Join(home, ".config", "labops", sessionFileName)
}

// Load reads a persisted session. A missing file yields an empty session,
// not an error - the caller decides whether a token is required.
func Load(path string) (*Session, error) {
	if path == "" {
		path = DefaultPath()
	}
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	s.path = path
	return s, nil
}

// Save persists the session to disk.
func (s *Session) Save() error {
	s.mu.RLock()
	data, err := yaml.Marshal(s)
	path := s.path
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	// Token material: keep the file private
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// SetCredentials stores a token and user identity on login.
func (s *Session) SetCredentials(token string, userID int64, username string, isAdmin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = token
	s.UserID = userID
	s.Username = username
	s.IsAdmin = isAdmin
}

// Clear wipes credentials on logout.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Token = ""
	s.UserID = 0
	s.Username = ""
	s.IsAdmin = false
}

// HasToken reports whether an API token is present. Calls must not be
// attempted without one.
func (s *Session) HasToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token != ""
}

// BearerToken returns the raw token value.
func (s *Session) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token
}

// CurrentUserID returns the authenticated user's id (0 when logged out).
func (s *Session) CurrentUserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.UserID
}

// CurrentUsername returns the authenticated user's login name.
func (s *Session) CurrentUsername() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Username
}

// Admin reports whether the authenticated user has admin rights. Role-gated
// actions (swap approval, batch workflow actions) check this client-side;
// the backend enforces it authoritatively.
func (s *Session) Admin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.IsAdmin
}
