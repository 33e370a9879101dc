package session

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
)

// Manager hands out sessions by key and owns their lifecycle. Get is
// idempotent: concurrent callers with the same key share one instance.
type Manager struct {
	dir string

	mu   sync.Mutex
	live map[string]Session
}

func NewManager(dir string) *Manager {
	return &Manager{dir: dir, live: map[string]Session{}}
}

// StorageDir returns the directory holding persistent session files.
func (m *Manager) StorageDir() string { return m.dir }

// Get returns the session for key, creating it on first use. Persistent
// sessions open their sqlite file; temporary sessions live in memory.
func (m *Manager) Get(key domain.SessionKey) (Session, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.live[key.Encode()]; ok {
		return s, nil
	}

	var (
		s   Session
		err error
	)
	switch key.Type {
	case domain.SessionPersistent:
		s, err = OpenSQLiteSession(m.dir, key)
	default:
		s = NewMemorySession(key)
	}
	if err != nil {
		return nil, err
	}

	m.live[key.Encode()] = s
	log.Debug().Str("session", key.Encode()).Msg("session opened")
	return s, nil
}

// Append records one turn on the session for key.
func (m *Manager) Append(key domain.SessionKey, turn domain.SessionTurn) error {
	s, err := m.Get(key)
	if err != nil {
		return err
	}
	return s.Append(turn)
}

// Clear removes all turns for key and reports whether any history
// existed. The persistent artifact itself is kept so the session can
// continue afterwards.
func (m *Manager) Clear(key domain.SessionKey) (bool, error) {
	if err := key.Validate(); err != nil {
		return false, err
	}

	m.mu.Lock()
	s, live := m.live[key.Encode()]
	m.mu.Unlock()

	if !live {
		if key.Type != domain.SessionPersistent {
			return false, nil
		}
		path := filepath.Join(m.dir, FilenameFor(key))
		if _, err := os.Stat(path); err != nil {
			return false, nil
		}
		var err error
		s, err = m.Get(key)
		if err != nil {
			return false, err
		}
	}

	turns, err := s.Turns()
	if err != nil {
		return false, err
	}
	if err := s.ClearTurns(); err != nil {
		return false, err
	}
	return len(turns) > 0, nil
}

// ClearUser clears every session belonging to userID, live or on disk,
// and returns how many of them had history. Like Clear, the persistent
// artifacts themselves are kept.
func (m *Manager) ClearUser(userID string) (int, error) {
	if userID == "" {
		return 0, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	prefix := url.QueryEscape(userID) + "_"

	m.mu.Lock()
	var keys []domain.SessionKey
	for k, s := range m.live {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, s.Key())
		}
	}
	m.mu.Unlock()

	seen := map[string]bool{}
	cleared := 0
	for _, key := range keys {
		had, err := m.Clear(key)
		if err != nil {
			return cleared, err
		}
		seen[key.Encode()] = true
		if had {
			cleared++
		}
	}

	// Persistent session files left by earlier processes.
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return cleared, nil
		}
		return cleared, fmt.Errorf("session: read dir: %w", err)
	}
	filePrefix := "session_" + prefix
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".db") {
			continue
		}
		encoded := strings.TrimSuffix(strings.TrimPrefix(name, "session_"), ".db")
		if seen[encoded] {
			continue
		}
		rest := strings.SplitN(strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".db"), "_", 2)
		typ, err := url.QueryUnescape(rest[0])
		if err != nil || !domain.SessionType(typ).Valid() {
			continue
		}
		key := domain.SessionKey{UserID: userID, Type: domain.SessionType(typ)}
		if len(rest) == 2 {
			conv, err := url.QueryUnescape(rest[1])
			if err != nil {
				continue
			}
			key.ConversationID = conv
		}
		had, err := m.Clear(key)
		if err != nil {
			return cleared, err
		}
		if had {
			cleared++
		}
	}
	return cleared, nil
}

// Export returns the full turn history for key.
func (m *Manager) Export(key domain.SessionKey) ([]domain.SessionTurn, error) {
	s, err := m.Get(key)
	if err != nil {
		return nil, err
	}
	return s.Turns()
}

// Summarize reports turn counts per role for key.
func (m *Manager) Summarize(key domain.SessionKey) (domain.SessionSummary, error) {
	turns, err := m.Export(key)
	if err != nil {
		return domain.SessionSummary{}, err
	}

	byRole := map[string]int{}
	for _, t := range turns {
		byRole[t.Role]++
	}
	return domain.SessionSummary{
		Key:        key.Encode(),
		TotalTurns: len(turns),
		ByRole:     byRole,
		Type:       key.Type,
		HasHistory: len(turns) > 0,
	}, nil
}

// ListActive returns the encoded keys of sessions open in this process,
// sorted for stable output.
func (m *Manager) ListActive() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]string, 0, len(m.live))
	for k := range m.live {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cleanup deletes persistent session files whose last modification is
// older than olderThan, skipping sessions open in this process. Returns
// the number of files removed.
func (m *Manager) Cleanup(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("session: read dir: %w", err)
	}

	m.mu.Lock()
	liveFiles := map[string]bool{}
	for k, s := range m.live {
		if _, ok := s.(*SQLiteSession); ok {
			liveFiles["session_"+k+".db"] = true
		}
	}
	m.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "session_") || !strings.HasSuffix(name, ".db") {
			continue
		}
		if liveFiles[name] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
			log.Warn().Err(err).Str("file", name).Msg("session cleanup failed to remove file")
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Info().Int("removed", removed).Msg("session cleanup complete")
	}
	return removed, nil
}

// CloseAll closes every open session. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for k, s := range m.live {
		if err := s.Close(); err != nil {
			log.Warn().Err(err).Str("session", k).Msg("failed to close session")
		}
		delete(m.live, k)
	}
}
