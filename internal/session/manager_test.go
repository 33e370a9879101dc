package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fieldlens/concierge/domain"
)

func persistentKey(user string) domain.SessionKey {
	return domain.SessionKey{UserID: user, Type: domain.SessionPersistent}
}

func TestManagerGetIsIdempotent(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.CloseAll()

	key := persistentKey("u1")
	first, err := m.Get(key)
	assert.NoError(t, err)
	second, err := m.Get(key)
	assert.NoError(t, err)
	assert.Same(t, first, second)
}

func TestManagerValidatesKey(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.CloseAll()

	_, err := m.Get(domain.SessionKey{Type: domain.SessionPersistent})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = m.Get(domain.SessionKey{UserID: "u1", Type: "bogus"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPersistentSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	key := persistentKey("u1")
	err := m.Append(key, domain.SessionTurn{
		Role:    domain.RoleUser,
		Content: "show me orders",
	})
	assert.NoError(t, err)
	err = m.Append(key, domain.SessionTurn{
		Role:    domain.RoleAssistant,
		Content: "There are 5 orders.",
		Metadata: &domain.TurnMetadata{
			ToolsUsed: []string{"orders.lookup"},
			Model:     "mock",
		},
	})
	assert.NoError(t, err)

	// Reopen from disk to prove durability.
	m.CloseAll()
	m = NewManager(dir)
	defer m.CloseAll()

	turns, err := m.Export(key)
	assert.NoError(t, err)
	assert.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "show me orders", turns[0].Content)
	assert.NotNil(t, turns[1].Metadata)
	assert.Equal(t, []string{"orders.lookup"}, turns[1].Metadata.ToolsUsed)
}

func TestTemporarySessionNotOnDisk(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	defer m.CloseAll()

	key := domain.SessionKey{UserID: "u1", Type: domain.SessionTemporary}
	assert.NoError(t, m.Append(key, domain.SessionTurn{Role: domain.RoleUser, Content: "hi"}))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearReportsWhetherHistoryExisted(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.CloseAll()

	key := persistentKey("u1")

	cleared, err := m.Clear(key)
	assert.NoError(t, err)
	assert.False(t, cleared, "nothing to clear yet")

	assert.NoError(t, m.Append(key, domain.SessionTurn{Role: domain.RoleUser, Content: "hi"}))

	cleared, err = m.Clear(key)
	assert.NoError(t, err)
	assert.True(t, cleared)

	// Session continues after clear.
	turns, err := m.Export(key)
	assert.NoError(t, err)
	assert.Empty(t, turns)

	cleared, err = m.Clear(key)
	assert.NoError(t, err)
	assert.False(t, cleared)
}

func TestClearFindsSessionFileFromEarlierProcess(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	key := persistentKey("u1")
	assert.NoError(t, m.Append(key, domain.SessionTurn{Role: domain.RoleUser, Content: "hi"}))
	m.CloseAll()

	fresh := NewManager(dir)
	defer fresh.CloseAll()

	cleared, err := fresh.Clear(key)
	assert.NoError(t, err)
	assert.True(t, cleared)
}

func TestClearUserClearsAllSessions(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	keyA := domain.SessionKey{UserID: "u1", Type: domain.SessionPersistent, ConversationID: "a"}
	keyB := domain.SessionKey{UserID: "u1", Type: domain.SessionPersistent, ConversationID: "b"}
	other := persistentKey("u2")
	assert.NoError(t, m.Append(keyA, domain.SessionTurn{Role: domain.RoleUser, Content: "q1"}))
	assert.NoError(t, m.Append(keyB, domain.SessionTurn{Role: domain.RoleUser, Content: "q2"}))
	assert.NoError(t, m.Append(other, domain.SessionTurn{Role: domain.RoleUser, Content: "q3"}))
	m.CloseAll()

	// One of u1's sessions live again, the other only on disk.
	fresh := NewManager(dir)
	defer fresh.CloseAll()
	assert.NoError(t, fresh.Append(keyA, domain.SessionTurn{Role: domain.RoleUser, Content: "q4"}))

	cleared, err := fresh.ClearUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, 2, cleared)

	turns, err := fresh.Export(keyA)
	assert.NoError(t, err)
	assert.Empty(t, turns)
	turns, err = fresh.Export(keyB)
	assert.NoError(t, err)
	assert.Empty(t, turns)

	turns, err = fresh.Export(other)
	assert.NoError(t, err)
	assert.Len(t, turns, 1)
}

func TestClearUserRequiresUserID(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.CloseAll()

	_, err := m.ClearUser("")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummarize(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.CloseAll()

	key := persistentKey("u1")
	assert.NoError(t, m.Append(key, domain.SessionTurn{Role: domain.RoleUser, Content: "q1"}))
	assert.NoError(t, m.Append(key, domain.SessionTurn{Role: domain.RoleAssistant, Content: "a1"}))
	assert.NoError(t, m.Append(key, domain.SessionTurn{Role: domain.RoleUser, Content: "q2"}))

	summary, err := m.Summarize(key)
	assert.NoError(t, err)
	assert.Equal(t, 3, summary.TotalTurns)
	assert.Equal(t, 2, summary.ByRole[domain.RoleUser])
	assert.Equal(t, 1, summary.ByRole[domain.RoleAssistant])
	assert.True(t, summary.HasHistory)
	assert.Equal(t, domain.SessionPersistent, summary.Type)
}

func TestListActiveSorted(t *testing.T) {
	m := NewManager(t.TempDir())
	defer m.CloseAll()

	_, err := m.Get(persistentKey("zed"))
	assert.NoError(t, err)
	_, err = m.Get(persistentKey("amy"))
	assert.NoError(t, err)

	active := m.ListActive()
	assert.Len(t, active, 2)
	assert.True(t, active[0] < active[1])
}

func TestCleanupRemovesStaleFilesOnly(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)
	defer m.CloseAll()

	// Live session file must survive regardless of age.
	liveKey := persistentKey("live")
	assert.NoError(t, m.Append(liveKey, domain.SessionTurn{Role: domain.RoleUser, Content: "hi"}))
	livePath := filepath.Join(dir, FilenameFor(liveKey))

	stalePath := filepath.Join(dir, FilenameFor(persistentKey("stale")))
	assert.NoError(t, os.WriteFile(stalePath, []byte("x"), 0o644))
	freshPath := filepath.Join(dir, FilenameFor(persistentKey("fresh")))
	assert.NoError(t, os.WriteFile(freshPath, []byte("x"), 0o644))

	old := time.Now().Add(-48 * time.Hour)
	assert.NoError(t, os.Chtimes(stalePath, old, old))
	assert.NoError(t, os.Chtimes(livePath, old, old))

	removed, err := m.Cleanup(24 * time.Hour)
	assert.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, stalePath)
	assert.FileExists(t, freshPath)
	assert.FileExists(t, livePath)
}
