package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldlens/concierge/domain"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		metadata TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_turns_created_at ON turns(created_at)`,
}

// SQLiteSession stores one conversation in its own sqlite file, so
// sessions can be exported, cleaned up, and deleted independently.
type SQLiteSession struct {
	key  domain.SessionKey
	path string
	db   *sql.DB
}

var _ Session = (*SQLiteSession)(nil)

// FilenameFor returns the artifact filename for a session key.
func FilenameFor(key domain.SessionKey) string {
	return "session_" + key.Encode() + ".db"
}

// OpenSQLiteSession opens (creating if needed) the session file under dir
// and applies migrations.
func OpenSQLiteSession(dir string, key domain.SessionKey) (*SQLiteSession, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session: create dir: %w", err)
	}

	path := filepath.Join(dir, FilenameFor(key))
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("session: open %s: %w", path, err)
	}

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("session: migrate: %w", err)
		}
	}
	return &SQLiteSession{key: key, path: path, db: db}, nil
}

func (s *SQLiteSession) Key() domain.SessionKey { return s.key }

// Path returns the backing file path.
func (s *SQLiteSession) Path() string { return s.path }

func (s *SQLiteSession) Append(turn domain.SessionTurn) error {
	var meta any
	if turn.Metadata != nil {
		raw, err := json.Marshal(turn.Metadata)
		if err != nil {
			return fmt.Errorf("session: marshal metadata: %w", err)
		}
		meta = string(raw)
	}

	created := turn.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO turns (role, content, created_at, metadata) VALUES (?, ?, ?, ?)`,
		turn.Role, turn.Content, created, meta,
	)
	if err != nil {
		return fmt.Errorf("session: append turn: %w", err)
	}
	return nil
}

func (s *SQLiteSession) Turns() ([]domain.SessionTurn, error) {
	rows, err := s.db.Query(
		`SELECT role, content, created_at, metadata FROM turns ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("session: query turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.SessionTurn
	for rows.Next() {
		var turn domain.SessionTurn
		var meta sql.NullString
		if err := rows.Scan(&turn.Role, &turn.Content, &turn.CreatedAt, &meta); err != nil {
			return nil, fmt.Errorf("session: scan turn: %w", err)
		}
		if meta.Valid && meta.String != "" {
			var m domain.TurnMetadata
			if err := json.Unmarshal([]byte(meta.String), &m); err == nil {
				turn.Metadata = &m
			}
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: iterate turns: %w", err)
	}
	return turns, nil
}

func (s *SQLiteSession) ClearTurns() error {
	if _, err := s.db.Exec(`DELETE FROM turns`); err != nil {
		return fmt.Errorf("session: clear turns: %w", err)
	}
	return nil
}

func (s *SQLiteSession) Close() error { return s.db.Close() }
