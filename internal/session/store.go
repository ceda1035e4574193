// Package session persists questionnaire sessions in SQLite so an
// interview survives process restarts. The store round-trips
// conversation.State plus the raw message log; compaction rewrites the
// log in place.
package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/prdpilot/prdpilot/internal/conversation"
	"github.com/prdpilot/prdpilot/internal/questions"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrNotFound is returned when a session id has no stored row.
var ErrNotFound = errors.New("session not found")

// ─── Types ───────────────────────────────────────────────────────────────────

// Record is the stored header of one session.
type Record struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CurrentSection string  `json:"current_section,omitempty"`
	AnswerCount    int     `json:"answer_count"`
	MessageCount   int     `json:"message_count"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	ArchivedAt     *string `json:"archived_at,omitempty"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds session store configuration.
type Config struct {
	DBPath string
}

// DefaultConfig returns the default configuration for the session store.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath: filepath.Join(home, ".prdpilot", "sessions.db"),
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the SQLite-backed session repository.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the session database, applies the SQLite
// pragmas, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0700); err != nil {
		return nil, fmt.Errorf("session: create data dir: %w", err)
	}

	db, err := openDB("sqlite", cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("session: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("session: migration: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL DEFAULT '',
			current_section    TEXT NOT NULL DEFAULT '',
			completed_sections TEXT NOT NULL DEFAULT '[]',
			answer_count       INTEGER NOT NULL DEFAULT 0,
			message_count      INTEGER NOT NULL DEFAULT 0,
			created_at         TEXT NOT NULL DEFAULT (datetime('now')),
			updated_at         TEXT NOT NULL DEFAULT (datetime('now')),
			archived_at        TEXT
		);

		CREATE TABLE IF NOT EXISTS sections (
			session_id TEXT NOT NULL,
			section    TEXT NOT NULL,
			responses  TEXT NOT NULL DEFAULT '{}',
			attempts   TEXT NOT NULL DEFAULT '{}',
			updated_at TEXT NOT NULL DEFAULT (datetime('now')),
			PRIMARY KEY (session_id, section),
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		);

		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT    NOT NULL,
			role       TEXT    NOT NULL,
			section    TEXT    NOT NULL DEFAULT '',
			content    TEXT    NOT NULL,
			summary    INTEGER NOT NULL DEFAULT 0,
			created_at TEXT    NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_messages_session ON messages(session_id, id);
		CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Sessions ────────────────────────────────────────────────────────────────

// Create registers a new session. Creating an id that already exists is
// a no-op.
func (s *Store) Create(id, name string) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO sessions (id, name) VALUES (?, ?)`,
		id, name,
	)
	return err
}

// Exists reports whether a session id has a stored row.
func (s *Store) Exists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Get retrieves a session header by id.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, name, current_section, answer_count, message_count,
		        created_at, updated_at, archived_at
		 FROM sessions WHERE id = ?`, id,
	)
	var r Record
	err := row.Scan(&r.ID, &r.Name, &r.CurrentSection, &r.AnswerCount,
		&r.MessageCount, &r.CreatedAt, &r.UpdatedAt, &r.ArchivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// List returns session headers, most recently updated first. Archived
// sessions are excluded unless includeArchived is set.
func (s *Store) List(includeArchived bool, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, name, current_section, answer_count, message_count,
		       created_at, updated_at, archived_at
		FROM sessions
	`
	if !includeArchived {
		query += " WHERE archived_at IS NULL"
	}
	query += " ORDER BY updated_at DESC LIMIT ?"

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Name, &r.CurrentSection, &r.AnswerCount,
			&r.MessageCount, &r.CreatedAt, &r.UpdatedAt, &r.ArchivedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// Archive marks a session archived. Archived sessions keep their data
// but disappear from the default listing.
func (s *Store) Archive(id string) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET archived_at = datetime('now'), updated_at = datetime('now')
		 WHERE id = ? AND archived_at IS NULL`,
		id,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── State ───────────────────────────────────────────────────────────────────

// SaveState persists the full conversation state: the session header
// plus one row per section with responses and attempt counters.
func (s *Store) SaveState(id string, state *conversation.State) error {
	completed, err := json.Marshal(state.CompletedSections)
	if err != nil {
		return fmt.Errorf("session: encode completed sections: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("session: begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(
		`UPDATE sessions
		 SET current_section = ?, completed_sections = ?,
		     answer_count = ?, message_count = ?, updated_at = datetime('now')
		 WHERE id = ?`,
		string(state.CurrentSection), string(completed),
		state.Metadata.AnswerCount, state.Metadata.MessageCount, id,
	); err != nil {
		return fmt.Errorf("session: update header: %w", err)
	}

	for section, responses := range state.Responses {
		respJSON, err := json.Marshal(responses)
		if err != nil {
			return fmt.Errorf("session: encode responses for %s: %w", section, err)
		}
		attemptsJSON, err := json.Marshal(state.AttemptCounts[section])
		if err != nil {
			return fmt.Errorf("session: encode attempts for %s: %w", section, err)
		}

		if _, err := tx.Exec(
			`INSERT INTO sections (session_id, section, responses, attempts, updated_at)
			 VALUES (?, ?, ?, ?, datetime('now'))
			 ON CONFLICT (session_id, section) DO UPDATE SET
			     responses  = excluded.responses,
			     attempts   = excluded.attempts,
			     updated_at = excluded.updated_at`,
			id, string(section), string(respJSON), string(attemptsJSON),
		); err != nil {
			return fmt.Errorf("session: save section %s: %w", section, err)
		}
	}

	return tx.Commit()
}

// LoadState rebuilds a conversation.State from storage.
func (s *Store) LoadState(id string) (*conversation.State, error) {
	row := s.db.QueryRow(
		`SELECT current_section, completed_sections, answer_count,
		        message_count, created_at, updated_at
		 FROM sessions WHERE id = ?`, id,
	)

	var currentSection, completedJSON, createdAt, updatedAt string
	var answerCount, messageCount int
	err := row.Scan(&currentSection, &completedJSON, &answerCount,
		&messageCount, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	state := &conversation.State{
		CurrentSection: questions.SectionID(currentSection),
		Responses:      make(map[questions.SectionID]map[string]string),
		AttemptCounts:  make(map[questions.SectionID]map[string]int),
		Metadata: conversation.SessionMetadata{
			SessionID:    id,
			StartedAt:    createdAt,
			UpdatedAt:    updatedAt,
			AnswerCount:  answerCount,
			MessageCount: messageCount,
		},
	}
	if err := json.Unmarshal([]byte(completedJSON), &state.CompletedSections); err != nil {
		return nil, fmt.Errorf("session: decode completed sections: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT section, responses, attempts FROM sections WHERE session_id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var section, respJSON, attemptsJSON string
		if err := rows.Scan(&section, &respJSON, &attemptsJSON); err != nil {
			return nil, err
		}

		responses := make(map[string]string)
		if err := json.Unmarshal([]byte(respJSON), &responses); err != nil {
			return nil, fmt.Errorf("session: decode responses for %s: %w", section, err)
		}
		attempts := make(map[string]int)
		if err := json.Unmarshal([]byte(attemptsJSON), &attempts); err != nil {
			return nil, fmt.Errorf("session: decode attempts for %s: %w", section, err)
		}

		state.Responses[questions.SectionID(section)] = responses
		state.AttemptCounts[questions.SectionID(section)] = attempts
	}
	return state, rows.Err()
}

// ─── Messages ────────────────────────────────────────────────────────────────

// AppendMessage adds one message to a session's log.
func (s *Store) AppendMessage(id string, msg conversation.Message) error {
	_, err := s.db.Exec(
		`INSERT INTO messages (session_id, role, section, content, summary)
		 VALUES (?, ?, ?, ?, ?)`,
		id, msg.Role, string(msg.Section), msg.Content, boolToInt(msg.Summary),
	)
	return err
}

// Messages returns a session's log in chronological order.
func (s *Store) Messages(id string) ([]conversation.Message, error) {
	rows, err := s.db.Query(
		`SELECT role, section, content, summary, created_at
		 FROM messages WHERE session_id = ? ORDER BY id ASC`, id,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []conversation.Message
	for rows.Next() {
		var msg conversation.Message
		var section string
		var summary int
		if err := rows.Scan(&msg.Role, &section, &msg.Content, &summary, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Section = questions.SectionID(section)
		msg.Summary = summary != 0
		out = append(out, msg)
	}
	return out, rows.Err()
}

// ReplaceMessages atomically swaps a session's log for a compacted one.
func (s *Store) ReplaceMessages(id string, messages []conversation.Message) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("session: begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("session: clear messages: %w", err)
	}
	for _, msg := range messages {
		createdAt := msg.CreatedAt
		if createdAt == "" {
			if _, err := tx.Exec(
				`INSERT INTO messages (session_id, role, section, content, summary)
				 VALUES (?, ?, ?, ?, ?)`,
				id, msg.Role, string(msg.Section), msg.Content, boolToInt(msg.Summary),
			); err != nil {
				return fmt.Errorf("session: insert message: %w", err)
			}
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO messages (session_id, role, section, content, summary, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id, msg.Role, string(msg.Section), msg.Content, boolToInt(msg.Summary), createdAt,
		); err != nil {
			return fmt.Errorf("session: insert message: %w", err)
		}
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
