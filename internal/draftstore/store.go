// Package draftstore persists protocol drafts to SQLite. Writes go through
// on every save; loads pass the deserialized draft through reconciliation so
// documents written by older builds come back structurally complete.
package draftstore

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/protocol-studio/internal/protocol"
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	token          TEXT PRIMARY KEY,
	title          TEXT NOT NULL DEFAULT '',
	schema_version INTEGER NOT NULL DEFAULT 1,
	payload        TEXT NOT NULL,
	created_at     TEXT NOT NULL,
	updated_at     TEXT NOT NULL
);
`

// ErrNotFound reports a token with no stored draft.
var ErrNotFound = errors.New("draft not found")

type Store struct {
	db *sqlx.DB
}

// Summary is one row of the draft listing.
type Summary struct {
	Token     string    `json:"token"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// Create stores a new draft and returns its token.
func (s *Store) Create(d protocol.Draft) (string, error) {
	token := generateToken()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	payload, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal draft: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO drafts (token, title, schema_version, payload, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		token, d.Title, d.SchemaVersion, string(payload), now, now)
	if err != nil {
		return "", fmt.Errorf("insert draft: %w", err)
	}
	return token, nil
}

// Get loads and reconciles a draft.
func (s *Store) Get(token string) (protocol.Draft, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM drafts WHERE token = ?`, token).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return protocol.Draft{}, ErrNotFound
	}
	if err != nil {
		return protocol.Draft{}, fmt.Errorf("select draft: %w", err)
	}
	var d protocol.Draft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		return protocol.Draft{}, fmt.Errorf("unmarshal draft: %w", err)
	}
	return protocol.Reconcile(d), nil
}

// Put replaces the stored draft for an existing token.
func (s *Store) Put(token string, d protocol.Draft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.Exec(`UPDATE drafts SET title = ?, schema_version = ?, payload = ?, updated_at = ? WHERE token = ?`,
		d.Title, d.SchemaVersion, string(payload), now, token)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(token string) error {
	res, err := s.db.Exec(`DELETE FROM drafts WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns draft summaries, most recently updated first.
func (s *Store) List() ([]Summary, error) {
	rows, err := s.db.Query(`SELECT token, title, updated_at FROM drafts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()
	var out []Summary
	for rows.Next() {
		var sum Summary
		var updatedAt string
		if err := rows.Scan(&sum.Token, &sum.Title, &updatedAt); err != nil {
			return nil, err
		}
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		out = append(out, sum)
	}
	return out, rows.Err()
}
