// Package store persists stories and their chunks in a local SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dshills/taleforge/internal/story"
)

// ErrNotFound indicates the requested story does not exist.
var ErrNotFound = errors.New("store: story not found")

const schema = `
CREATE TABLE IF NOT EXISTS stories (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	uuid         TEXT NOT NULL UNIQUE,
	title        TEXT NOT NULL DEFAULT '',
	instructions TEXT NOT NULL DEFAULT '',
	details      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS chunks (
	story_id INTEGER NOT NULL REFERENCES stories(id) ON DELETE CASCADE,
	seq      INTEGER NOT NULL,
	body     TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (story_id, seq)
);
`

// Store is a handle to the story database. Safe for use from a single
// goroutine, which is all the application needs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateStory inserts a new story row and fills in its ID and UUID.
func (s *Store) CreateStory(ctx context.Context, st *story.Story) error {
	if st.UUID == "" {
		st.UUID = uuid.NewString()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO stories (uuid, title, instructions, details) VALUES (?, ?, ?, ?)`,
		st.UUID, st.Title, st.Instructions, st.Details)
	if err != nil {
		return fmt.Errorf("creating story: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("creating story: %w", err)
	}
	st.ID = id
	return s.saveChunks(ctx, st)
}

// GetStory loads a story and its chunks, ordered by sequence. The
// returned story focuses its end.
func (s *Store) GetStory(ctx context.Context, id int64) (*story.Story, error) {
	st := &story.Story{ID: id, Focus: story.FocusLast}
	err := s.db.QueryRowContext(ctx,
		`SELECT uuid, title, instructions, details FROM stories WHERE id = ?`, id).
		Scan(&st.UUID, &st.Title, &st.Instructions, &st.Details)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("story %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading story %d: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM chunks WHERE story_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("loading chunks for story %d: %w", id, err)
	}
	defer rows.Close()
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("loading chunks for story %d: %w", id, err)
		}
		st.Chunks = append(st.Chunks, body)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading chunks for story %d: %w", id, err)
	}
	return st, nil
}

// Summary is one row of the story picker: enough to list and choose.
type Summary struct {
	ID       int64
	UUID     string
	Title    string
	ChunkCnt int
}

// ListStories returns summaries of all stories, oldest first.
func (s *Store) ListStories(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT st.id, st.uuid, st.title, COUNT(c.seq)
		FROM stories st LEFT JOIN chunks c ON c.story_id = st.id
		GROUP BY st.id ORDER BY st.id`)
	if err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.UUID, &sum.Title, &sum.ChunkCnt); err != nil {
			return nil, fmt.Errorf("listing stories: %w", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing stories: %w", err)
	}
	return out, nil
}

// SaveStory writes the story's metadata and rewrites its chunk rows.
func (s *Store) SaveStory(ctx context.Context, st *story.Story) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE stories SET title = ?, instructions = ?, details = ? WHERE id = ?`,
		st.Title, st.Instructions, st.Details, st.ID)
	if err != nil {
		return fmt.Errorf("saving story %d: %w", st.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("story %d: %w", st.ID, ErrNotFound)
	}
	return s.saveChunks(ctx, st)
}

// saveChunks blindly replaces the chunk rows with the current sequence.
func (s *Store) saveChunks(ctx context.Context, st *story.Story) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving chunks for story %d: %w", st.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE story_id = ?`, st.ID); err != nil {
		return fmt.Errorf("saving chunks for story %d: %w", st.ID, err)
	}
	for seq, body := range st.Chunks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chunks (story_id, seq, body) VALUES (?, ?, ?)`,
			st.ID, seq, body); err != nil {
			return fmt.Errorf("saving chunks for story %d: %w", st.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("saving chunks for story %d: %w", st.ID, err)
	}
	return nil
}

// DeleteStory removes a story and, via the foreign key, its chunks.
func (s *Store) DeleteStory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM stories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting story %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("story %d: %w", id, ErrNotFound)
	}
	return nil
}
