// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mdhender/pkr/model"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when a slug is not in the index.
var ErrNotFound = errors.New("note not found")

// SQLiteStore is a SQLite-backed index of the notes directory.
type SQLiteStore struct {
	db *sql.DB

	// Sync reads before it writes; two concurrent syncs in one process
	// would otherwise race for the write lock.
	syncMu sync.Mutex
}

var _ model.Store = (*SQLiteStore)(nil)

// StoreConfig holds configuration for creating a SQLiteStore.
type StoreConfig struct {
	// Path is the file path for file-based SQLite.
	// If empty, an in-memory database is used.
	Path string

	// InitSchema controls whether to run schema initialization.
	// For file-based mode, this should typically be false since the server
	// expects the database to already exist with schema applied.
	InitSchema bool
}

// NewSQLiteStore creates a new in-memory SQLite store with schema loaded.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(StoreConfig{InitSchema: true})
}

// NewSQLiteStoreWithConfig creates a SQLite store based on the provided configuration.
// For file-based mode (Path is set), the database file MUST already exist.
// Use InitDatabase to create and initialize a new database file.
func NewSQLiteStoreWithConfig(cfg StoreConfig) (*SQLiteStore, error) {
	var dsn string

	if cfg.Path == "" {
		// private in-memory database; it lives as long as its one connection
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		// SQLite would create a missing file, which we don't want
		if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
			return nil, fmt.Errorf("database file does not exist: %s (run init-db command to create it)", cfg.Path)
		}
		dsn = fileDSN(cfg.Path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.Path == "" {
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}

	if cfg.InitSchema || cfg.Path == "" {
		if _, err := db.Exec(schemaSQL); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec schema: %w", err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// fileDSN applies the pragmas per-connection so the pool always has them.
// Transactions start IMMEDIATE so a writer takes the lock up front and
// waits on busy_timeout instead of failing when it upgrades from a read.
func fileDSN(path string) string {
	return fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_txlock=immediate",
		path,
	)
}

// InitDatabase creates a new SQLite database file and initializes the schema.
// Returns an error if the file already exists.
func InitDatabase(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("database file already exists: %s", path)
	}

	db, err := sql.Open("sqlite", fileDSN(path))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("exec schema: %w", err)
	}

	return nil
}

// CompactDatabase compacts a SQLite database file by running VACUUM and checkpointing WAL.
func CompactDatabase(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("database file does not exist: %s", path)
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	// merge the WAL into the main database file
	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("checkpoint WAL: %w", err)
	}

	if _, err := db.Exec("VACUUM"); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Sync replaces the index with notes in a single transaction.
// Notes missing from the list are removed along with their tags.
func (s *SQLiteStore) Sync(ctx context.Context, notes []*model.Note) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sync: %w", err)
	}
	defer tx.Rollback()

	existing, err := slugs(ctx, tx)
	if err != nil {
		return err
	}

	const upsertNote = `
		INSERT INTO notes (slug, title, file_name, public, mod_time)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO UPDATE SET
			title = excluded.title,
			file_name = excluded.file_name,
			public = excluded.public,
			mod_time = excluded.mod_time
	`
	const deleteTags = `DELETE FROM note_tags WHERE slug = ?`
	const insertTag = `INSERT OR IGNORE INTO note_tags (slug, tag, ord) VALUES (?, ?, ?)`

	keep := make(map[string]bool, len(notes))
	for _, n := range notes {
		keep[n.Slug] = true
		_, err := tx.ExecContext(ctx, upsertNote,
			n.Slug,
			n.Title,
			n.FileName,
			boolToInt(n.Public),
			n.ModTime.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("upsert note %s: %w", n.Slug, err)
		}
		if _, err := tx.ExecContext(ctx, deleteTags, n.Slug); err != nil {
			return fmt.Errorf("delete tags %s: %w", n.Slug, err)
		}
		for i, tag := range n.Tags {
			if _, err := tx.ExecContext(ctx, insertTag, n.Slug, tag, i); err != nil {
				return fmt.Errorf("insert tag %s/%s: %w", n.Slug, tag, err)
			}
		}
	}

	for _, slug := range existing {
		if keep[slug] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM notes WHERE slug = ?`, slug); err != nil {
			return fmt.Errorf("delete note %s: %w", slug, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sync: %w", err)
	}
	return nil
}

func slugs(ctx context.Context, tx *sql.Tx) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT slug FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("query slugs: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		list = append(list, slug)
	}
	return list, rows.Err()
}

// selectNotes returns each note with its tags folded into one space-separated column.
const selectNotes = `
	SELECT n.slug, n.title, n.file_name, n.public, n.mod_time,
		COALESCE((SELECT group_concat(t.tag, ' ' ORDER BY t.ord) FROM note_tags t WHERE t.slug = n.slug), '')
	FROM notes n
`

// Notes returns the indexed notes that pass filter, ordered by title then slug.
// Bodies are not stored in the index.
func (s *SQLiteStore) Notes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, error) {
	const query = selectNotes + `
		WHERE (? = 1 OR n.public = 1)
		  AND (? = '' OR EXISTS (SELECT 1 FROM note_tags t WHERE t.slug = n.slug AND t.tag = ?))
		ORDER BY n.title, n.slug
	`
	rows, err := s.db.QueryContext(ctx, query, boolToInt(filter.IncludePrivate), filter.Tag, filter.Tag)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// NoteBySlug returns one indexed note or ErrNotFound.
func (s *SQLiteStore) NoteBySlug(ctx context.Context, slug string) (*model.Note, error) {
	const query = selectNotes + ` WHERE n.slug = ?`
	n, err := scanNote(s.db.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(row scanner) (*model.Note, error) {
	var n model.Note
	var public int64
	var modTime, tags string
	if err := row.Scan(&n.Slug, &n.Title, &n.FileName, &public, &modTime, &tags); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	n.Public = public != 0
	n.Tags = strings.Fields(tags)
	t, err := time.Parse(time.RFC3339Nano, modTime)
	if err != nil {
		return nil, fmt.Errorf("note %s: mod_time: %w", n.Slug, err)
	}
	n.ModTime = t
	return &n, nil
}

// Tags returns every tag with the number of notes carrying it, sorted by tag.
// Private notes count only when includePrivate is set.
func (s *SQLiteStore) Tags(ctx context.Context, includePrivate bool) ([]model.TagCount, error) {
	const query = `
		SELECT t.tag, COUNT(*)
		FROM note_tags t
		JOIN notes n ON n.slug = t.slug
		WHERE (? = 1 OR n.public = 1)
		GROUP BY t.tag
		ORDER BY t.tag
	`
	rows, err := s.db.QueryContext(ctx, query, boolToInt(includePrivate))
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []model.TagCount
	for rows.Next() {
		var tc model.TagCount
		if err := rows.Scan(&tc.Tag, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tc)
	}
	return tags, rows.Err()
}

// Stats returns basic statistics about the store.
func (s *SQLiteStore) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	const query = `
		SELECT
			(SELECT COUNT(*) FROM notes),
			(SELECT COUNT(*) FROM notes WHERE public = 1),
			(SELECT COUNT(DISTINCT tag) FROM note_tags)
	`
	if err := s.db.QueryRowContext(ctx, query).Scan(&stats.Notes, &stats.Public, &stats.Tags); err != nil {
		return stats, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
