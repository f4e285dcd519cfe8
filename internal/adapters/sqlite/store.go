package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
	"shelfmerge/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

const (
	partitionMerged     = "merged"
	partitionUnresolved = "unresolved"
)

// Store implements ports.CollectionStore using SQLite
type Store struct {
	db     *sql.DB
	dbPath string
}

// Ensure Store implements CollectionStore
var (
	_ ports.CollectionStore = (*Store)(nil)
	_ ports.KeyFinder       = (*Store)(nil)
	_ ports.SaveTimer       = (*Store)(nil)
)

// Open creates or opens the database at dbPath
func Open(dbPath string) (*Store, error) {
	// Expand ~ in path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			partition TEXT NOT NULL,
			position INTEGER NOT NULL,
			state TEXT NOT NULL,
			title_a TEXT, title_b TEXT,
			author_a TEXT, author_b TEXT,
			isbn_a INTEGER, isbn_b INTEGER,
			rating_a TEXT, rating_b TEXT,
			format_a TEXT, format_b TEXT,
			date_read_a TEXT, date_read_b TEXT,
			tags_a TEXT, tags_b TEXT,
			status_a TEXT, status_b TEXT,
			read_count_a INTEGER, read_count_b INTEGER,
			owned_a TEXT, owned_b TEXT
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_books_partition ON books(partition, position);
		CREATE INDEX IF NOT EXISTS idx_books_isbn_a ON books(isbn_a);
		CREATE INDEX IF NOT EXISTS idx_books_isbn_b ON books(isbn_b);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

func (s *Store) Location() string { return s.dbPath }

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the stored collection in one transaction
func (s *Store) Save(ctx context.Context, c *domain.Collection) error {
	tx, err := s.beginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.Clear(); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}
	for partition, list := range map[string][]*domain.Book{
		partitionMerged:     c.Merged,
		partitionUnresolved: c.Unresolved,
	} {
		for i, b := range list {
			if err := tx.Insert(partition, i, b); err != nil {
				return fmt.Errorf("failed to insert %s: %w", b.ID, err)
			}
		}
	}
	if err := tx.MarkSaved(time.Now()); err != nil {
		return fmt.Errorf("failed to update metadata: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("path", s.dbPath).
		Int("merged", len(c.Merged)).
		Int("unresolved", len(c.Unresolved)).
		Msg("saved collection")
	return nil
}

// Load reads the stored collection in saved order
func (s *Store) Load(ctx context.Context) (*domain.Collection, error) {
	var savedAt string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved_at'`).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", s.dbPath, application.ErrNoCollection)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT partition, `+bookColumns+` FROM books ORDER BY partition, position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c := &domain.Collection{Merged: []*domain.Book{}, Unresolved: []*domain.Book{}}
	for rows.Next() {
		var partition, state string
		b := &domain.Book{}
		if err := rows.Scan(append([]any{&partition, &b.ID, &state}, scanTargets(b)...)...); err != nil {
			return nil, err
		}
		if err := b.State.UnmarshalText([]byte(state)); err != nil {
			return nil, fmt.Errorf("record %s: %w", b.ID, err)
		}

		switch partition {
		case partitionMerged:
			c.Merged = append(c.Merged, b)
		case partitionUnresolved:
			c.Unresolved = append(c.Unresolved, b)
		default:
			return nil, fmt.Errorf("record %s: unknown partition %q", b.ID, partition)
		}
	}
	return c, rows.Err()
}

// FindByKey returns records whose identity key on either side equals key
func (s *Store) FindByKey(ctx context.Context, key domain.Key) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bookColumns+`
		FROM books WHERE isbn_a = ? OR isbn_b = ?
		ORDER BY partition, position
	`, int64(key), int64(key))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		var state string
		b := &domain.Book{}
		if err := rows.Scan(append([]any{&b.ID, &state}, scanTargets(b)...)...); err != nil {
			return nil, err
		}
		if err := b.State.UnmarshalText([]byte(state)); err != nil {
			return nil, fmt.Errorf("record %s: %w", b.ID, err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// SavedAt returns when the collection was last saved
func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'saved_at'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, application.ErrNoCollection
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, value)
}
