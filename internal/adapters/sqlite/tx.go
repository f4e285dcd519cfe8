package sqlite

import (
	"context"
	"database/sql"
	"time"

	"shelfmerge/internal/domain"
)

const bookColumns = `id, state,
	title_a, title_b, author_a, author_b, isbn_a, isbn_b,
	rating_a, rating_b, format_a, format_b, date_read_a, date_read_b,
	tags_a, tags_b, status_a, status_b, read_count_a, read_count_b,
	owned_a, owned_b`

// bookTx wraps one save transaction
type bookTx struct {
	tx *sql.Tx
}

func (s *Store) beginTx(ctx context.Context) (*bookTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &bookTx{tx: tx}, nil
}

// Clear removes every stored record
func (t *bookTx) Clear() error {
	_, err := t.tx.Exec(`DELETE FROM books`)
	return err
}

// Insert stores one record at position within partition
func (t *bookTx) Insert(partition string, position int, b *domain.Book) error {
	state, err := b.State.MarshalText()
	if err != nil {
		return err
	}

	args := append([]any{partition, position, b.ID, string(state)}, values(b)...)
	_, err = t.tx.Exec(`
		INSERT INTO books (partition, position, `+bookColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	return err
}

// MarkSaved records the save time
func (t *bookTx) MarkSaved(at time.Time) error {
	_, err := t.tx.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('saved_at', ?)`,
		at.UTC().Format(time.RFC3339Nano))
	return err
}

// Commit commits the transaction
func (t *bookTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *bookTx) Rollback() error {
	return t.tx.Rollback()
}

// values lists the field slots in bookColumns order; absent slots become NULL
func values(b *domain.Book) []any {
	var args []any
	args = appendPair(args, b.Title, text)
	args = appendPair(args, b.Author, text)
	args = appendPair(args, b.ISBN, func(k domain.Key) any { return int64(k) })
	args = appendPair(args, b.Rating, text)
	args = appendPair(args, b.Format, text)
	args = appendPair(args, b.DateRead, text)
	args = appendPair(args, b.Tags, text)
	args = appendPair(args, b.Status, text)
	args = appendPair(args, b.ReadCount, func(n int) any { return int64(n) })
	args = appendPair(args, b.Owned, text)
	return args
}

func appendPair[T any](args []any, p domain.Pair[T], conv func(T) any) []any {
	for _, src := range domain.Sources {
		if v, ok := p.Get(src); ok {
			args = append(args, conv(v))
		} else {
			args = append(args, nil)
		}
	}
	return args
}

func text(s string) any { return s }

// scanTargets mirrors values; NULL columns scan into nil slots
func scanTargets(b *domain.Book) []any {
	return []any{
		&b.Title[0], &b.Title[1],
		&b.Author[0], &b.Author[1],
		&b.ISBN[0], &b.ISBN[1],
		&b.Rating[0], &b.Rating[1],
		&b.Format[0], &b.Format[1],
		&b.DateRead[0], &b.DateRead[1],
		&b.Tags[0], &b.Tags[1],
		&b.Status[0], &b.Status[1],
		&b.ReadCount[0], &b.ReadCount[1],
		&b.Owned[0], &b.Owned[1],
	}
}
