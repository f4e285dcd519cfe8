package commands

import (
	"context"
	"errors"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
)

// LinkPrimary builds one record per keyed row of the first catalog.
// Rows without a usable key are returned separately as keyless records.
func LinkPrimary(ctx context.Context, rows []domain.Row) (linked, keyless []*domain.Book, err error) {
	log := logging.FromContext(ctx)
	seen := make(map[domain.Key]int)

	for _, row := range rows {
		b, err := domain.BookFromRow(row)
		if err != nil {
			return nil, nil, &application.RowError{Source: row.Source, Line: row.Line, Err: err}
		}

		key, ok := b.Key(row.Source)
		if !ok {
			logKeyless(ctx, row)
			keyless = append(keyless, b)
			continue
		}

		if first, dup := seen[key]; dup {
			log.Warn().
				Uint64("key", uint64(key)).
				Int("line", row.Line).
				Int("first_line", first).
				Str("source", row.Source.String()).
				Msg("duplicate identity key, later rows will never be linked")
		} else {
			seen[key] = row.Line
		}
		linked = append(linked, b)
	}
	return linked, keyless, nil
}

// LinkSecondary folds the second catalog into linked. A keyed row is matched
// only against the first catalog's keys: a hit is merged into that record in
// place, a miss becomes a new one-sided record appended to linked. Keyless rows
// are returned separately.
func LinkSecondary(ctx context.Context, rows []domain.Row, linked []*domain.Book) ([]*domain.Book, []*domain.Book, error) {
	log := logging.FromContext(ctx)
	var keyless []*domain.Book

	// built on first use, the counterpart side is only known from the rows
	var index map[domain.Key]*domain.Book
	appended := make(map[domain.Key]int)

	for _, row := range rows {
		key, err := domain.ExtractKey(row.ISBN)
		if err != nil {
			b, berr := domain.BookFromRow(row)
			if berr != nil {
				return nil, nil, &application.RowError{Source: row.Source, Line: row.Line, Err: berr}
			}
			logKeyless(ctx, row)
			keyless = append(keyless, b)
			continue
		}

		if index == nil {
			index = keyIndex(linked, row.Source.Other())
		}

		if b, ok := index[key]; ok {
			if b.State.Has(row.Source) {
				log.Warn().
					Uint64("key", uint64(key)).
					Int("line", row.Line).
					Str("title", b.DisplayTitle()).
					Str("source", row.Source.String()).
					Msg("record already linked on this side, overwriting")
			}
			if err := b.Assign(row); err != nil {
				return nil, nil, &application.RowError{Source: row.Source, Line: row.Line, Err: err}
			}
			continue
		}

		b, err := domain.BookFromRow(row)
		if err != nil {
			return nil, nil, &application.RowError{Source: row.Source, Line: row.Line, Err: err}
		}
		if first, dup := appended[key]; dup {
			log.Warn().
				Uint64("key", uint64(key)).
				Int("line", row.Line).
				Int("first_line", first).
				Str("source", row.Source.String()).
				Msg("duplicate identity key without a counterpart, keeping both records")
		} else {
			appended[key] = row.Line
		}
		linked = append(linked, b)
	}
	return linked, keyless, nil
}

// keyIndex maps each key of side src to the first record carrying it
func keyIndex(linked []*domain.Book, src domain.Source) map[domain.Key]*domain.Book {
	index := make(map[domain.Key]*domain.Book, len(linked))
	for _, b := range linked {
		if key, ok := b.Key(src); ok {
			if _, exists := index[key]; !exists {
				index[key] = b
			}
		}
	}
	return index
}

func logKeyless(ctx context.Context, row domain.Row) {
	log := logging.FromContext(ctx)
	_, err := domain.ExtractKey(row.ISBN)
	event := log.Debug()
	if errors.Is(err, domain.ErrKeyOverflow) {
		event = log.Warn().Err(err)
	}
	title := ""
	if row.Title != nil {
		title = *row.Title
	}
	event.Int("line", row.Line).
		Str("source", row.Source.String()).
		Str("title", title).
		Msg("no usable identity key, deferring to title matching")
}
