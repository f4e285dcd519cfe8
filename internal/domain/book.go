package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Book is a dual-source record: every tracked field holds one slot per catalog
type Book struct {
	ID    string `json:"id" yaml:"id"`
	State State  `json:"state" yaml:"state"`

	Title     Pair[string] `json:"title" yaml:"title"`
	Author    Pair[string] `json:"author" yaml:"author"`
	ISBN      Pair[Key]    `json:"isbn" yaml:"isbn"`
	Rating    Pair[string] `json:"user_rating" yaml:"user_rating"`
	Format    Pair[string] `json:"format" yaml:"format"`
	DateRead  Pair[string] `json:"date_read" yaml:"date_read"`
	Tags      Pair[string] `json:"tags" yaml:"tags"`
	Status    Pair[string] `json:"status" yaml:"status"`
	ReadCount Pair[int]    `json:"read_count" yaml:"read_count"`
	Owned     Pair[string] `json:"owned_count" yaml:"owned_count"`
}

// NewBook creates an empty record with a fresh ID
func NewBook() *Book {
	return &Book{ID: uuid.NewString(), State: StateEmpty}
}

// BookFromRow creates a record holding only the row's data
func BookFromRow(row Row) (*Book, error) {
	b := NewBook()
	if err := b.Assign(row); err != nil {
		return nil, err
	}
	return b, nil
}

// Assign copies a row's values into the slots of row.Source and marks that source present.
// The identity key is extracted; an unusable identifier leaves the key slot absent.
func (b *Book) Assign(row Row) error {
	src := row.Source

	readCount, err := parseCount(row.ReadCount)
	if err != nil {
		return &ValueError{Field: FieldReadCount, Source: src, Value: *row.ReadCount, Err: err}
	}

	owned := row.Owned
	if src == SourceGoodreads && owned != nil {
		// Goodreads stores a number of owned copies; keep it in canonical form.
		n, err := parseCount(owned)
		if err != nil {
			return &ValueError{Field: FieldOwned, Source: src, Value: *owned, Err: err}
		}
		owned = nil
		if n != nil {
			owned = Ptr(strconv.Itoa(*n))
		}
	}

	b.Title[src] = row.Title
	b.Author[src] = row.Author
	b.ISBN.Clear(src)
	if key, err := ExtractKey(row.ISBN); err == nil {
		b.ISBN.Set(src, key)
	}
	b.Rating[src] = row.Rating
	b.Format[src] = row.Format
	b.DateRead[src] = row.DateRead
	b.Tags[src] = row.Tags
	b.Status[src] = row.Status
	b.ReadCount[src] = readCount
	b.Owned[src] = owned

	b.State = b.State.With(src)
	return nil
}

// Merge copies every field slot of src from other into b and marks src present.
// other is left untouched; the caller decides whether it is consumed.
func (b *Book) Merge(other *Book, src Source) {
	b.Title.copyFrom(other.Title, src)
	b.Author.copyFrom(other.Author, src)
	b.ISBN.copyFrom(other.ISBN, src)
	b.Rating.copyFrom(other.Rating, src)
	b.Format.copyFrom(other.Format, src)
	b.DateRead.copyFrom(other.DateRead, src)
	b.Tags.copyFrom(other.Tags, src)
	b.Status.copyFrom(other.Status, src)
	b.ReadCount.copyFrom(other.ReadCount, src)
	b.Owned.copyFrom(other.Owned, src)
	b.State = b.State.With(src)
}

// Tombstone marks the record as merged away
func (b *Book) Tombstone() {
	b.State = StateMergedAway
}

// Key returns the identity key of src, if any
func (b *Book) Key(src Source) (Key, bool) {
	return b.ISBN.Get(src)
}

// DisplayTitle returns the first title present, preferring Goodreads
func (b *Book) DisplayTitle() string {
	for _, src := range Sources {
		if t, ok := b.Title.Get(src); ok && t != "" {
			return t
		}
	}
	return "(untitled)"
}

// parseCount reads a non-negative integer that may be written as a float ("1.0")
func parseCount(raw *string) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return nil, strconv.ErrSyntax
	}
	n := int(f)
	return &n, nil
}
