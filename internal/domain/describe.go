package domain

import "strconv"

// FieldValues is one line of a side-by-side record display
type FieldValues struct {
	Field  Field
	Values [2]string // display value per source, "" when absent
	Absent [2]bool
}

// Describe flattens a record into display lines in a fixed field order
func (b *Book) Describe() []FieldValues {
	return []FieldValues{
		describe(FieldTitle, b.Title, identity),
		describe(FieldAuthor, b.Author, identity),
		describe(FieldISBN, b.ISBN, func(k Key) string { return strconv.FormatUint(uint64(k), 10) }),
		describe(FieldRating, b.Rating, identity),
		describe(FieldFormat, b.Format, identity),
		describe(FieldDateRead, b.DateRead, identity),
		describe(FieldTags, b.Tags, identity),
		describe(FieldStatus, b.Status, identity),
		describe(FieldReadCount, b.ReadCount, strconv.Itoa),
		describe(FieldOwned, b.Owned, identity),
	}
}

func describe[T any](field Field, p Pair[T], format func(T) string) FieldValues {
	fv := FieldValues{Field: field}
	for _, src := range Sources {
		v, ok := p.Get(src)
		if !ok {
			fv.Absent[src] = true
			continue
		}
		fv.Values[src] = format(v)
	}
	return fv
}

func identity(s string) string { return s }
