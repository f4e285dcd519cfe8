package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPair(a, b *string) Pair[string] { return PairOf(a, b) }

func TestRatingsDiffer(t *testing.T) {
	tests := []struct {
		name string
		pair Pair[string]
		want bool
	}{
		{name: "integer and float equal", pair: strPair(Ptr("4"), Ptr("4.0")), want: false},
		{name: "different ratings", pair: strPair(Ptr("3"), Ptr("3.5")), want: true},
		{name: "only goodreads", pair: strPair(Ptr("4"), nil), want: true},
		{name: "only storygraph", pair: strPair(nil, Ptr("4.25")), want: true},
		{name: "neither", pair: strPair(nil, nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RatingsDiffer(tt.pair)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRatingsDiffer_NonNumericIsFatal(t *testing.T) {
	_, err := RatingsDiffer(strPair(Ptr("four"), Ptr("4.0")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)

	var valErr *ValueError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, FieldRating, valErr.Field)
	assert.Equal(t, SourceGoodreads, valErr.Source)
}

func TestFormatsDiffer(t *testing.T) {
	tests := []struct {
		name string
		pair Pair[string]
		want bool
	}{
		{name: "substring ignoring case", pair: strPair(Ptr("Hardcover"), Ptr("hardcover edition")), want: false},
		{name: "reverse substring", pair: strPair(Ptr("Kindle Edition"), Ptr("kindle")), want: false},
		{name: "different formats", pair: strPair(Ptr("Hardcover"), Ptr("Paperback")), want: true},
		{name: "only one", pair: strPair(Ptr("Hardcover"), nil), want: true},
		{name: "neither", pair: strPair(nil, nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatsDiffer(tt.pair))
		})
	}
}

func TestDatesDiffer(t *testing.T) {
	assert.False(t, DatesDiffer(strPair(Ptr("2023/05/01"), Ptr("2023/05/01"))))
	assert.True(t, DatesDiffer(strPair(Ptr("2023/05/01"), Ptr("2023/05/02"))))
	assert.True(t, DatesDiffer(strPair(Ptr("2023/05/01"), nil)))
	assert.False(t, DatesDiffer(strPair(nil, nil)))
}

func TestTagsDiffer(t *testing.T) {
	ignored := map[string]bool{"to-read": true}

	tests := []struct {
		name string
		pair Pair[string]
		want bool
	}{
		{name: "to-read discarded, case folded", pair: strPair(Ptr("fiction, to-read"), Ptr("FICTION")), want: false},
		{name: "same set different order", pair: strPair(Ptr("sci-fi, space opera"), Ptr("opera space sci-fi")), want: false},
		{name: "extra tag", pair: strPair(Ptr("fiction"), Ptr("fiction, favorites")), want: true},
		{name: "duplicates collapse", pair: strPair(Ptr("fiction fiction"), Ptr("fiction")), want: false},
		{name: "only one side", pair: strPair(Ptr("fiction"), nil), want: true},
		{name: "neither", pair: strPair(nil, nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TagsDiffer(tt.pair, ignored))
		})
	}
}

func TestTagSet(t *testing.T) {
	got := TagSet("Sci-Fi, to-read  classics", map[string]bool{"to-read": true})
	assert.Equal(t, map[string]bool{"sci-fi": true, "classics": true}, got)
}

func TestStatusesDiffer(t *testing.T) {
	tests := []struct {
		name string
		pair Pair[string]
		want bool
	}{
		{name: "equal", pair: strPair(Ptr("read"), Ptr("read")), want: false},
		{name: "dropped synonym", pair: strPair(Ptr("dropped"), Ptr("did-not-finish")), want: false},
		{name: "dropped synonym reversed", pair: strPair(Ptr("did-not-finish"), Ptr("dropped")), want: false},
		{name: "dropped vs read", pair: strPair(Ptr("dropped"), Ptr("read")), want: true},
		{name: "one missing", pair: strPair(Ptr("read"), nil), want: true},
		{name: "both missing", pair: strPair(nil, nil), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusesDiffer(tt.pair))
		})
	}
}

func TestReadCountsDiffer(t *testing.T) {
	tests := []struct {
		name string
		pair Pair[int]
		want bool
	}{
		{name: "equal", pair: PairOf(Ptr(2), Ptr(2)), want: false},
		{name: "different", pair: PairOf(Ptr(1), Ptr(2)), want: true},
		{name: "zero and absent", pair: PairOf(Ptr(0), nil), want: false},
		{name: "both absent", pair: PairOf[int](nil, nil), want: false},
		{name: "count and absent", pair: PairOf(Ptr(1), nil), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadCountsDiffer(tt.pair))
		})
	}
}

func TestOwnedDiffer(t *testing.T) {
	tests := []struct {
		name string
		pair Pair[string]
		want bool
	}{
		{name: "owned on both", pair: strPair(Ptr("1"), Ptr("Yes")), want: false},
		{name: "owned on neither", pair: strPair(Ptr("0"), Ptr("No")), want: false},
		{name: "absent count and no", pair: strPair(nil, Ptr("No")), want: false},
		{name: "owned only on goodreads", pair: strPair(Ptr("2"), Ptr("No")), want: true},
		{name: "owned only on storygraph", pair: strPair(Ptr("0"), Ptr("Yes")), want: true},
		{name: "flag is case sensitive", pair: strPair(Ptr("1"), Ptr("yes")), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := OwnedDiffer(tt.pair)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func solidBook() *Book {
	return &Book{
		ID:        "b1",
		State:     StateSolid,
		Title:     strPair(Ptr("Kindred"), Ptr("Kindred")),
		Rating:    strPair(Ptr("5"), Ptr("5.0")),
		Format:    strPair(Ptr("Paperback"), Ptr("paperback")),
		DateRead:  strPair(Ptr("2022/03/04"), Ptr("2022/03/04")),
		Tags:      strPair(Ptr("classics, to-read"), Ptr("Classics")),
		Status:    strPair(Ptr("read"), Ptr("read")),
		ReadCount: PairOf(Ptr(1), Ptr(1)),
		Owned:     strPair(Ptr("1"), Ptr("Yes")),
	}
}

func TestEvaluator_Agreeing(t *testing.T) {
	e := NewEvaluator()

	differ, err := e.Discrepant(solidBook())
	require.NoError(t, err)
	assert.False(t, differ)

	fields, err := e.Fields(solidBook())
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestEvaluator_ReportsEveryField(t *testing.T) {
	b := solidBook()
	b.Rating.Set(SourceStoryGraph, "3.5")
	b.Status.Set(SourceStoryGraph, "to-read")
	b.Owned.Set(SourceStoryGraph, "No")

	fields, err := NewEvaluator().Fields(b)
	require.NoError(t, err)
	assert.Equal(t, []Field{FieldRating, FieldStatus, FieldOwned}, fields)
}

func TestEvaluator_Idempotent(t *testing.T) {
	e := NewEvaluator()
	b := solidBook()
	b.Format.Set(SourceStoryGraph, "Audiobook")

	first, err := e.Discrepant(b)
	require.NoError(t, err)
	second, err := e.Discrepant(b)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, first, second)
}

func TestEvaluator_IgnoredTags(t *testing.T) {
	b := solidBook()
	b.Tags = strPair(Ptr("classics, owned"), Ptr("classics"))

	differ, err := NewEvaluator().Discrepant(b)
	require.NoError(t, err)
	assert.True(t, differ)

	differ, err = NewEvaluator(WithIgnoredTags("to-read", "Owned")).Discrepant(b)
	require.NoError(t, err)
	assert.False(t, differ)
}

func TestEvaluator_InvalidRatingSurfaces(t *testing.T) {
	b := solidBook()
	b.Rating.Set(SourceStoryGraph, "n/a")

	_, err := NewEvaluator().Discrepant(b)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
