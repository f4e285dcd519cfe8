package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
)

func sampleCollection(t *testing.T) *domain.Collection {
	t.Helper()
	solid, err := domain.BookFromRow(domain.Row{
		Source:    domain.SourceGoodreads,
		Title:     domain.Ptr("Station Eleven"),
		Author:    domain.Ptr("Emily St. John Mandel"),
		ISBN:      domain.Ptr(`="9780804172448"`),
		Rating:    domain.Ptr("5"),
		Tags:      domain.Ptr("fiction, to-read"),
		ReadCount: domain.Ptr("2"),
		Owned:     domain.Ptr("1"),
	})
	require.NoError(t, err)
	require.NoError(t, solid.Assign(domain.Row{
		Source:    domain.SourceStoryGraph,
		Title:     domain.Ptr("Station Eleven"),
		ISBN:      domain.Ptr("9780804172448"),
		Rating:    domain.Ptr("4.5"),
		Format:    domain.Ptr("paperback"),
		ReadCount: domain.Ptr("2"),
		Owned:     domain.Ptr("Yes"),
	}))

	single, err := domain.BookFromRow(domain.Row{Source: domain.SourceStoryGraph, Title: domain.Ptr("Sea of Tranquility")})
	require.NoError(t, err)

	return &domain.Collection{Merged: []*domain.Book{solid}, Unresolved: []*domain.Book{single}}
}

func TestStore_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "json", file: "library_collection.json"},
		{name: "yaml", file: "library_collection.yaml"},
		{name: "yml", file: "nested/dir/books.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), tt.file)
			store := New(path, nil)
			defer store.Close()

			want := sampleCollection(t)
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			fields, err := domain.NewEvaluator().Fields(got.Merged[0])
			require.NoError(t, err)
			assert.Equal(t, []domain.Field{domain.FieldRating, domain.FieldFormat, domain.FieldTags}, fields)

			_, err = os.Stat(path + ".tmp")
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}
}

func TestStore_JSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library_collection.json")
	store := New(path, JSONCodec{})
	require.NoError(t, store.Save(context.Background(), sampleCollection(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n    \"merged\": ["))

	var raw struct {
		Merged []map[string]json.RawMessage `json:"merged"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Merged, 1)
	assert.JSONEq(t, `["Station Eleven", "Station Eleven"]`, string(raw.Merged[0]["title"]))
	assert.JSONEq(t, `[null, "paperback"]`, string(raw.Merged[0]["format"]))
	assert.JSONEq(t, `"solid"`, string(raw.Merged[0]["state"]))
}

func TestStore_LoadMissing(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "none.json"), nil)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, application.ErrNoCollection)
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path, nil).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, application.ErrNoCollection)
}

func TestStore_EmptyListsStayLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"merged": null}`), 0o644))

	got, err := New(path, nil).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got.Merged)
	assert.NotNil(t, got.Unresolved)
}

func TestCodecFor(t *testing.T) {
	assert.Equal(t, "yaml", CodecFor("a.YAML").Name())
	assert.Equal(t, "yaml", CodecFor("a.yml").Name())
	assert.Equal(t, "json", CodecFor("a.json").Name())
	assert.Equal(t, "json", CodecFor("a").Name())
}

func TestStore_SavedAt(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "library_collection.json"), nil)

	_, err := store.SavedAt(ctx)
	assert.ErrorIs(t, err, application.ErrNoCollection)

	before := time.Now().Add(-time.Second)
	require.NoError(t, store.Save(ctx, sampleCollection(t)))
	at, err := store.SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.After(before), "saved at %s", at)
}
