package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmerge/internal/adapters/filestore"
	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/ports"
)

type countingStore struct {
	*filestore.Store
	loads int
}

func (s *countingStore) Load(ctx context.Context) (*domain.Collection, error) {
	s.loads++
	return s.Store.Load(ctx)
}

func book(t *testing.T, rows ...domain.Row) *domain.Book {
	t.Helper()
	b := domain.NewBook()
	for _, r := range rows {
		require.NoError(t, b.Assign(r))
	}
	return b
}

func newStore(t *testing.T) (*countingStore, *domain.Collection) {
	t.Helper()

	agree := book(t,
		domain.Row{Source: domain.SourceGoodreads, Title: domain.Ptr("Station Eleven"), Rating: domain.Ptr("4")},
		domain.Row{Source: domain.SourceStoryGraph, Title: domain.Ptr("Station Eleven"), Rating: domain.Ptr("4.0")},
	)
	differ := book(t,
		domain.Row{Source: domain.SourceGoodreads, Title: domain.Ptr("Annihilation"), Rating: domain.Ptr("5"), Status: domain.Ptr("read")},
		domain.Row{Source: domain.SourceStoryGraph, Title: domain.Ptr("Annihilation"), Rating: domain.Ptr("3.5"), Status: domain.Ptr("read")},
	)
	lonely := book(t, domain.Row{Source: domain.SourceStoryGraph, Title: domain.Ptr("Authority")})

	c := &domain.Collection{Merged: []*domain.Book{agree, differ}, Unresolved: []*domain.Book{lonely}}
	fs := filestore.New(filepath.Join(t.TempDir(), "library_collection.json"), filestore.JSONCodec{})
	require.NoError(t, fs.Save(context.Background(), c))
	return &countingStore{Store: fs}, c
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestSummaryHandler(t *testing.T) {
	store, _ := newStore(t)
	evaluator := domain.NewEvaluator()

	out, isErr := call(t, summaryHandler(inspectFor(store, evaluator)), nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "merged: 2")
	assert.Contains(t, out, "unresolved: 1")
	assert.Contains(t, out, "discrepant: 1")
	assert.Contains(t, out, "rating: 1")
	assert.Contains(t, out, "unresolved from storygraph: 1")
}

func TestListDiscrepanciesHandler(t *testing.T) {
	store, c := newStore(t)
	h := listDiscrepanciesHandler(analyzeFor(store, domain.NewEvaluator()))

	out, isErr := call(t, h, nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, c.Merged[1].ID)
	assert.Contains(t, out, "Annihilation  [rating]")
	assert.NotContains(t, out, "Station Eleven")

	out, _ = call(t, h, map[string]any{"field": "tags"})
	assert.Equal(t, "No discrepancies.", out)

	_, isErr = call(t, h, map[string]any{"limit": 0})
	assert.True(t, isErr)
}

func TestShowRecordHandler(t *testing.T) {
	store, c := newStore(t)
	evaluator := domain.NewEvaluator()
	h := showRecordHandler(inspectFor(store, evaluator), evaluator)

	out, isErr := call(t, h, map[string]any{"id": c.Merged[1].ID})
	require.False(t, isErr, out)
	assert.Contains(t, out, "! rating")
	assert.Contains(t, out, "storygraph: 3.5")
	assert.NotContains(t, out, "! status")

	out, isErr = call(t, h, map[string]any{"id": c.Merged[1].ID, "json": true})
	require.False(t, isErr, out)
	assert.Contains(t, out, `"state": "solid"`)

	_, isErr = call(t, h, map[string]any{"id": "nope"})
	assert.True(t, isErr)
	_, isErr = call(t, h, nil)
	assert.True(t, isErr)
}

func TestSearchHandler(t *testing.T) {
	store, c := newStore(t)
	h := searchHandler(inspectFor(store, domain.NewEvaluator()))

	out, isErr := call(t, h, map[string]any{"query": "authority"})
	require.False(t, isErr, out)
	assert.Contains(t, out, c.Unresolved[0].ID)

	out, _ = call(t, h, map[string]any{"query": "dune"})
	assert.Equal(t, "No results found.", out)
}

func TestToolError_NoCollection(t *testing.T) {
	fs := filestore.New(filepath.Join(t.TempDir(), "missing.json"), filestore.JSONCodec{})
	out, isErr := call(t, summaryHandler(inspectFor(fs, nil)), nil)
	assert.True(t, isErr)
	assert.Contains(t, out, "shelfmerge collect")
}

func TestCachedStore(t *testing.T) {
	store, c := newStore(t)
	cached := NewCachedStore(store, time.Minute)
	ctx := context.Background()

	first, err := cached.Load(ctx)
	require.NoError(t, err)
	second, err := cached.Load(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, store.loads)

	require.NoError(t, cached.Save(ctx, c))
	_, err = cached.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.loads)

	cached.Invalidate()
	_, err = cached.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, store.loads)
}

func inspectFor(store ports.CollectionStore, evaluator *domain.Evaluator) *commands.InspectCommand {
	return commands.NewInspectCommand(store, evaluator)
}

func analyzeFor(store ports.CollectionStore, evaluator *domain.Evaluator) *commands.AnalyzeCommand {
	return commands.NewAnalyzeCommand(store, evaluator)
}

func TestFindISBNHandler(t *testing.T) {
	store, c := newStore(t)
	c.Unresolved[0].ISBN.Set(domain.SourceStoryGraph, 9780385353304)
	require.NoError(t, store.Save(context.Background(), c))
	h := findISBNHandler(inspectFor(store, nil))

	out, isErr := call(t, h, map[string]any{"isbn": "9780385353304"})
	require.False(t, isErr, out)
	assert.Contains(t, out, c.Unresolved[0].ID)
	assert.Contains(t, out, "Authority")

	out, _ = call(t, h, map[string]any{"isbn": "9780000000000"})
	assert.Equal(t, "No results found.", out)

	_, isErr = call(t, h, map[string]any{"isbn": "none"})
	assert.True(t, isErr)
}

func TestSummaryHandler_SavedAt(t *testing.T) {
	store, _ := newStore(t)
	out, isErr := call(t, summaryHandler(inspectFor(store, nil)), nil)
	require.False(t, isErr, out)
	assert.Contains(t, out, "saved at: ")
}

func TestReloadHandler(t *testing.T) {
	store, c := newStore(t)
	cached := NewCachedStore(store, time.Hour)
	h := reloadHandler(cached, inspectFor(cached, nil))

	out, isErr := call(t, h, nil)
	require.False(t, isErr, out)
	assert.Equal(t, "Reloaded: 2 merged, 1 unresolved", out)
	assert.Equal(t, 1, store.loads)

	// a collect run elsewhere rewrites the file behind the cache
	c.Unresolved = nil
	require.NoError(t, store.Store.Save(context.Background(), c))

	out, _ = call(t, h, nil)
	assert.Equal(t, "Reloaded: 2 merged, 0 unresolved", out)
	assert.Equal(t, 2, store.loads)
}

func TestCachedStore_SavedAt(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	at, err := NewCachedStore(store, time.Minute).SavedAt(ctx)
	require.NoError(t, err)
	assert.False(t, at.IsZero())

	at, err = NewCachedStore(&loadOnlyStore{store}, time.Minute).SavedAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

// loadOnlyStore hides the file store's optional methods
type loadOnlyStore struct {
	inner ports.CollectionStore
}

func (s *loadOnlyStore) Save(ctx context.Context, c *domain.Collection) error { return s.inner.Save(ctx, c) }
func (s *loadOnlyStore) Load(ctx context.Context) (*domain.Collection, error) { return s.inner.Load(ctx) }
func (s *loadOnlyStore) Location() string                                     { return s.inner.Location() }
func (s *loadOnlyStore) Close() error                                         { return s.inner.Close() }
