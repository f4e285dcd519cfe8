package commands

import (
	"context"
	"fmt"
	"time"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/ports"
)

// Summary counts the records of a stored collection
type Summary struct {
	Merged     int                  `json:"merged"`
	Unresolved int                  `json:"unresolved"`
	Discrepant int                  `json:"discrepant"`
	ByField    map[domain.Field]int `json:"by_field"`
	BySource   map[string]int       `json:"unresolved_by_source"`
	SavedAt    time.Time            `json:"saved_at,omitzero"`
}

// InspectCommand answers read-only questions about the stored collection
type InspectCommand struct {
	store     ports.CollectionStore
	evaluator *domain.Evaluator
}

// NewInspectCommand creates a new InspectCommand
func NewInspectCommand(store ports.CollectionStore, evaluator *domain.Evaluator) *InspectCommand {
	if evaluator == nil {
		evaluator = domain.NewEvaluator()
	}
	return &InspectCommand{store: store, evaluator: evaluator}
}

// Summary returns record and discrepancy counts
func (c *InspectCommand) Summary(ctx context.Context) (*Summary, error) {
	collection, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(ctx, c.evaluator, collection)
	if err != nil {
		return nil, err
	}
	if timer, ok := c.store.(ports.SaveTimer); ok {
		if summary.SavedAt, err = timer.SavedAt(ctx); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// Find returns one record by ID
func (c *InspectCommand) Find(ctx context.Context, id string) (*domain.Book, error) {
	if err := application.ValidateRequired("recordID", id); err != nil {
		return nil, err
	}
	collection, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	b := collection.Find(id)
	if b == nil {
		return nil, fmt.Errorf("record %s: %w", id, application.ErrNotFound)
	}
	return b, nil
}

// Search returns records whose title contains query
func (c *InspectCommand) Search(ctx context.Context, query string) ([]*domain.Book, error) {
	if err := application.ValidateRequired("query", query); err != nil {
		return nil, err
	}
	collection, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Search(query), nil
}

// FindByISBN returns records whose identity key matches the key in raw. Stores
// with a key index answer directly; others are scanned after a load.
func (c *InspectCommand) FindByISBN(ctx context.Context, raw string) ([]*domain.Book, error) {
	if err := application.ValidateRequired("isbn", raw); err != nil {
		return nil, err
	}
	key, err := domain.ExtractKey(&raw)
	if err != nil {
		return nil, &application.ValidationError{Field: "isbn", Message: err.Error()}
	}

	if finder, ok := c.store.(ports.KeyFinder); ok {
		return finder.FindByKey(ctx, key)
	}
	collection, err := c.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return collection.FindByKey(key), nil
}

// Summarize counts an already loaded collection
func Summarize(ctx context.Context, evaluator *domain.Evaluator, collection *domain.Collection) (*Summary, error) {
	reports, err := Discrepancies(ctx, evaluator, collection)
	if err != nil {
		return nil, err
	}

	s := &Summary{
		Merged:     len(collection.Merged),
		Unresolved: len(collection.Unresolved),
		Discrepant: len(reports),
		ByField:    make(map[domain.Field]int),
		BySource:   make(map[string]int),
	}
	for _, r := range reports {
		for _, f := range r.Fields {
			s.ByField[f]++
		}
	}
	for _, b := range collection.Unresolved {
		if present, _, ok := b.State.Single(); ok {
			s.BySource[present.String()]++
		}
	}
	return s, nil
}
