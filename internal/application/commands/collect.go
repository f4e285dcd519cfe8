package commands

import (
	"context"
	"fmt"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
	"shelfmerge/internal/ports"
)

// CollectResult summarizes a collect run
type CollectResult struct {
	Collection *domain.Collection
	Linked     int // records after exact-key linking
	Keyless    int // rows without a usable identity key
	Consumed   int // records folded into another by title matching
	Asked      int // pairs put to the confirmer
	Message    string
}

// CollectCommand reads the catalog exports, links and resolves their records
// and stores the outcome
type CollectCommand struct {
	feeds     map[domain.Source]ports.RowSource
	confirmer ports.MatchConfirmer
	store     ports.CollectionStore
	Scope     application.Scope
}

// NewCollectCommand creates a new CollectCommand. feeds may hold one or both catalogs.
func NewCollectCommand(feeds []ports.RowSource, confirmer ports.MatchConfirmer, store ports.CollectionStore, scope application.Scope) *CollectCommand {
	byName := make(map[domain.Source]ports.RowSource, len(feeds))
	for _, f := range feeds {
		byName[f.Source()] = f
	}
	return &CollectCommand{
		feeds:     byName,
		confirmer: confirmer,
		store:     store,
		Scope:     scope,
	}
}

// Validate checks the scope and that a feed exists for every catalog in it
func (c *CollectCommand) Validate() error {
	if err := application.ValidateScope(c.Scope); err != nil {
		return err
	}
	sources, _ := c.Scope.Sources()
	for _, src := range sources {
		if _, ok := c.feeds[src]; !ok {
			return &application.ValidationError{
				Field:   "scope",
				Message: fmt.Sprintf("no %s export configured", src),
			}
		}
	}
	if c.confirmer == nil {
		return &application.ValidationError{Field: "confirmer", Message: "confirmer is required"}
	}
	return nil
}

// Execute runs the collect command
func (c *CollectCommand) Execute(ctx context.Context) (*CollectResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log := logging.FromContext(ctx)
	sources, _ := c.Scope.Sources()

	rows := make(map[domain.Source][]domain.Row, len(sources))
	for _, src := range sources {
		r, err := c.feeds[src].Rows(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s export: %w", src, err)
		}
		rows[src] = r
		log.Info().Str("source", src.String()).Int("rows", len(r)).Msg("read export")
	}

	linked, keyless, err := c.link(ctx, sources, rows)
	if err != nil {
		return nil, err
	}
	log.Info().Int("linked", len(linked)).Int("keyless", len(keyless)).Msg("linked by identity key")

	collection, consumed, resolver, err := c.resolve(ctx, linked, keyless)
	if err != nil {
		return nil, err
	}

	if c.store != nil {
		if err := c.store.Save(ctx, collection); err != nil {
			return nil, fmt.Errorf("failed to save collection: %w", err)
		}
	}

	return &CollectResult{
		Collection: collection,
		Linked:     len(linked),
		Keyless:    len(keyless),
		Consumed:   consumed,
		Asked:      resolver.Asked(),
		Message: fmt.Sprintf("Collected %d merged and %d unresolved records",
			len(collection.Merged), len(collection.Unresolved)),
	}, nil
}

func (c *CollectCommand) link(ctx context.Context, sources []domain.Source, rows map[domain.Source][]domain.Row) (linked, keyless []*domain.Book, err error) {
	for i, src := range sources {
		var more []*domain.Book
		if i == 0 {
			linked, more, err = LinkPrimary(ctx, rows[src])
		} else {
			linked, more, err = LinkSecondary(ctx, rows[src], linked)
		}
		if err != nil {
			return nil, nil, err
		}
		keyless = append(keyless, more...)
	}
	return linked, keyless, nil
}

// resolve runs the two title-matching passes: linked records against the keyless
// pool, then every remaining one-sided record against the others
func (c *CollectCommand) resolve(ctx context.Context, linked, keyless []*domain.Book) (*domain.Collection, int, *Resolver, error) {
	log := logging.FromContext(ctx)
	resolver := NewResolver(c.confirmer)

	first, err := resolver.Resolve(ctx, linked, keyless)
	if err != nil {
		return nil, 0, nil, err
	}
	log.Info().
		Int("solid", len(first.Solid)).
		Int("single", len(first.Single)).
		Int("merged_away", len(first.Merged)).
		Msg("first matching pass")

	leftovers := append([]*domain.Book{}, first.Single...)
	for _, b := range keyless {
		if !b.State.IsMergedAway() {
			leftovers = append(leftovers, b)
		}
	}

	second, err := resolver.Resolve(ctx, leftovers, nil)
	if err != nil {
		return nil, 0, nil, err
	}
	log.Info().
		Int("solid", len(second.Solid)).
		Int("single", len(second.Single)).
		Int("merged_away", len(second.Merged)).
		Msg("second matching pass")

	collection := &domain.Collection{
		Merged:     append(first.Solid, second.Solid...),
		Unresolved: second.Single,
	}
	if collection.Merged == nil {
		collection.Merged = []*domain.Book{}
	}
	if collection.Unresolved == nil {
		collection.Unresolved = []*domain.Book{}
	}
	return collection, len(first.Merged) + len(second.Merged), resolver, nil
}
