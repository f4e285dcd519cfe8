package commands

import (
	"context"
	"fmt"

	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
	"shelfmerge/internal/ports"
)

// ResolveResult partitions the records of one resolution pass
type ResolveResult struct {
	Solid  []*domain.Book // matched on both sides, including records completed in this pass
	Single []*domain.Book // still one-sided
	Merged []*domain.Book // folded into another record; tombstoned
}

// Resolver pairs one-sided records by title, asking a MatchConfirmer before
// every merge. Declined pairs are remembered for the Resolver's lifetime so the
// same two records are never offered twice.
type Resolver struct {
	confirmer ports.MatchConfirmer
	declined  map[[2]string]bool
	asked     int
}

// NewResolver creates a Resolver that asks confirmer about every candidate pair
func NewResolver(confirmer ports.MatchConfirmer) *Resolver {
	return &Resolver{
		confirmer: confirmer,
		declined:  make(map[[2]string]bool),
	}
}

// Asked returns how many pairs have been put to the confirmer so far
func (r *Resolver) Asked() int {
	return r.asked
}

// Resolve classifies every record of primary. A nil candidates slice matches
// primary against itself. Candidates merged into a primary record are
// tombstoned in place, so later passes skip them through their state.
func (r *Resolver) Resolve(ctx context.Context, primary, candidates []*domain.Book) (*ResolveResult, error) {
	log := logging.FromContext(ctx)
	if candidates == nil {
		candidates = primary
	}

	result := &ResolveResult{}
	for _, b := range primary {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch {
		case b.State.IsSolid():
			result.Solid = append(result.Solid, b)
			continue
		case b.State.IsMergedAway():
			continue
		}

		present, missing, ok := b.State.Single()
		if !ok {
			log.Warn().Str("id", b.ID).Str("state", b.State.String()).Msg("record holds no data, skipping")
			continue
		}

		match, err := r.findMatch(ctx, b, candidates, present, missing)
		if err != nil {
			return nil, err
		}
		if match == nil {
			result.Single = append(result.Single, b)
			continue
		}

		b.Merge(match, missing)
		match.Tombstone()
		log.Info().
			Str("title", b.DisplayTitle()).
			Str("id", b.ID).
			Str("merged_id", match.ID).
			Msg("merged records")

		result.Solid = append(result.Solid, b)
		result.Merged = append(result.Merged, match)
	}

	// A single emitted earlier may have been consumed by a later record when
	// matching a collection against itself.
	singles := result.Single[:0]
	for _, b := range result.Single {
		if !b.State.IsMergedAway() {
			singles = append(singles, b)
		}
	}
	result.Single = singles

	return result, nil
}

// findMatch scans candidates in order and returns the first one confirmed as
// the missing side of b, or nil
func (r *Resolver) findMatch(ctx context.Context, b *domain.Book, candidates []*domain.Book, present, missing domain.Source) (*domain.Book, error) {
	log := logging.FromContext(ctx)

	title := b.Title[present]
	if title == nil {
		log.Warn().Str("id", b.ID).Str("source", present.String()).Msg("record has no title, cannot match by title")
		return nil, nil
	}

	for _, cand := range candidates {
		if cand == b || cand.State.IsMergedAway() {
			continue
		}
		if cand.State.Has(present) || !cand.State.Has(missing) {
			continue
		}

		candTitle := cand.Title[missing]
		if candTitle == nil {
			log.Warn().Str("id", cand.ID).Str("source", missing.String()).Msg("candidate has no title, treating as no match")
			continue
		}
		if !domain.TitlesOverlap(*title, *candTitle) {
			continue
		}

		pair := pairKey(b.ID, cand.ID)
		if r.declined[pair] {
			continue
		}

		r.asked++
		decision, err := r.confirmer.Confirm(ctx, b, cand)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm match for %q: %w", *title, err)
		}
		if decision == domain.DecisionConfirm {
			return cand, nil
		}

		r.declined[pair] = true
		log.Debug().Str("title", *title).Str("candidate", *candTitle).Msg("match declined")
	}
	return nil, nil
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
