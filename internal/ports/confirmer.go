package ports

import (
	"context"

	"shelfmerge/internal/domain"
)

// MatchConfirmer asks someone whether two single-sided records are the same book.
// current is the record being resolved; candidate holds the other catalog's side.
// Returning application.ErrAborted stops the whole run.
type MatchConfirmer interface {
	Confirm(ctx context.Context, current, candidate *domain.Book) (domain.Decision, error)
}

