package ports

import (
	"context"

	"shelfmerge/internal/domain"
)

// RowSource yields the rows of one catalog export in file order
type RowSource interface {
	// Source identifies which catalog the rows come from
	Source() domain.Source

	// Rows reads the whole export. Each row carries its Source and 1-based line.
	Rows(ctx context.Context) ([]domain.Row, error)
}
