package commands

import (
	"context"
	"fmt"

	"shelfmerge/internal/domain"
	"shelfmerge/internal/logging"
	"shelfmerge/internal/ports"
)

// Report is a discrepant record with the fields that disagree.
// Book is the stored record, unmodified.
type Report struct {
	Book   *domain.Book
	Fields []domain.Field
}

// AnalyzeResult contains the discrepancy reports of a stored collection
type AnalyzeResult struct {
	MergedCount     int
	UnresolvedCount int
	Reports         []Report
	Message         string
}

// AnalyzeCommand loads the stored collection and evaluates every merged record
type AnalyzeCommand struct {
	store     ports.CollectionStore
	evaluator *domain.Evaluator
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(store ports.CollectionStore, evaluator *domain.Evaluator) *AnalyzeCommand {
	if evaluator == nil {
		evaluator = domain.NewEvaluator()
	}
	return &AnalyzeCommand{store: store, evaluator: evaluator}
}

// Execute runs the analyze command
func (c *AnalyzeCommand) Execute(ctx context.Context) (*AnalyzeResult, error) {
	collection, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}

	reports, err := Discrepancies(ctx, c.evaluator, collection)
	if err != nil {
		return nil, err
	}

	return &AnalyzeResult{
		MergedCount:     len(collection.Merged),
		UnresolvedCount: len(collection.Unresolved),
		Reports:         reports,
		Message:         fmt.Sprintf("%d of %d merged records disagree", len(reports), len(collection.Merged)),
	}, nil
}

// Discrepancies evaluates every solid record of the merged list. An
// uninterpretable value aborts the evaluation.
func Discrepancies(ctx context.Context, evaluator *domain.Evaluator, collection *domain.Collection) ([]Report, error) {
	log := logging.FromContext(ctx)

	var reports []Report
	for _, b := range collection.Merged {
		if !b.State.IsSolid() {
			log.Warn().Str("id", b.ID).Str("state", b.State.String()).Msg("merged list holds a one-sided record, skipping")
			continue
		}
		fields, err := evaluator.Fields(b)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate %q: %w", b.DisplayTitle(), err)
		}
		if len(fields) > 0 {
			reports = append(reports, Report{Book: b, Fields: fields})
		}
	}
	return reports, nil
}
