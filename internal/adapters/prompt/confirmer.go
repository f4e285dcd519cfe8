package prompt

import (
	"context"
	"fmt"
	"strings"

	"shelfmerge/internal/domain"
)

// Confirmer asks "merge" or "skip" for every candidate pair
type Confirmer struct {
	p *Prompter
}

// NewConfirmer creates a line-based MatchConfirmer
func NewConfirmer(p *Prompter) *Confirmer {
	return &Confirmer{p: p}
}

func (c *Confirmer) Confirm(ctx context.Context, current, candidate *domain.Book) (domain.Decision, error) {
	fmt.Fprintln(c.p.out)
	fmt.Fprint(c.p.out, RenderPair(current, candidate))

	answer, err := c.p.Choose(ctx, "Please select Merge or Skip: ", "merge", "skip", "m", "s")
	if err != nil {
		return domain.DecisionDecline, err
	}
	if answer == "merge" || answer == "m" {
		return domain.DecisionConfirm, nil
	}
	return domain.DecisionDecline, nil
}

// RenderPair lays out both records field by field, one column per catalog
func RenderPair(current, candidate *domain.Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-12s %-40s %-40s\n", "", "Record", "Candidate")
	cur, cand := current.Describe(), candidate.Describe()
	for i := range cur {
		fmt.Fprintf(&sb, "%-12s %-40s %-40s\n", cur[i].Field, joinSides(cur[i]), joinSides(cand[i]))
	}
	return sb.String()
}

// RenderBook writes one record with a row per field and a column per catalog
func RenderBook(b *domain.Book, highlight []domain.Field) string {
	marked := make(map[domain.Field]bool, len(highlight))
	for _, f := range highlight {
		marked[f] = true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s]\n", b.DisplayTitle(), b.State)
	fmt.Fprintf(&sb, "  %-12s %-36s %-36s\n", "", domain.SourceGoodreads, domain.SourceStoryGraph)
	for _, fv := range b.Describe() {
		mark := " "
		if marked[fv.Field] {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s %-12s %-36s %-36s\n", mark, fv.Field, side(fv, domain.SourceGoodreads), side(fv, domain.SourceStoryGraph))
	}
	return sb.String()
}

func side(fv domain.FieldValues, src domain.Source) string {
	if fv.Absent[src] {
		return "-"
	}
	return fv.Values[src]
}

func joinSides(fv domain.FieldValues) string {
	var parts []string
	for _, src := range domain.Sources {
		if !fv.Absent[src] {
			parts = append(parts, fv.Values[src])
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}
