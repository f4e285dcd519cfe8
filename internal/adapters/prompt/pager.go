package prompt

import (
	"context"
	"fmt"

	"shelfmerge/internal/application/commands"
)

// Page prints the counts, then one discrepancy report at a time
func Page(ctx context.Context, p *Prompter, result *commands.AnalyzeResult) error {
	fmt.Fprintf(p.out, "Merged records: %d\n", result.MergedCount)
	fmt.Fprintf(p.out, "Unresolved records: %d\n", result.UnresolvedCount)
	fmt.Fprintf(p.out, "Records with discrepancies: %d\n", len(result.Reports))

	for i, r := range result.Reports {
		fmt.Fprintf(p.out, "\n(%d/%d)\n", i+1, len(result.Reports))
		fmt.Fprint(p.out, RenderBook(r.Book, r.Fields))
		if err := p.Pause(ctx); err != nil {
			if IsAbort(err) {
				return nil
			}
			return err
		}
	}
	return nil
}
