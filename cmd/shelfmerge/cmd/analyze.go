package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shelfmerge/internal/adapters/editor"
	"shelfmerge/internal/adapters/prompt"
	"shelfmerge/internal/adapters/tui"
	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/config"
	"shelfmerge/internal/domain"
)

var (
	analyzePlain   bool
	analyzeSummary bool
	analyzeJSON    bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report merged records whose catalogs disagree",
	Long: `Load the stored collection and compare both catalogs' values of every
merged record. Records that disagree are shown one at a time.

Examples:
  shelfmerge analyze
  shelfmerge analyze --plain
  shelfmerge analyze --summary --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case analyzeSummary:
			return runSummary(cmd.Context(), analyzeJSON)
		case analyzePlain:
			return runAnalyzeTable(cmd.Context())
		default:
			return runAnalyze(cmd.Context())
		}
	},
}

func analyze(ctx context.Context) (*commands.AnalyzeResult, error) {
	s, err := GetStore()
	if err != nil {
		return nil, err
	}
	return commands.NewAnalyzeCommand(s, evaluator()).Execute(ctx)
}

// runAnalyze pages through the discrepancies in the TUI or the line prompt
func runAnalyze(ctx context.Context) error {
	result, err := analyze(ctx)
	if err != nil {
		return err
	}

	if !useTUI() {
		return prompt.Page(ctx, GetPrompter(), result)
	}

	var path string
	if cfg.Store.Backend != config.BackendSQLite {
		path = cfg.Store.Path
	}
	return tui.NewPager(result, editor.NewOpener(), path).Run(ctx)
}

func runAnalyzeTable(ctx context.Context) error {
	result, err := analyze(ctx)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	if len(result.Reports) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(result.Reports))
	for _, r := range result.Reports {
		rows = append(rows, []string{shortID(r.Book.ID), r.Book.DisplayTitle(), fieldNames(r.Fields), sideValues(r, domain.SourceGoodreads), sideValues(r, domain.SourceStoryGraph)})
	}
	fmt.Println(renderTable([]string{"ID", "Title", "Fields", "Goodreads", "StoryGraph"}, rows, nil))
	return nil
}

func runSummary(ctx context.Context, asJSON bool) error {
	s, err := GetStore()
	if err != nil {
		return err
	}
	summary, err := commands.NewInspectCommand(s, evaluator()).Summary(ctx)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	rows := [][]string{
		{"merged", strconv.Itoa(summary.Merged)},
		{"unresolved", strconv.Itoa(summary.Unresolved)},
		{"discrepant", strconv.Itoa(summary.Discrepant)},
	}
	for _, src := range domain.Sources {
		rows = append(rows, []string{"unresolved from " + src.String(), strconv.Itoa(summary.BySource[src.String()])})
	}

	fields := make([]string, 0, len(summary.ByField))
	for f := range summary.ByField {
		fields = append(fields, string(f))
	}
	sort.Strings(fields)
	for _, f := range fields {
		rows = append(rows, []string{"  " + f, strconv.Itoa(summary.ByField[domain.Field(f)])})
	}

	if !summary.SavedAt.IsZero() {
		fmt.Printf("Collected %s\n", summary.SavedAt.Local().Format(time.DateTime))
	}
	fmt.Println(renderTable([]string{"Records", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
	return nil
}

func fieldNames(fields []domain.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// sideValues lists one catalog's values of the disagreeing fields
func sideValues(r commands.Report, src domain.Source) string {
	differ := make(map[domain.Field]bool, len(r.Fields))
	for _, f := range r.Fields {
		differ[f] = true
	}

	var lines []string
	for _, fv := range r.Book.Describe() {
		if !differ[fv.Field] {
			continue
		}
		value := fv.Values[src]
		if fv.Absent[src] {
			value = "-"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", fv.Field, value))
	}
	return strings.Join(lines, "\n")
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzePlain, "plain", false, "print a table instead of paging")
	analyzeCmd.Flags().BoolVar(&analyzeSummary, "summary", false, "print counts only")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "with --summary, print JSON")
	rootCmd.AddCommand(analyzeCmd)
}
