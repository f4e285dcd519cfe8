package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"shelfmerge/internal/application"
	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/ports"
)

const defaultListLimit = 50

// RegisterReadTools adds the read-only collection tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.CollectionStore, evaluator *domain.Evaluator) {
	if evaluator == nil {
		evaluator = domain.NewEvaluator()
	}
	inspect := commands.NewInspectCommand(store, evaluator)
	analyze := commands.NewAnalyzeCommand(store, evaluator)

	s.AddTool(summaryTool(), summaryHandler(inspect))
	s.AddTool(listDiscrepanciesTool(), listDiscrepanciesHandler(analyze))
	s.AddTool(showRecordTool(), showRecordHandler(inspect, evaluator))
	s.AddTool(searchTool(), searchHandler(inspect))
	s.AddTool(findISBNTool(), findISBNHandler(inspect))

	if cached, ok := store.(invalidator); ok {
		s.AddTool(reloadTool(), reloadHandler(cached, inspect))
	}
}

type invalidator interface {
	Invalidate()
}

// --- summary ---

func summaryTool() mcp.Tool {
	return mcp.NewTool("summary",
		mcp.WithDescription("Count merged and unresolved records of the stored collection, and how many merged records disagree per field."),
	)
}

func summaryHandler(inspect *commands.InspectCommand) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := inspect.Summary(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "merged: %d\nunresolved: %d\ndiscrepant: %d\n", summary.Merged, summary.Unresolved, summary.Discrepant)
		if !summary.SavedAt.IsZero() {
			fmt.Fprintf(&sb, "saved at: %s\n", summary.SavedAt.Format(time.RFC3339))
		}
		for _, f := range sortedKeys(summary.ByField) {
			fmt.Fprintf(&sb, "  %s: %d\n", f, summary.ByField[f])
		}
		for _, src := range domain.Sources {
			if n := summary.BySource[src.String()]; n > 0 {
				fmt.Fprintf(&sb, "unresolved from %s: %d\n", src, n)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_discrepancies ---

func listDiscrepanciesTool() mcp.Tool {
	return mcp.NewTool("list_discrepancies",
		mcp.WithDescription("List merged records whose Goodreads and StoryGraph values disagree, with the disagreeing fields."),
		mcp.WithString("field",
			mcp.Description("Only list records disagreeing on this field (e.g. rating, tags, status)."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of records to return (default 50)."),
		),
	)
}

func listDiscrepanciesHandler(analyze *commands.AnalyzeCommand) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		field := domain.Field(req.GetString("field", ""))
		limit := req.GetInt("limit", defaultListLimit)
		if limit <= 0 {
			return toolError(fmt.Errorf("limit must be positive: %w", application.ErrInvalidInput))
		}

		result, err := analyze.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		shown := 0
		for _, r := range result.Reports {
			if field != "" && !hasField(r.Fields, field) {
				continue
			}
			if shown == limit {
				sb.WriteString("...\n")
				break
			}
			fmt.Fprintf(&sb, "%s  %s  [%s]\n", r.Book.ID, r.Book.DisplayTitle(), joinFields(r.Fields))
			shown++
		}
		if shown == 0 {
			return mcp.NewToolResultText("No discrepancies."), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_record ---

func showRecordTool() mcp.Tool {
	return mcp.NewTool("show_record",
		mcp.WithDescription("Show both catalog sides of one record by its ID, marking the fields that disagree."),
		mcp.WithString("id",
			mcp.Description("Record ID as returned by list_discrepancies or search"),
			mcp.Required(),
		),
		mcp.WithBoolean("json",
			mcp.Description("Return the stored record as JSON instead of text."),
		),
	)
}

func showRecordHandler(inspect *commands.InspectCommand, evaluator *domain.Evaluator) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		b, err := inspect.Find(ctx, id)
		if err != nil {
			return toolError(err)
		}

		if req.GetBool("json", false) {
			data, err := json.MarshalIndent(b, "", "  ")
			if err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(string(data)), nil
		}

		var differing []domain.Field
		if b.State.IsSolid() {
			if differing, err = evaluator.Fields(b); err != nil {
				return toolError(err)
			}
		}
		return mcp.NewToolResultText(formatRecord(b, differing)), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search merged and unresolved records by title substring (case-insensitive)."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(inspect *commands.InspectCommand) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := inspect.Search(ctx, query)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, b := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", b.ID, b.DisplayTitle(), b.State)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- find_isbn ---

func findISBNTool() mcp.Tool {
	return mcp.NewTool("find_isbn",
		mcp.WithDescription("Find records by ISBN on either catalog side. Any digits in the value are used, so Goodreads-style =\"...\" cells work too."),
		mcp.WithString("isbn",
			mcp.Description("ISBN-13, ISBN-10 or a raw export cell"),
			mcp.Required(),
		),
	)
}

func findISBNHandler(inspect *commands.InspectCommand) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		results, err := inspect.FindByISBN(ctx, req.GetString("isbn", ""))
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, b := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", b.ID, b.DisplayTitle(), b.State)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- reload ---

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload",
		mcp.WithDescription("Drop the cached collection and read the store again, e.g. after a new collect run."),
	)
}

func reloadHandler(cached invalidator, inspect *commands.InspectCommand) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cached.Invalidate()
		summary, err := inspect.Summary(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Reloaded: %d merged, %d unresolved", summary.Merged, summary.Unresolved)), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, application.ErrNoCollection) {
		return mcp.NewToolResultError("no stored collection yet; run `shelfmerge collect` first"), nil
	}
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRecord(b *domain.Book, differing []domain.Field) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", b.ID, b.State)
	for _, fv := range b.Describe() {
		mark := " "
		if hasField(differing, fv.Field) {
			mark = "!"
		}
		fmt.Fprintf(&sb, "%s %-10s", mark, fv.Field)
		for _, src := range domain.Sources {
			value := fv.Values[src]
			if fv.Absent[src] {
				value = "-"
			}
			fmt.Fprintf(&sb, "  %s: %s", src, value)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func hasField(fields []domain.Field, f domain.Field) bool {
	for _, x := range fields {
		if x == f {
			return true
		}
	}
	return false
}

func joinFields(fields []domain.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func sortedKeys(m map[domain.Field]int) []domain.Field {
	keys := make([]domain.Field, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
