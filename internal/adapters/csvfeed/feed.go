// Package csvfeed reads Goodreads and StoryGraph library exports into rows
package csvfeed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"shelfmerge/internal/domain"
)

// Feed reads one catalog export from a CSV file
type Feed struct {
	source  domain.Source
	path    string
	columns Columns
}

// Option configures a Feed
type Option func(*Feed)

// WithColumns overrides the header names looked up in the export
func WithColumns(c Columns) Option {
	return func(f *Feed) { f.columns = c }
}

// New creates a feed for the export at path
func New(src domain.Source, path string, opts ...Option) *Feed {
	f := &Feed{source: src, path: path, columns: ColumnsFor(src)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Feed) Source() domain.Source { return f.source }

func (f *Feed) Path() string { return f.path }

// Rows reads every data row of the export
func (f *Feed) Rows(ctx context.Context) ([]domain.Row, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s export: %w", f.source, err)
	}
	defer file.Close()

	return Parse(ctx, f.source, file, f.columns)
}

// Parse reads rows from r. Columns are located by header name; a missing
// column leaves that field absent on every row.
func Parse(ctx context.Context, src domain.Source, r io.Reader, columns Columns) ([]domain.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", src, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	positions := make([]int, 0, 10)
	for _, name := range columns.names() {
		pos, ok := index[name]
		if !ok {
			pos = -1
		}
		positions = append(positions, pos)
	}
	if positions[0] < 0 {
		return nil, fmt.Errorf("%s export has no %q column", src, columns.Title)
	}

	var rows []domain.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s export: %w", src, err)
		}

		// quoted cells may span lines, so the physical start line is used
		line, _ := reader.FieldPos(0)
		row := domain.Row{Source: src, Line: line}
		for i, target := range columns.targets(&row) {
			*target = cell(record, positions[i])
		}
		normalize(&row)
		rows = append(rows, row)
	}
	return rows, nil
}

// cell returns the trimmed value at pos, or nil when the cell is empty or missing
func cell(record []string, pos int) *string {
	if pos < 0 || pos >= len(record) {
		return nil
	}
	v := strings.TrimSpace(record[pos])
	if v == "" {
		return nil
	}
	return &v
}

// normalize maps source-specific "no value" markers to absent
func normalize(row *domain.Row) {
	if row.Source == domain.SourceGoodreads && row.Rating != nil && *row.Rating == "0" {
		// Goodreads writes 0 for unrated books
		row.Rating = nil
	}
}
