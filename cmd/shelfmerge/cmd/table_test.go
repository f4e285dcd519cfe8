package cmd

import (
	"strings"
	"testing"

	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/domain"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"Records", "Count"}, [][]string{{"merged", "12"}, {"unresolved"}}, []columnAlignment{alignLeft, alignRight})

	for _, want := range []string{"RECORDS", "merged", "12", "unresolved", "╭"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("table without headers should be empty")
	}
}

func TestSideValues(t *testing.T) {
	b := domain.NewBook()
	_ = b.Assign(domain.Row{Source: domain.SourceGoodreads, Title: domain.Ptr("Babel"), Rating: domain.Ptr("5"), Format: domain.Ptr("Hardcover")})
	_ = b.Assign(domain.Row{Source: domain.SourceStoryGraph, Title: domain.Ptr("Babel"), Format: domain.Ptr("hardcover")})
	r := commands.Report{Book: b, Fields: []domain.Field{domain.FieldRating}}

	if got := sideValues(r, domain.SourceGoodreads); got != "rating: 5" {
		t.Errorf("goodreads side = %q", got)
	}
	if got := sideValues(r, domain.SourceStoryGraph); got != "rating: -" {
		t.Errorf("storygraph side = %q", got)
	}
	if got := fieldNames(r.Fields); got != "rating" {
		t.Errorf("field names = %q", got)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0f8fad5b-d9cb-469f-a165-70867728950e"); got != "0f8fad5b" {
		t.Errorf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q", got)
	}
}
