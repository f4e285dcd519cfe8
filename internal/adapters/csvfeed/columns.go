package csvfeed

import "shelfmerge/internal/domain"

// Columns maps each row field to the export's header name
type Columns struct {
	Title     string
	Author    string
	ISBN      string
	Rating    string
	Format    string
	DateRead  string
	Tags      string
	Status    string
	ReadCount string
	Owned     string
}

// GoodreadsColumns matches the "Export Library" CSV from Goodreads
var GoodreadsColumns = Columns{
	Title:     "Title",
	Author:    "Author",
	ISBN:      "ISBN13",
	Rating:    "My Rating",
	Format:    "Binding",
	DateRead:  "Date Read",
	Tags:      "Bookshelves",
	Status:    "Exclusive Shelf",
	ReadCount: "Read Count",
	Owned:     "Owned Copies",
}

// StoryGraphColumns matches the StoryGraph library export
var StoryGraphColumns = Columns{
	Title:     "Title",
	Author:    "Authors",
	ISBN:      "ISBN/UID",
	Rating:    "Star Rating",
	Format:    "Format",
	DateRead:  "Last Date Read",
	Tags:      "Tags",
	Status:    "Read Status",
	ReadCount: "Read Count",
	Owned:     "Owned?",
}

// ColumnsFor returns the standard mapping of a catalog
func ColumnsFor(src domain.Source) Columns {
	if src == domain.SourceStoryGraph {
		return StoryGraphColumns
	}
	return GoodreadsColumns
}

func (c Columns) names() []string {
	return []string{c.Title, c.Author, c.ISBN, c.Rating, c.Format, c.DateRead, c.Tags, c.Status, c.ReadCount, c.Owned}
}

func (c Columns) targets(r *domain.Row) []**string {
	return []**string{&r.Title, &r.Author, &r.ISBN, &r.Rating, &r.Format, &r.DateRead, &r.Tags, &r.Status, &r.ReadCount, &r.Owned}
}
