package domain

import "fmt"

// Source identifies one of the two catalogs being reconciled.
// Its value doubles as the slot index in every Pair.
type Source int

const (
	SourceGoodreads  Source = iota // source A
	SourceStoryGraph               // source B
)

// Sources lists both catalogs in slot order
var Sources = [2]Source{SourceGoodreads, SourceStoryGraph}

// String returns a human-readable name for the source
func (s Source) String() string {
	switch s {
	case SourceGoodreads:
		return "goodreads"
	case SourceStoryGraph:
		return "storygraph"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Other returns the opposite catalog
func (s Source) Other() Source {
	if s == SourceGoodreads {
		return SourceStoryGraph
	}
	return SourceGoodreads
}

// Valid reports whether s names one of the two catalogs
func (s Source) Valid() bool {
	return s == SourceGoodreads || s == SourceStoryGraph
}

// ParseSource converts a name such as "goodreads" into a Source
func ParseSource(name string) (Source, error) {
	switch name {
	case "goodreads":
		return SourceGoodreads, nil
	case "storygraph":
		return SourceStoryGraph, nil
	default:
		return 0, fmt.Errorf("unknown source %q", name)
	}
}
