package application

import "shelfmerge/internal/domain"

// Scope selects which catalogs a collect run reads
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeGoodreads  Scope = "goodreads"
	ScopeStoryGraph Scope = "storygraph"
)

// Sources returns the catalogs covered by the scope, or false for an unknown scope
func (s Scope) Sources() ([]domain.Source, bool) {
	switch s {
	case ScopeAll, "":
		return []domain.Source{domain.SourceGoodreads, domain.SourceStoryGraph}, true
	case ScopeGoodreads:
		return []domain.Source{domain.SourceGoodreads}, true
	case ScopeStoryGraph:
		return []domain.Source{domain.SourceStoryGraph}, true
	}
	return nil, false
}
