package commands

import (
	"context"
	"encoding/json"

	"shelfmerge/internal/application"
	"shelfmerge/internal/domain"
)

type sliceSource struct {
	src  domain.Source
	rows []domain.Row
	err  error
}

func (s *sliceSource) Source() domain.Source { return s.src }

func (s *sliceSource) Rows(ctx context.Context) ([]domain.Row, error) {
	return s.rows, s.err
}

// scriptedConfirmer answers with decisions in order and confirms once they run out
type scriptedConfirmer struct {
	decisions []domain.Decision
	err       error
	calls     [][2]string
}

func (c *scriptedConfirmer) Confirm(ctx context.Context, current, candidate *domain.Book) (domain.Decision, error) {
	c.calls = append(c.calls, [2]string{current.DisplayTitle(), candidate.DisplayTitle()})
	if c.err != nil {
		return domain.DecisionDecline, c.err
	}
	if len(c.decisions) == 0 {
		return domain.DecisionConfirm, nil
	}
	d := c.decisions[0]
	c.decisions = c.decisions[1:]
	return d, nil
}

// memStore keeps the collection as JSON so loads return fresh records
type memStore struct {
	data  []byte
	saves int
}

func (s *memStore) Save(ctx context.Context, c *domain.Collection) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	s.data = data
	s.saves++
	return nil
}

func (s *memStore) Load(ctx context.Context) (*domain.Collection, error) {
	if s.data == nil {
		return nil, application.ErrNoCollection
	}
	var c domain.Collection
	if err := json.Unmarshal(s.data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *memStore) Location() string { return "memory" }
func (s *memStore) Close() error     { return nil }

func gr(line int, title, isbn, rating string) domain.Row {
	r := domain.Row{Source: domain.SourceGoodreads, Line: line, Title: domain.Ptr(title), ISBN: domain.Ptr(isbn)}
	if rating != "" {
		r.Rating = domain.Ptr(rating)
	}
	return r
}

func sg(line int, title, isbn, rating string) domain.Row {
	r := domain.Row{Source: domain.SourceStoryGraph, Line: line, Title: domain.Ptr(title), Owned: domain.Ptr("No")}
	if isbn != "" {
		r.ISBN = domain.Ptr(isbn)
	}
	if rating != "" {
		r.Rating = domain.Ptr(rating)
	}
	return r
}

func titles(books []*domain.Book) []string {
	out := make([]string, 0, len(books))
	for _, b := range books {
		out = append(out, b.DisplayTitle())
	}
	return out
}
