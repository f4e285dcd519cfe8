package domain

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Field names a tracked field that can disagree between sources
type Field string

const (
	FieldTitle     Field = "title"
	FieldAuthor    Field = "author"
	FieldISBN      Field = "isbn"
	FieldRating    Field = "rating"
	FieldFormat    Field = "format"
	FieldDateRead  Field = "date_read"
	FieldTags      Field = "tags"
	FieldStatus    Field = "status"
	FieldReadCount Field = "read_count"
	FieldOwned     Field = "owned"
)

// DefaultIgnoredTags are dropped from both sides before tags are compared
var DefaultIgnoredTags = []string{"to-read"}

var tagToken = regexp.MustCompile(`\w+(?:-\w+)?`)

// Rule is one field-level equivalence check; Check returns true on disagreement
type Rule struct {
	Field Field
	Check func(*Book) (bool, error)
}

// Evaluator decides whether a solid record disagrees between its sources
type Evaluator struct {
	rules       []Rule
	ignoredTags map[string]bool
}

// EvaluatorOption configures an Evaluator
type EvaluatorOption func(*Evaluator)

// WithIgnoredTags replaces the tags discarded before comparison
func WithIgnoredTags(tags ...string) EvaluatorOption {
	return func(e *Evaluator) {
		e.ignoredTags = make(map[string]bool, len(tags))
		for _, t := range tags {
			e.ignoredTags[foldTag(t)] = true
		}
	}
}

// NewEvaluator creates an evaluator with the standard rules in priority order
func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{}
	WithIgnoredTags(DefaultIgnoredTags...)(e)
	for _, opt := range opts {
		opt(e)
	}

	e.rules = []Rule{
		{Field: FieldRating, Check: func(b *Book) (bool, error) { return RatingsDiffer(b.Rating) }},
		{Field: FieldFormat, Check: func(b *Book) (bool, error) { return FormatsDiffer(b.Format), nil }},
		{Field: FieldDateRead, Check: func(b *Book) (bool, error) { return DatesDiffer(b.DateRead), nil }},
		{Field: FieldTags, Check: func(b *Book) (bool, error) { return TagsDiffer(b.Tags, e.ignoredTags), nil }},
		{Field: FieldStatus, Check: func(b *Book) (bool, error) { return StatusesDiffer(b.Status), nil }},
		{Field: FieldReadCount, Check: func(b *Book) (bool, error) { return ReadCountsDiffer(b.ReadCount), nil }},
		{Field: FieldOwned, Check: func(b *Book) (bool, error) { return OwnedDiffer(b.Owned) }},
	}
	return e
}

// Rules returns the rules in evaluation order
func (e *Evaluator) Rules() []Rule {
	return e.rules
}

// Discrepant reports whether any rule flags the record. It stops at the first hit.
func (e *Evaluator) Discrepant(b *Book) (bool, error) {
	for _, r := range e.rules {
		differ, err := r.Check(b)
		if err != nil {
			return false, err
		}
		if differ {
			return true, nil
		}
	}
	return false, nil
}

// Fields returns every field that disagrees, in rule order
func (e *Evaluator) Fields(b *Book) ([]Field, error) {
	var fields []Field
	for _, r := range e.rules {
		differ, err := r.Check(b)
		if err != nil {
			return nil, err
		}
		if differ {
			fields = append(fields, r.Field)
		}
	}
	return fields, nil
}

// RatingsDiffer compares ratings numerically. A rating on one side only is a discrepancy.
// A rating that is not a number is an input error, not a discrepancy.
func RatingsDiffer(p Pair[string]) (bool, error) {
	a, aok := p.Get(SourceGoodreads)
	b, bok := p.Get(SourceStoryGraph)
	if !aok || !bok {
		return aok != bok, nil
	}

	fa, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return false, &ValueError{Field: FieldRating, Source: SourceGoodreads, Value: a, Err: err}
	}
	fb, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return false, &ValueError{Field: FieldRating, Source: SourceStoryGraph, Value: b, Err: err}
	}
	return fa != fb, nil
}

// FormatsDiffer accepts either format containing the other, ignoring case
func FormatsDiffer(p Pair[string]) bool {
	a, aok := p.Get(SourceGoodreads)
	b, bok := p.Get(SourceStoryGraph)
	if !aok || !bok {
		return aok != bok
	}

	fold := cases.Fold()
	a, b = fold.String(a), fold.String(b)
	return !strings.Contains(a, b) && !strings.Contains(b, a)
}

// DatesDiffer compares the raw date strings; both catalogs write YYYY/MM/DD
func DatesDiffer(p Pair[string]) bool {
	return !rawEqual(p)
}

// TagsDiffer compares the sets of tag words on both sides, ignoring case and
// dropping the ignored tags
func TagsDiffer(p Pair[string], ignored map[string]bool) bool {
	a, aok := p.Get(SourceGoodreads)
	b, bok := p.Get(SourceStoryGraph)
	if !aok || !bok {
		return aok != bok
	}

	ta, tb := TagSet(a, ignored), TagSet(b, ignored)
	if len(ta) != len(tb) {
		return true
	}
	for t := range ta {
		if !tb[t] {
			return true
		}
	}
	return false
}

// TagSet tokenizes a comma or space separated tag list
func TagSet(raw string, ignored map[string]bool) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tagToken.FindAllString(raw, -1) {
		tok = foldTag(tok)
		if ignored[tok] {
			continue
		}
		set[tok] = true
	}
	return set
}

func foldTag(t string) string {
	return cases.Fold().String(strings.TrimSpace(t))
}

// StatusesDiffer compares raw statuses; "dropped" and "did-not-finish" are synonyms
func StatusesDiffer(p Pair[string]) bool {
	if rawEqual(p) {
		return false
	}
	a, aok := p.Get(SourceGoodreads)
	b, bok := p.Get(SourceStoryGraph)
	if aok && bok && isDropped(a) && isDropped(b) {
		return false
	}
	return true
}

func isDropped(status string) bool {
	return status == "dropped" || status == "did-not-finish"
}

// ReadCountsDiffer compares read counts; zero and absent are equivalent
func ReadCountsDiffer(p Pair[int]) bool {
	a, _ := p.Get(SourceGoodreads)
	b, _ := p.Get(SourceStoryGraph)
	return a != b
}

// OwnedDiffer compares Goodreads' owned-copies count with StoryGraph's "Yes"/"No" flag
func OwnedDiffer(p Pair[string]) (bool, error) {
	ownsA := false
	if raw, ok := p.Get(SourceGoodreads); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return false, &ValueError{Field: FieldOwned, Source: SourceGoodreads, Value: raw, Err: err}
		}
		ownsA = n != 0
	}
	flag, _ := p.Get(SourceStoryGraph)
	return ownsA != (flag == "Yes"), nil
}

func rawEqual(p Pair[string]) bool {
	a, aok := p.Get(SourceGoodreads)
	b, bok := p.Get(SourceStoryGraph)
	return aok == bok && a == b
}
