package domain

import "strings"

// TitlesOverlap reports whether one title contains the other (case-sensitive).
// Empty titles never match.
func TitlesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Decision is the answer of whoever confirms an ambiguous match
type Decision int

const (
	DecisionDecline Decision = iota
	DecisionConfirm
)

func (d Decision) String() string {
	if d == DecisionConfirm {
		return "merge"
	}
	return "skip"
}
