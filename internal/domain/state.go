package domain

import "fmt"

// State is the provenance of a Book. It replaces a pair of presence flags plus
// a tombstone so that a record can never be "solid" and "merged away" at once.
type State int

const (
	StateEmpty           State = iota // no source assigned yet
	StateNeedsStoryGraph              // goodreads data only
	StateNeedsGoodreads               // storygraph data only
	StateSolid                        // data from both sources
	StateMergedAway                   // folded into another record
)

var stateNames = map[State]string{
	StateEmpty:           "empty",
	StateNeedsStoryGraph: "needs-storygraph",
	StateNeedsGoodreads:  "needs-goodreads",
	StateSolid:           "solid",
	StateMergedAway:      "merged-away",
}

// String returns the persisted name of the state
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ParseState converts a persisted name back into a State
func ParseState(name string) (State, error) {
	for state, n := range stateNames {
		if n == name {
			return state, nil
		}
	}
	return StateEmpty, fmt.Errorf("unknown record state %q", name)
}

// Has reports whether the record carries data from src
func (s State) Has(src Source) bool {
	switch s {
	case StateSolid:
		return true
	case StateNeedsStoryGraph:
		return src == SourceGoodreads
	case StateNeedsGoodreads:
		return src == SourceStoryGraph
	default:
		return false
	}
}

// Single returns the one source present and the one missing.
// ok is false unless exactly one source is present.
func (s State) Single() (present, missing Source, ok bool) {
	switch s {
	case StateNeedsStoryGraph:
		return SourceGoodreads, SourceStoryGraph, true
	case StateNeedsGoodreads:
		return SourceStoryGraph, SourceGoodreads, true
	default:
		return 0, 0, false
	}
}

// With returns the state after data from src has been added.
// A merged-away record stays merged away.
func (s State) With(src Source) State {
	switch s {
	case StateEmpty:
		if src == SourceGoodreads {
			return StateNeedsStoryGraph
		}
		return StateNeedsGoodreads
	case StateNeedsStoryGraph:
		if src == SourceStoryGraph {
			return StateSolid
		}
	case StateNeedsGoodreads:
		if src == SourceGoodreads {
			return StateSolid
		}
	}
	return s
}

// IsSolid reports whether both sources are present
func (s State) IsSolid() bool { return s == StateSolid }

// IsMergedAway reports whether the record was consumed by a merge
func (s State) IsMergedAway() bool { return s == StateMergedAway }

// MarshalText implements encoding.TextMarshaler
func (s State) MarshalText() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, fmt.Errorf("unknown record state %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *State) UnmarshalText(text []byte) error {
	parsed, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML writes the state as its name
func (s State) MarshalYAML() (any, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML reads the state from its name
func (s *State) UnmarshalYAML(unmarshal func(any) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	return s.UnmarshalText([]byte(name))
}
