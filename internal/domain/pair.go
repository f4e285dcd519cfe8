package domain

import "fmt"

// Pair holds one value per source, indexed by Source. A nil slot is absent.
// It serializes as a two-element array: [goodreads, storygraph].
type Pair[T any] [2]*T

// PairOf builds a pair from two optional values
func PairOf[T any](goodreads, storygraph *T) Pair[T] {
	return Pair[T]{goodreads, storygraph}
}

// Ptr returns a pointer to v; handy for building pairs
func Ptr[T any](v T) *T {
	return &v
}

// Get returns the value for src and whether it is present
func (p Pair[T]) Get(src Source) (T, bool) {
	if v := p[src]; v != nil {
		return *v, true
	}
	var zero T
	return zero, false
}

// Has reports whether src has a value
func (p Pair[T]) Has(src Source) bool {
	return p[src] != nil
}

// Set stores v for src
func (p *Pair[T]) Set(src Source, v T) {
	p[src] = &v
}

// Clear marks the value for src as absent
func (p *Pair[T]) Clear(src Source) {
	p[src] = nil
}

// copyFrom copies the src slot of other into p
func (p *Pair[T]) copyFrom(other Pair[T], src Source) {
	if other[src] == nil {
		p[src] = nil
		return
	}
	v := *other[src]
	p[src] = &v
}

// MarshalYAML writes the pair as a two-element sequence
func (p Pair[T]) MarshalYAML() (any, error) {
	return []*T{p[0], p[1]}, nil
}

// UnmarshalYAML reads a sequence of at most two elements
func (p *Pair[T]) UnmarshalYAML(unmarshal func(any) error) error {
	var values []*T
	if err := unmarshal(&values); err != nil {
		return err
	}
	if len(values) > 2 {
		return fmt.Errorf("pair has %d values, expected 2", len(values))
	}
	*p = Pair[T]{}
	copy(p[:], values)
	return nil
}
