package domain

import "strings"

// Collection is the outcome of a collect run: records matched across both
// catalogs and records that stayed single-sided
type Collection struct {
	Merged     []*Book `json:"merged" yaml:"merged"`
	Unresolved []*Book `json:"unresolved" yaml:"unresolved"`
}

// Find returns the record with the given ID from either list
func (c *Collection) Find(id string) *Book {
	for _, list := range [][]*Book{c.Merged, c.Unresolved} {
		for _, b := range list {
			if b.ID == id {
				return b
			}
		}
	}
	return nil
}

// Search returns records whose title on either side contains query, ignoring case
func (c *Collection) Search(query string) []*Book {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var results []*Book
	for _, list := range [][]*Book{c.Merged, c.Unresolved} {
		for _, b := range list {
			for _, src := range Sources {
				if t, ok := b.Title.Get(src); ok && strings.Contains(strings.ToLower(t), query) {
					results = append(results, b)
					break
				}
			}
		}
	}
	return results
}

// FindByKey returns records whose identity key on either side equals key
func (c *Collection) FindByKey(key Key) []*Book {
	var results []*Book
	for _, list := range [][]*Book{c.Merged, c.Unresolved} {
		for _, b := range list {
			for _, src := range Sources {
				if k, ok := b.Key(src); ok && k == key {
					results = append(results, b)
					break
				}
			}
		}
	}
	return results
}
