package keys

import (
	"fmt"
	"slices"
)

// Schema is an immutable table of named layouts. It is built once per indexer type
// and shared by reference.
type Schema struct {
	layouts []*Layout
	byName  map[string]*Layout
	byTag   map[byte]*Layout
}

// NewSchema builds a schema, rejecting duplicate layout names and tags.
func NewSchema(layouts ...*Layout) (*Schema, error) {
	s := &Schema{
		layouts: make([]*Layout, 0, len(layouts)),
		byName:  make(map[string]*Layout, len(layouts)),
		byTag:   make(map[byte]*Layout, len(layouts)),
	}

	for _, l := range layouts {
		if l == nil {
			return nil, fmt.Errorf("schema: nil layout")
		}
		if _, ok := s.byName[l.name]; ok {
			return nil, fmt.Errorf("schema: duplicate layout name %q", l.name)
		}
		if other, ok := s.byTag[l.tag]; ok {
			return nil, fmt.Errorf("schema: layouts %q and %q share tag %q", other.name, l.name, l.tag)
		}

		s.layouts = append(s.layouts, l)
		s.byName[l.name] = l
		s.byTag[l.tag] = l
	}

	return s, nil
}

// MustSchema is NewSchema for package-level schema tables.
func MustSchema(layouts ...*Layout) *Schema {
	s, err := NewSchema(layouts...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) Layout(name string) (*Layout, bool) {
	l, ok := s.byName[name]
	return l, ok
}

func (s *Schema) ByTag(tag byte) (*Layout, bool) {
	l, ok := s.byTag[tag]
	return l, ok
}

// Layouts returns the layouts in declaration order.
func (s *Schema) Layouts() []*Layout {
	return slices.Clone(s.layouts)
}
