// Package filter implements the list filter engine: a free-text search over a
// configurable set of fields combined with multi-select facets.
//
// A record passes a Query when
//
//	(search == "" OR any searchable field contains search, case-insensitive)
//	AND (for every facet with a selection, the record's value is selected)
//
// Values within one facet are OR-ed; facets are AND-ed; a facet with nothing
// selected imposes no constraint.
//
// Example:
//
//	var quizSchema = filter.NewSchema[Quiz]().
//	    Search("title", func(q Quiz) string { return q.Title }).
//	    Facet("status", func(q Quiz) string { return q.Status }).
//	    Facet("difficulty", func(q Quiz) string { return q.Difficulty })
//
//	q := filter.NewQuery("").Toggle("status", "Published")
//	published := quizSchema.Apply(quizzes, q)
package filter

import (
	"context"
	"strings"

	"github.com/aarondl/strmangle"
	"github.com/friendsofgo/errors"

	"github.com/nrfta/listing-go"
)

// ErrUnknownFacet is returned when a query names a facet the schema does not declare.
var ErrUnknownFacet = errors.New("unknown facet")

// fieldSpec is a named extractor. Single-valued fields are stored as
// one-element extractors so search and facet code handle one shape.
type fieldSpec[T any] struct {
	name      string
	extractor func(T) []string
}

// Schema declares which fields of T are searchable and which are facets.
type Schema[T any] struct {
	searchFields []*fieldSpec[T]
	facets       map[string]*fieldSpec[T]
	facetOrder   []string
}

// NewSchema creates an empty Schema.
func NewSchema[T any]() *Schema[T] {
	return &Schema[T]{
		searchFields: make([]*fieldSpec[T], 0),
		facets:       make(map[string]*fieldSpec[T]),
		facetOrder:   make([]string, 0),
	}
}

// Search adds a searchable text field.
func (s *Schema[T]) Search(name string, extractor func(T) string) *Schema[T] {
	return s.SearchAll(name, func(item T) []string { return []string{extractor(item)} })
}

// SearchAll adds a searchable multi-valued field; the record matches if any
// value contains the search term (e.g. every question text of a quiz).
func (s *Schema[T]) SearchAll(name string, extractor func(T) []string) *Schema[T] {
	s.searchFields = append(s.searchFields, &fieldSpec[T]{name: name, extractor: extractor})
	return s
}

// Facet adds a single-valued facet.
func (s *Schema[T]) Facet(name string, extractor func(T) string) *Schema[T] {
	return s.FacetSet(name, func(item T) []string { return []string{extractor(item)} })
}

// FacetSet adds a multi-valued facet (e.g. the roles allowed on a permission).
// The record matches when any of its values is selected.
func (s *Schema[T]) FacetSet(name string, extractor func(T) []string) *Schema[T] {
	if _, exists := s.facets[name]; !exists {
		s.facetOrder = append(s.facetOrder, name)
	}
	s.facets[name] = &fieldSpec[T]{name: name, extractor: extractor}
	return s
}

// SearchFields returns the names of the searchable fields in declaration order.
func (s *Schema[T]) SearchFields() []string {
	names := make([]string, len(s.searchFields))
	for i, f := range s.searchFields {
		names[i] = f.name
	}
	return names
}

// Facets returns the facet names in declaration order.
func (s *Schema[T]) Facets() []string {
	return append([]string(nil), s.facetOrder...)
}

// HasFacet reports whether the schema declares facet.
func (s *Schema[T]) HasFacet(name string) bool {
	_, ok := s.facets[name]
	return ok
}

// Validate checks that every facet selected in q is declared.
func (s *Schema[T]) Validate(q Query) error {
	for name, values := range q.Facets {
		if len(values) == 0 {
			continue
		}
		if !s.HasFacet(name) {
			return errors.Wrapf(ErrUnknownFacet, "facet %q", name)
		}
	}
	return nil
}

// Matches reports whether item passes q. Undeclared facets never match;
// call Validate first to surface them as errors.
func (s *Schema[T]) Matches(item T, q Query) bool {
	return s.matchesSearch(item, strings.ToLower(q.Search)) && s.matchesFacets(item, q)
}

// Apply returns the ordered subsequence of items that pass q.
// The input slice is never modified.
func (s *Schema[T]) Apply(items []T, q Query) []T {
	needle := strings.ToLower(q.Search)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if s.matchesSearch(item, needle) && s.matchesFacets(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// FilterFunc adapts the schema and query to a listing.FilterFunc.
func (s *Schema[T]) FilterFunc(q Query) listing.FilterFunc[T] {
	return func(ctx context.Context, items []T) ([]T, error) {
		if err := s.Validate(q); err != nil {
			return nil, err
		}
		return s.Apply(items, q), nil
	}
}

// FacetValues returns the distinct values of facet across items, in the
// order they are first seen. List pages use it to build facet dropdowns.
func (s *Schema[T]) FacetValues(items []T, facet string) ([]string, error) {
	spec, ok := s.facets[facet]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownFacet, "facet %q", facet)
	}
	values := []string{}
	for _, item := range items {
		for _, v := range spec.extractor(item) {
			if !strmangle.SetInclude(v, values) {
				values = append(values, v)
			}
		}
	}
	return values, nil
}

func (s *Schema[T]) matchesSearch(item T, needle string) bool {
	if needle == "" {
		return true
	}
	for _, f := range s.searchFields {
		for _, v := range f.extractor(item) {
			if strings.Contains(strings.ToLower(v), needle) {
				return true
			}
		}
	}
	return false
}

func (s *Schema[T]) matchesFacets(item T, q Query) bool {
	for name, selected := range q.Facets {
		if len(selected) == 0 {
			continue
		}
		spec, ok := s.facets[name]
		if !ok {
			return false
		}
		if !anySelected(spec.extractor(item), selected) {
			return false
		}
	}
	return true
}

func anySelected(values, selected []string) bool {
	for _, v := range values {
		if strmangle.SetInclude(v, selected) {
			return true
		}
	}
	return false
}
