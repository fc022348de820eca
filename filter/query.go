package filter

import (
	"sort"

	"github.com/aarondl/strmangle"
)

// AllValues is the tab value that clears a facet (the "All" tab).
const AllValues = "all"

// Query is the filter state of a list: a free-text search term plus the
// selected values of each facet.
//
// Query is a value type; every method returns a new Query and never mutates
// the receiver's facet map.
type Query struct {
	// Search is matched case-insensitively as a substring of any searchable field.
	Search string

	// Facets maps facet name to selected values. Values within a facet are
	// OR-ed, facets are AND-ed, an empty selection imposes no constraint.
	Facets map[string][]string
}

// NewQuery builds a query with the given search term and no facet selections.
func NewQuery(search string) Query {
	return Query{Search: search}
}

// WithSearch returns a copy with the search term replaced.
func (q Query) WithSearch(search string) Query {
	cp := q.Clone()
	cp.Search = search
	return cp
}

// Toggle returns a copy with value added to facet if absent, removed if present.
func (q Query) Toggle(facet, value string) Query {
	cp := q.Clone()
	selected := cp.Facets[facet]

	if strmangle.SetInclude(value, selected) {
		selected = strmangle.SetComplement(selected, []string{value})
	} else {
		selected = append(selected, value)
	}

	if len(selected) == 0 {
		delete(cp.Facets, facet)
	} else {
		cp.Facets[facet] = selected
	}
	return cp
}

// Set returns a copy with facet's selection replaced by values. Passing no
// values, or the single value AllValues, clears the facet.
func (q Query) Set(facet string, values ...string) Query {
	cp := q.Clone()
	if len(values) == 0 || (len(values) == 1 && values[0] == AllValues) {
		delete(cp.Facets, facet)
		return cp
	}
	cp.Facets[facet] = strmangle.SetMerge(nil, values)
	return cp
}

// Clear returns a copy with the search term and every facet cleared.
func (q Query) Clear() Query {
	return Query{Facets: map[string][]string{}}
}

// Selected returns the selected values of facet, in selection order.
func (q Query) Selected(facet string) []string {
	return append([]string(nil), q.Facets[facet]...)
}

// IsSelected reports whether value is selected in facet.
func (q Query) IsSelected(facet, value string) bool {
	return strmangle.SetInclude(value, q.Facets[facet])
}

// IsZero reports whether the query matches everything.
func (q Query) IsZero() bool {
	if q.Search != "" {
		return false
	}
	for _, values := range q.Facets {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two queries select the same records. Selection order
// within a facet does not matter.
func (q Query) Equal(o Query) bool {
	if q.Search != o.Search {
		return false
	}
	names := facetNames(q)
	if len(names) != len(facetNames(o)) {
		return false
	}
	for _, name := range names {
		a, b := q.Facets[name], o.Facets[name]
		if len(a) != len(b) || len(strmangle.SetComplement(a, b)) != 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the query.
func (q Query) Clone() Query {
	cp := Query{
		Search: q.Search,
		Facets: make(map[string][]string, len(q.Facets)),
	}
	for name, values := range q.Facets {
		if len(values) == 0 {
			continue
		}
		cp.Facets[name] = append([]string(nil), values...)
	}
	return cp
}

// facetNames returns the names of facets with a non-empty selection, sorted.
func facetNames(q Query) []string {
	names := make([]string, 0, len(q.Facets))
	for name, values := range q.Facets {
		if len(values) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
