package store

import (
	"github.com/nrfta/listing-go"
	"github.com/nrfta/listing-go/filter"
	"github.com/nrfta/listing-go/offset"
)

// Snapshot is one computed visible page of a View. It is immutable.
type Snapshot[T any] struct {
	// Records on the visible page, at most PageSize of them.
	Records []T

	// Tokens is the page strip for the filtered total.
	Tokens []listing.Token

	CurrentPage int
	TotalPages  int
	TotalCount  int
	PageSize    int

	// Query is the filter state the page was computed with.
	Query filter.Query

	// Version is the collection version the page was computed from.
	Version uint64

	PageInfo *listing.PageInfo

	page *listing.Page[T]
}

func newSnapshot[T any](page *listing.Page[T], q filter.Query, version uint64) (*Snapshot[T], error) {
	info := page.PageInfo

	total, err := info.TotalCount()
	if err != nil {
		return nil, err
	}
	totalPages, err := info.TotalPages()
	if err != nil {
		return nil, err
	}
	current, err := info.CurrentPage()
	if err != nil {
		return nil, err
	}
	size, err := info.PageSize()
	if err != nil {
		return nil, err
	}
	tokens, err := info.Tokens()
	if err != nil {
		return nil, err
	}

	count := 0
	if total != nil {
		count = *total
	}

	return &Snapshot[T]{
		Records:     page.Nodes,
		Tokens:      tokens,
		CurrentPage: current,
		TotalPages:  totalPages,
		TotalCount:  count,
		PageSize:    size,
		Query:       q,
		Version:     version,
		PageInfo:    info,
		page:        page,
	}, nil
}

// RowNumber returns the 1-based row number of the i-th visible record,
// continuing across pages.
func (s *Snapshot[T]) RowNumber(i int) int {
	return (s.CurrentPage-1)*s.PageSize + i + 1
}

// HasPrevious reports whether a previous page exists.
func (s *Snapshot[T]) HasPrevious() bool {
	return s.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (s *Snapshot[T]) HasNext() bool {
	return s.CurrentPage < s.TotalPages
}

// Connection returns the page as a listing.Connection with offset cursors.
func (s *Snapshot[T]) Connection() (*listing.Connection[T], error) {
	return offset.BuildConnection(s.page, func(rec T) (T, error) { return rec, nil })
}
