package listing

import "context"

// Paginator is the core interface for page-number pagination.
// The offset package provides the implementation used by list views.
//
// Type parameter T is the record type being paginated (e.g., Quiz, Coupon).
type Paginator[T any] interface {
	// Paginate resolves the requested page against the current data and
	// returns the records for that page along with the page strip.
	// The page in args is clamped, never rejected.
	Paginate(ctx context.Context, args *PageArgs) (*Page[T], error)
}

// Page represents a single page of paginated results.
// It contains the records, pagination metadata, and observability information.
//
// Type parameter T is the record type being paginated.
type Page[T any] struct {
	// Nodes contains the records for this page.
	Nodes []T

	// PageInfo contains pagination metadata (current page, total pages, tokens, etc.)
	PageInfo *PageInfo

	// Metadata provides observability and debugging information.
	Metadata Metadata
}

// Metadata provides observability and debugging information about pagination execution.
type Metadata struct {
	// Strategy identifies which pagination strategy was used.
	// Values: "offset"
	Strategy string

	// QueryTimeMs is the total time spent fetching and counting records.
	QueryTimeMs int64

	// ItemsExamined is the number of records that matched the filters.
	ItemsExamined int

	// Clamped is true when the requested page was out of range and was
	// moved back into [1, totalPages].
	Clamped bool
}

// Fetcher abstracts the record source for a paginator.
// The store package implements it over an in-memory collection, applying the
// search and facet filters carried in FetchParams.
//
// Type parameter T is the record type.
type Fetcher[T any] interface {
	// Fetch retrieves the records in [Offset, Offset+Limit) of the filtered sequence.
	Fetch(ctx context.Context, params FetchParams) ([]T, error)

	// Count returns the total number of records matching the filters (without pagination).
	Count(ctx context.Context, params FetchParams) (int64, error)
}

// FetchParams contains all parameters needed to fetch a page of data.
type FetchParams struct {
	// Limit is the maximum number of records to fetch.
	Limit int

	// Offset is the number of filtered records to skip.
	Offset int

	// Search is the free-text query. Empty matches everything.
	Search string

	// Facets maps a facet name to its selected values.
	// A facet with no selected values imposes no constraint.
	Facets map[string][]string
}

// FilterFunc is a generic filter function over a batch of records.
// It receives a batch and returns the ordered subset that passes.
//
// Type parameter T is the record type being filtered.
//
// Example:
//
//	published := func(ctx context.Context, quizzes []Quiz) ([]Quiz, error) {
//	    out := []Quiz{}
//	    for _, q := range quizzes {
//	        if q.Status == "Published" {
//	            out = append(out, q)
//	        }
//	    }
//	    return out, nil
//	}
type FilterFunc[T any] func(ctx context.Context, items []T) ([]T, error)
