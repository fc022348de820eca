// Package offset provides page-number pagination over a listing.Fetcher.
//
// The paginator counts the filtered records, clamps the requested page into
// range, fetches the slice for that page and plans the page strip. It is the
// read path behind every list view.
//
// Example usage:
//
//	paginator := offset.New(fetcher, listing.WithDefaultSize(10))
//	page, err := paginator.Paginate(ctx, listing.NewPageArgs(3, 0))
//	tokens, _ := page.PageInfo.Tokens()
package offset

import (
	"context"
	"time"

	"github.com/friendsofgo/errors"

	"github.com/nrfta/listing-go"
)

// Paginator implements listing.Paginator for page-number pagination.
type Paginator[T any] struct {
	fetcher listing.Fetcher[T]
	config  *listing.PageConfig
	params  listing.FetchParams
}

// New creates a new offset paginator.
//
// Parameters:
//   - fetcher: Record source; it applies the filters carried in FetchParams
//   - opts: Page size options (listing.WithDefaultSize, listing.WithMaxSize)
//
// The paginator automatically handles:
//   - Default page size of 10 records
//   - Zero-value protection to prevent divide-by-zero errors
//   - Clamping out-of-range pages instead of failing
//   - Strip planning for the filtered total
func New[T any](fetcher listing.Fetcher[T], opts ...listing.PaginateOption) *Paginator[T] {
	return &Paginator[T]{
		fetcher: fetcher,
		config:  listing.ApplyPaginateOptions(opts...),
	}
}

// WithFilters returns a copy of the paginator that passes the given search and
// facet selections to its fetcher.
func (p *Paginator[T]) WithFilters(search string, facets map[string][]string) *Paginator[T] {
	cp := *p
	cp.params = listing.FetchParams{Search: search, Facets: facets}
	return &cp
}

// PageSize returns the page size used for the given args.
func (p *Paginator[T]) PageSize(args *listing.PageArgs) int {
	return p.config.EffectiveSize(args)
}

// Paginate implements listing.Paginator.
func (p *Paginator[T]) Paginate(ctx context.Context, args *listing.PageArgs) (*listing.Page[T], error) {
	start := time.Now()
	size := p.config.EffectiveSize(args)

	params := p.params
	total, err := p.fetcher.Count(ctx, params)
	if err != nil {
		return nil, errors.Wrap(err, "count records")
	}

	requested := args.GetPage()
	totalPages := listing.TotalPages(int(total), size)
	current := listing.ClampPage(requested, totalPages)

	params.Offset = (current - 1) * size
	params.Limit = size

	nodes := []T{}
	if total > 0 {
		nodes, err = p.fetcher.Fetch(ctx, params)
		if err != nil {
			return nil, errors.Wrap(err, "fetch page")
		}
	}
	if len(nodes) > size {
		nodes = nodes[:size]
	}

	pageInfo := newPageInfo(size, int(total), current)

	return &listing.Page[T]{
		Nodes:    nodes,
		PageInfo: &pageInfo,
		Metadata: listing.Metadata{
			Strategy:      "offset",
			QueryTimeMs:   time.Since(start).Milliseconds(),
			ItemsExamined: int(total),
			Clamped:       requested != current,
		},
	}, nil
}

// BuildConnection turns a page into a listing.Connection with 1-based row
// numbers that continue across pages. Each edge cursor encodes the row's
// 0-based offset, so PageForCursor finds its page again.
func BuildConnection[From any, To any](
	page *listing.Page[From],
	transform func(From) (To, error),
) (*listing.Connection[To], error) {
	current, _ := page.PageInfo.CurrentPage()
	size, _ := page.PageInfo.PageSize()
	startOffset := (current - 1) * size

	return listing.BuildConnection(
		page.Nodes,
		*page.PageInfo,
		startOffset+1,
		func(i int, _ From) string {
			return *EncodeCursor(startOffset + i)
		},
		transform,
	)
}

// newPageInfo creates PageInfo for page-number pagination.
//
// The end cursor points to the first record of the last page.
func newPageInfo(pageSize, totalCount, currentPage int) listing.PageInfo {
	totalPages := listing.TotalPages(totalCount, pageSize)
	endOffset := 0
	if totalPages > 0 {
		endOffset = (totalPages - 1) * pageSize
	}

	return listing.PageInfo{
		TotalCount:      func() (*int, error) { return &totalCount, nil },
		TotalPages:      func() (int, error) { return totalPages, nil },
		PageSize:        func() (int, error) { return pageSize, nil },
		CurrentPage:     func() (int, error) { return currentPage, nil },
		StartCursor:     func() (*string, error) { return EncodeCursor(0), nil },
		EndCursor:       func() (*string, error) { return EncodeCursor(endOffset), nil },
		HasNextPage:     func() (bool, error) { return currentPage < totalPages, nil },
		HasPreviousPage: func() (bool, error) { return currentPage > 1, nil },
		Tokens: func() ([]listing.Token, error) {
			return listing.PlanStrip(totalCount, pageSize, currentPage), nil
		},
	}
}
