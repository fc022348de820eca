package store

import (
	"context"

	"github.com/nrfta/listing-go"
	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
)

// SliceFetcher implements listing.Fetcher over a fixed slice, filtering with
// schema using the search and facets carried in FetchParams.
type SliceFetcher[T any] struct {
	items  []T
	schema *filter.Schema[T]
}

// NewSliceFetcher creates a fetcher over items. The slice is not copied and
// must not be modified while the fetcher is in use.
func NewSliceFetcher[T any](items []T, schema *filter.Schema[T]) *SliceFetcher[T] {
	return &SliceFetcher[T]{items: items, schema: schema}
}

// Fetch implements listing.Fetcher.
func (f *SliceFetcher[T]) Fetch(ctx context.Context, params listing.FetchParams) ([]T, error) {
	matched, err := f.filtered(ctx, params)
	if err != nil {
		return nil, err
	}

	start := max(params.Offset, 0)
	if start >= len(matched) {
		return []T{}, nil
	}
	end := len(matched)
	if params.Limit > 0 {
		end = min(start+params.Limit, end)
	}
	return matched[start:end], nil
}

// Count implements listing.Fetcher.
func (f *SliceFetcher[T]) Count(ctx context.Context, params listing.FetchParams) (int64, error) {
	matched, err := f.filtered(ctx, params)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (f *SliceFetcher[T]) filtered(ctx context.Context, params listing.FetchParams) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := filter.Query{Search: params.Search, Facets: params.Facets}
	return f.schema.FilterFunc(q)(ctx, f.items)
}

// Fetcher returns a listing.Fetcher that reads a fresh snapshot of the
// collection on every call.
func (c *Collection[T]) Fetcher(schema *filter.Schema[T]) listing.Fetcher[T] {
	return &liveFetcher[T]{coll: c, schema: schema}
}

type liveFetcher[T crud.Entity[T]] struct {
	coll   *Collection[T]
	schema *filter.Schema[T]
}

func (f *liveFetcher[T]) Fetch(ctx context.Context, params listing.FetchParams) ([]T, error) {
	return NewSliceFetcher(f.coll.Snapshot(), f.schema).Fetch(ctx, params)
}

func (f *liveFetcher[T]) Count(ctx context.Context, params listing.FetchParams) (int64, error) {
	return NewSliceFetcher(f.coll.Snapshot(), f.schema).Count(ctx, params)
}
