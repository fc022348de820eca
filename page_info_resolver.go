package listing

import (
	"context"
)

// PageInfoResolver interface
type PageInfoResolver interface {
	HasPreviousPage(ctx context.Context, pageInfo *PageInfo) (bool, error)
	HasNextPage(ctx context.Context, pageInfo *PageInfo) (bool, error)
	TotalCount(ctx context.Context, pageInfo *PageInfo) (*int, error)
	TotalPages(ctx context.Context, pageInfo *PageInfo) (int, error)
	CurrentPage(ctx context.Context, pageInfo *PageInfo) (int, error)
	StartCursor(ctx context.Context, pageInfo *PageInfo) (*string, error)
	EndCursor(ctx context.Context, pageInfo *PageInfo) (*string, error)
	Tokens(ctx context.Context, pageInfo *PageInfo) ([]string, error)
}

type pageInfoResolver struct{}

// NewPageInfoResolver returns the resolver for PageInfo
func NewPageInfoResolver() PageInfoResolver {
	return &pageInfoResolver{}
}

func (r *pageInfoResolver) TotalCount(ctx context.Context, pageInfo *PageInfo) (*int, error) {
	return pageInfo.TotalCount()
}

func (r *pageInfoResolver) TotalPages(ctx context.Context, pageInfo *PageInfo) (int, error) {
	return pageInfo.TotalPages()
}

func (r *pageInfoResolver) CurrentPage(ctx context.Context, pageInfo *PageInfo) (int, error) {
	return pageInfo.CurrentPage()
}

func (r *pageInfoResolver) HasPreviousPage(ctx context.Context, pageInfo *PageInfo) (bool, error) {
	return pageInfo.HasPreviousPage()
}

func (r *pageInfoResolver) HasNextPage(ctx context.Context, pageInfo *PageInfo) (bool, error) {
	return pageInfo.HasNextPage()
}

func (r *pageInfoResolver) StartCursor(ctx context.Context, pageInfo *PageInfo) (*string, error) {
	return pageInfo.StartCursor()
}

func (r *pageInfoResolver) EndCursor(ctx context.Context, pageInfo *PageInfo) (*string, error) {
	return pageInfo.EndCursor()
}

// Tokens renders the strip as strings ("1", "2", "ellipsis", ...) which is
// what schema-typed clients can consume.
func (r *pageInfoResolver) Tokens(ctx context.Context, pageInfo *PageInfo) ([]string, error) {
	tokens, err := pageInfo.Tokens()
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out, nil
}
