package listing

// PageInfo contains metadata about a paginated result set.
// It uses function fields to enable lazy evaluation of pagination metadata,
// so presentation code only pays for what it renders (the strip, for example,
// is planned on first call).
//
// All functions return both a value and an error to keep the resolver
// signatures uniform.
type PageInfo struct {
	TotalCount      func() (*int, error)
	TotalPages      func() (int, error)
	PageSize        func() (int, error)
	CurrentPage     func() (int, error)
	HasPreviousPage func() (bool, error)
	HasNextPage     func() (bool, error)
	StartCursor     func() (*string, error)
	EndCursor       func() (*string, error)
	Tokens          func() ([]Token, error)
}

// NewEmptyPageInfo returns a empty instance of PageInfo. Useful for a list that
// has not been loaded yet but must still fulfil PageInfo requirements.
func NewEmptyPageInfo() *PageInfo {
	return &PageInfo{
		TotalCount:      func() (*int, error) { return nil, nil },
		TotalPages:      func() (int, error) { return 0, nil },
		PageSize:        func() (int, error) { return DefaultPageSize, nil },
		CurrentPage:     func() (int, error) { return 1, nil },
		StartCursor:     func() (*string, error) { return nil, nil },
		EndCursor:       func() (*string, error) { return nil, nil },
		HasNextPage:     func() (bool, error) { return false, nil },
		HasPreviousPage: func() (bool, error) { return false, nil },
		Tokens:          func() ([]Token, error) { return []Token{}, nil },
	}
}
