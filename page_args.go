package listing

import "fmt"

const (
	// DefaultPageSize is the default number of records per page when not specified.
	DefaultPageSize = 10

	// DefaultMaxPageSize is the default maximum page size allowed.
	// This protects against rendering unreasonably large pages.
	DefaultMaxPageSize = 1000
)

// PageConfig holds pagination configuration options.
// Use NewPageConfig() to create a config with sensible defaults,
// then customize using the With* methods.
//
// Example:
//
//	config := listing.NewPageConfig().WithDefaultSize(8)
//	size := config.EffectiveSize(args)
type PageConfig struct {
	// DefaultSize is the page size used when not specified in PageArgs.
	DefaultSize int

	// MaxSize is the maximum allowed page size. Requests exceeding this
	// will be capped to MaxSize (not rejected).
	MaxSize int
}

// NewPageConfig creates a PageConfig with sensible defaults:
// - DefaultSize: 10
// - MaxSize: 1000
func NewPageConfig() *PageConfig {
	return &PageConfig{
		DefaultSize: DefaultPageSize,
		MaxSize:     DefaultMaxPageSize,
	}
}

// WithDefaultSize sets the default page size and returns the config for chaining.
func (c *PageConfig) WithDefaultSize(size int) *PageConfig {
	if size > 0 {
		c.DefaultSize = size
	}
	return c
}

// WithMaxSize sets the maximum page size and returns the config for chaining.
func (c *PageConfig) WithMaxSize(size int) *PageConfig {
	if size > 0 {
		c.MaxSize = size
	}
	return c
}

// EffectiveSize returns the page size to use, applying defaults and caps.
// - If args is nil or Size is nil/zero, returns DefaultSize
// - If Size exceeds MaxSize, returns MaxSize
// - Otherwise returns Size
func (c *PageConfig) EffectiveSize(args *PageArgs) int {
	if c == nil {
		c = NewPageConfig()
	}

	defaultSize := c.DefaultSize
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	if args == nil || args.Size == nil || *args.Size <= 0 {
		return min(defaultSize, maxSize)
	}

	if *args.Size > maxSize {
		return maxSize
	}

	return *args.Size
}

// Validate checks if the page size exceeds MaxSize and returns an error if so.
// Unlike EffectiveSize which caps silently, Validate returns an error for
// explicit rejection of invalid requests.
func (c *PageConfig) Validate(args *PageArgs) error {
	if c == nil {
		c = NewPageConfig()
	}

	if args == nil || args.Size == nil {
		return nil
	}

	maxSize := c.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}

	if *args.Size > maxSize {
		return &PageSizeError{
			Requested: *args.Size,
			Maximum:   maxSize,
		}
	}

	return nil
}

// PageArgs represents a page-number pagination request.
// Page is 1-based; a nil Page means the first page.
type PageArgs struct {
	Page *int `json:"page,omitempty"`
	Size *int `json:"size,omitempty"`
}

// NewPageArgs builds PageArgs for the given page and size.
// A non-positive size leaves Size unset so the configured default applies.
func NewPageArgs(page, size int) *PageArgs {
	pa := &PageArgs{Page: &page}
	if size > 0 {
		pa.Size = &size
	}
	return pa
}

// GetPage returns the requested page, defaulting to 1.
func (pa *PageArgs) GetPage() int {
	if pa == nil || pa.Page == nil || *pa.Page < 1 {
		return 1
	}
	return *pa.Page
}

// GetSize returns the requested page size.
func (pa *PageArgs) GetSize() *int {
	if pa == nil {
		return nil
	}
	return pa.Size
}

// Validate validates the PageArgs using DefaultMaxPageSize (1000).
func (pa *PageArgs) Validate() error {
	return NewPageConfig().Validate(pa)
}

// ValidateWith validates the PageArgs using a custom PageConfig.
//
// Example:
//
//	config := listing.NewPageConfig().WithMaxSize(100)
//	if err := args.ValidateWith(config); err != nil {
//	    return nil, err // Page size too large
//	}
func (pa *PageArgs) ValidateWith(config *PageConfig) error {
	return config.Validate(pa)
}

// PageSizeError is returned when the requested page size exceeds the maximum allowed.
type PageSizeError struct {
	Requested int
	Maximum   int
}

func (e *PageSizeError) Error() string {
	return fmt.Sprintf("requested page size %d exceeds maximum allowed page size of %d",
		e.Requested, e.Maximum)
}

// PaginateOption configures page size limits for a paginator.
//
// Example:
//
//	paginator := offset.New(fetcher,
//	    listing.WithMaxSize(100),
//	    listing.WithDefaultSize(8),
//	)
type PaginateOption func(*paginateConfig)

// paginateConfig holds page size configuration for a paginator.
type paginateConfig struct {
	maxSize     int
	defaultSize int
}

// WithMaxSize sets the maximum page size.
// If the requested size exceeds this, it will be capped to maxSize.
func WithMaxSize(size int) PaginateOption {
	return func(c *paginateConfig) {
		if size > 0 {
			c.maxSize = size
		}
	}
}

// WithDefaultSize sets the default page size.
// Used when args.Size is nil or zero.
func WithDefaultSize(size int) PaginateOption {
	return func(c *paginateConfig) {
		if size > 0 {
			c.defaultSize = size
		}
	}
}

// ApplyPaginateOptions applies functional options and returns a PageConfig.
// This is an internal helper used by all paginators.
func ApplyPaginateOptions(opts ...PaginateOption) *PageConfig {
	cfg := &paginateConfig{
		maxSize:     DefaultMaxPageSize,
		defaultSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &PageConfig{
		MaxSize:     cfg.maxSize,
		DefaultSize: cfg.defaultSize,
	}
}
