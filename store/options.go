package store

import (
	"github.com/sirupsen/logrus"

	"github.com/nrfta/listing-go"
)

type options struct {
	logger    logrus.FieldLogger
	pageSize  int
	maxSize   int
	noMetrics bool
}

// Option configures a Collection or View.
type Option func(*options)

// WithLogger sets the logger. Defaults to logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPageSize sets the number of records per page of a View.
func WithPageSize(size int) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithMaxPageSize caps the page size of a View.
func WithMaxPageSize(size int) Option {
	return func(o *options) {
		o.maxSize = size
	}
}

// WithoutMetrics disables Prometheus recording.
func WithoutMetrics() Option {
	return func(o *options) {
		o.noMetrics = true
	}
}

func applyOptions(opts []Option) *options {
	o := &options{
		logger:   logrus.StandardLogger(),
		pageSize: listing.DefaultPageSize,
		maxSize:  listing.DefaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) paginateOptions() []listing.PaginateOption {
	return []listing.PaginateOption{
		listing.WithDefaultSize(o.pageSize),
		listing.WithMaxSize(o.maxSize),
	}
}
