// Package dashboard configures the list engine for the admin dashboard: the
// record types, their create and edit forms, filter schemas, id prefixes and
// seed data, assembled into a Registry with one shared collection per list.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/sirupsen/logrus"

	"github.com/nrfta/listing-go"
	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
	"github.com/nrfta/listing-go/store"
)

// Specs holds the mutation configuration of every mutable list. Quizzes are
// appended; every other list shows new records first.
var Specs = map[string]crud.Spec{
	KindQuiz:        {Kind: KindQuiz, Prefix: "quiz", Placement: crud.Append},
	KindCoupon:      {Kind: KindCoupon, Prefix: "cpn", Placement: crud.Prepend},
	KindOrder:       {Kind: KindOrder, Prefix: "ord", Placement: crud.Prepend},
	KindAdmin:       {Kind: KindAdmin, Prefix: "admin", Placement: crud.Prepend},
	KindPermission:  {Kind: KindPermission, Prefix: "perm", Placement: crud.Prepend},
	KindReview:      {Kind: KindReview, Prefix: "rev", Placement: crud.Prepend},
	KindCustomer:    {Kind: KindCustomer, Prefix: "cust", Placement: crud.Prepend},
	KindCategory:    {Kind: KindCategory, Prefix: "ccat", Placement: crud.Prepend},
	KindTransaction: {Kind: KindTransaction, Prefix: "txn", Placement: crud.Prepend},
	KindProduct:     {Kind: KindProduct, Prefix: "prod", Placement: crud.Prepend},
}

// ErrUnknownList is returned when looking up a list kind that does not exist.
var ErrUnknownList = errors.New("unknown list")

type options struct {
	logger    logrus.FieldLogger
	clock     func() time.Time
	pageSize  func(kind string) int
	maxSize   int
	noMetrics bool
}

// Option configures a Registry.
type Option func(*options)

// WithLogger sets the logger used by every list.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock overrides the time source for ids and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithPageSizes sets the page size of each list by kind.
func WithPageSizes(size func(kind string) int) Option {
	return func(o *options) {
		o.pageSize = size
	}
}

// WithMaxPageSize caps every list's page size.
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

// List bundles the shared collection of one record type with its schema and
// mutator. Pages mount views on it with NewView.
type List[T crud.Entity[T]] struct {
	Spec       crud.Spec
	Collection *store.Collection[T]
	Schema     *filter.Schema[T]

	// Mutator is nil for read-only lists.
	Mutator *crud.Mutator[T]

	viewOpts []store.Option
}

func newList[T crud.Entity[T]](spec crud.Spec, records []T, schema *filter.Schema[T], mutable bool, o *options) *List[T] {
	storeOpts := []store.Option{store.WithLogger(o.logger)}
	crudOpts := []crud.Option{crud.WithLogger(o.logger), crud.WithClock(o.clock)}
	if o.noMetrics {
		storeOpts = append(storeOpts, store.WithoutMetrics())
		crudOpts = append(crudOpts, crud.WithoutMetrics())
	}

	l := &List[T]{
		Spec:       spec,
		Collection: store.NewCollection(spec.Kind, records, storeOpts...),
		Schema:     schema,
		viewOpts: append(storeOpts,
			store.WithPageSize(o.pageSize(spec.Kind)),
			store.WithMaxPageSize(o.maxSize),
		),
	}
	if mutable {
		l.Mutator = crud.NewMutator[T](spec, l.Collection, crudOpts...)
	}
	return l
}

// NewView mounts a view over the list. Close it when the page unmounts.
func (l *List[T]) NewView(opts ...store.Option) *store.View[T] {
	return store.NewView(l.Collection, l.Schema, l.Mutator, append(append([]store.Option{}, l.viewOpts...), opts...)...)
}

// Kind implements Browser.
func (l *List[T]) Kind() string {
	return l.Spec.Kind
}

// SearchFields implements Browser.
func (l *List[T]) SearchFields() []string {
	return l.Schema.SearchFields()
}

// Facets implements Browser.
func (l *List[T]) Facets() []string {
	return l.Schema.Facets()
}

// FacetValues implements Browser.
func (l *List[T]) FacetValues(facet string) ([]string, error) {
	return l.Schema.FacetValues(l.Collection.Snapshot(), facet)
}

// Browse implements Browser.
func (l *List[T]) Browse(ctx context.Context, q filter.Query, page int) (*Listing, error) {
	view := l.NewView()
	defer view.Close()

	if err := view.Search(q.Search); err != nil {
		return nil, err
	}
	for facet, values := range q.Facets {
		if err := view.SetFacet(facet, values...); err != nil {
			return nil, err
		}
	}
	if err := view.GoToPage(page); err != nil {
		return nil, err
	}

	snap, err := view.VisiblePage(ctx)
	if err != nil {
		return nil, err
	}

	conn, err := snap.Connection()
	if err != nil {
		return nil, errors.Wrapf(err, "connection %s", l.Spec.Kind)
	}

	resolver := listing.NewPageInfoResolver()
	hasPrev, err := resolver.HasPreviousPage(ctx, snap.PageInfo)
	if err != nil {
		return nil, err
	}
	hasNext, err := resolver.HasNextPage(ctx, snap.PageInfo)
	if err != nil {
		return nil, err
	}

	out := &Listing{
		Kind:            l.Spec.Kind,
		Rows:            make([]Row, len(conn.Edges)),
		Tokens:          snap.Tokens,
		CurrentPage:     snap.CurrentPage,
		TotalPages:      snap.TotalPages,
		TotalCount:      snap.TotalCount,
		PageSize:        snap.PageSize,
		HasPreviousPage: hasPrev,
		HasNextPage:     hasNext,
	}
	for i, edge := range conn.Edges {
		out.Rows[i] = Row{
			Number: edge.RowNumber,
			ID:     edge.Node.EntityID(),
			Cursor: edge.Cursor,
			Record: edge.Node,
		}
	}
	return out, nil
}

// Browser is the type-erased read side of a List, used by tooling that picks
// lists by name.
type Browser interface {
	Kind() string
	SearchFields() []string
	Facets() []string
	FacetValues(facet string) ([]string, error)
	Browse(ctx context.Context, q filter.Query, page int) (*Listing, error)
}

// Row is one record of a Listing.
type Row struct {
	Number int    `yaml:"number"`
	ID     string `yaml:"id"`
	// Cursor bookmarks the row's position in the filtered list.
	Cursor string `yaml:"cursor"`
	Record any    `yaml:"record"`
}

// Listing is one page of a list.
type Listing struct {
	Kind        string          `yaml:"kind"`
	Rows        []Row           `yaml:"rows"`
	Tokens      []listing.Token `yaml:"tokens"`
	CurrentPage int             `yaml:"currentPage"`
	TotalPages  int             `yaml:"totalPages"`
	TotalCount  int             `yaml:"totalCount"`
	PageSize    int             `yaml:"pageSize"`

	HasPreviousPage bool `yaml:"hasPreviousPage"`
	HasNextPage     bool `yaml:"hasNextPage"`
}

// Registry holds one List per dashboard page.
type Registry struct {
	Quizzes      *List[Quiz]
	Coupons      *List[Coupon]
	Orders       *List[Order]
	Admins       *List[AdminUser]
	Permissions  *List[Permission]
	Reviews      *List[Review]
	Customers    *List[Customer]
	Categories   *List[CourseCategory]
	Transactions *List[Transaction]
	Products     *List[Product]
	Leaderboard  *List[LeaderboardUser]

	browsers map[string]Browser
}

// NewRegistry builds every list from ds.
func NewRegistry(ds *Dataset, opts ...Option) *Registry {
	o := &options{
		logger:   logrus.StandardLogger(),
		clock:    time.Now,
		pageSize: func(string) int { return listing.DefaultPageSize },
		maxSize:  listing.DefaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	if ds == nil {
		ds = &Dataset{}
	}

	r := &Registry{
		Quizzes:      newList(Specs[KindQuiz], ds.Quizzes, QuizSchema(), true, o),
		Coupons:      newList(Specs[KindCoupon], ds.Coupons, CouponSchema(), true, o),
		Orders:       newList(Specs[KindOrder], ds.Orders, OrderSchema(), true, o),
		Admins:       newList(Specs[KindAdmin], ds.Admins, AdminSchema(), true, o),
		Permissions:  newList(Specs[KindPermission], ds.Permissions, PermissionSchema(), true, o),
		Reviews:      newList(Specs[KindReview], ds.Reviews, ReviewSchema(), true, o),
		Customers:    newList(Specs[KindCustomer], ds.Customers, CustomerSchema(), true, o),
		Categories:   newList(Specs[KindCategory], ds.Categories, CategorySchema(), true, o),
		Transactions: newList(Specs[KindTransaction], ds.Transactions, TransactionSchema(), true, o),
		Products:     newList(Specs[KindProduct], ds.Products, ProductSchema(), true, o),
		Leaderboard:  newList(crud.Spec{Kind: KindLeaderboard}, ds.Leaderboard, LeaderboardSchema(), false, o),
	}
	r.browsers = map[string]Browser{
		KindQuiz:        r.Quizzes,
		KindCoupon:      r.Coupons,
		KindOrder:       r.Orders,
		KindAdmin:       r.Admins,
		KindPermission:  r.Permissions,
		KindReview:      r.Reviews,
		KindCustomer:    r.Customers,
		KindCategory:    r.Categories,
		KindTransaction: r.Transactions,
		KindProduct:     r.Products,
		KindLeaderboard: r.Leaderboard,
	}
	return r
}

// Kinds returns the list kinds in alphabetical order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.browsers))
	for kind := range r.browsers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Browser returns the list of the given kind.
func (r *Registry) Browser(kind string) (Browser, error) {
	b, ok := r.browsers[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownList, "%q", kind)
	}
	return b, nil
}
