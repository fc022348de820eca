package store

import (
	"context"
	"sync"
	"time"

	"github.com/friendsofgo/errors"
	"github.com/sirupsen/logrus"

	"github.com/nrfta/listing-go"
	"github.com/nrfta/listing-go/crud"
	"github.com/nrfta/listing-go/filter"
	"github.com/nrfta/listing-go/internal/metrics"
	"github.com/nrfta/listing-go/offset"
)

var (
	// ErrReadOnly is returned by mutations on a view created without a mutator.
	ErrReadOnly = errors.New("view is read-only")

	// ErrClosed is returned by every operation on a closed view.
	ErrClosed = errors.New("view is closed")
)

// View is the state of one mounted list page over a shared Collection: the
// search term, facet selections, current page and row selection. It holds no
// copy of the records; VisiblePage always reads the collection.
type View[T crud.Entity[T]] struct {
	mu sync.Mutex

	coll    *Collection[T]
	schema  *filter.Schema[T]
	mutator *crud.Mutator[T]
	opts    *options
	log     logrus.FieldLogger

	query     filter.Query
	page      int
	selection *Selection

	sub    *Subscription
	stale  bool
	closed bool
}

// NewView mounts a view over coll. mutator may be nil for a read-only list.
func NewView[T crud.Entity[T]](
	coll *Collection[T],
	schema *filter.Schema[T],
	mutator *crud.Mutator[T],
	opts ...Option,
) *View[T] {
	o := applyOptions(opts)
	v := &View[T]{
		coll:      coll,
		schema:    schema,
		mutator:   mutator,
		opts:      o,
		log:       o.logger.WithField("kind", coll.Kind()),
		query:     filter.Query{Facets: map[string][]string{}},
		page:      1,
		selection: &Selection{},
	}
	v.sub = coll.Subscribe(v.onChange)
	return v
}

func (v *View[T]) onChange(change Change) {
	if change.Type == Deleted {
		v.selection.drop(change.ID)
	}

	v.mu.Lock()
	v.stale = true
	v.mu.Unlock()
}

// Query returns the current filter state.
func (v *View[T]) Query() filter.Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query.Clone()
}

// Page returns the current page number.
func (v *View[T]) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Selection returns the view's row selection.
func (v *View[T]) Selection() *Selection {
	return v.selection
}

// Stale reports whether the collection changed since the view last computed
// its visible page.
func (v *View[T]) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}

// Search sets the search term and returns to page 1.
func (v *View[T]) Search(term string) error {
	return v.setQuery(func(q filter.Query) (filter.Query, error) {
		return q.WithSearch(term), nil
	})
}

// ToggleFacet adds value to facet's selection if absent, removes it if present,
// and returns to page 1.
func (v *View[T]) ToggleFacet(facet, value string) error {
	return v.setQuery(func(q filter.Query) (filter.Query, error) {
		if !v.schema.HasFacet(facet) {
			return q, errors.Wrapf(filter.ErrUnknownFacet, "facet %q", facet)
		}
		return q.Toggle(facet, value), nil
	})
}

// SetFacet replaces facet's selection, as a tab bar does. filter.AllValues
// or no values clears it.
func (v *View[T]) SetFacet(facet string, values ...string) error {
	return v.setQuery(func(q filter.Query) (filter.Query, error) {
		if !v.schema.HasFacet(facet) {
			return q, errors.Wrapf(filter.ErrUnknownFacet, "facet %q", facet)
		}
		return q.Set(facet, values...), nil
	})
}

// ClearFilters drops the search term and every facet selection.
func (v *View[T]) ClearFilters() error {
	return v.setQuery(func(q filter.Query) (filter.Query, error) {
		return q.Clear(), nil
	})
}

func (v *View[T]) setQuery(fn func(filter.Query) (filter.Query, error)) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	q, err := fn(v.query)
	if err != nil {
		return err
	}
	v.query = q
	v.page = 1
	v.selection.Clear()
	return nil
}

// GoToPage moves to page n, clamped into [1, totalPages].
func (v *View[T]) GoToPage(n int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrClosed
	}
	items, _ := v.coll.snapshot()
	total := len(v.schema.Apply(items, v.query))
	v.movePage(listing.ClampPage(n, listing.TotalPages(total, v.pageSize())))
	return nil
}

// NextPage moves forward one page. On the last page it does nothing.
func (v *View[T]) NextPage() error {
	return v.GoToPage(v.Page() + 1)
}

// PrevPage moves back one page. On the first page it does nothing.
func (v *View[T]) PrevPage() error {
	return v.GoToPage(v.Page() - 1)
}

func (v *View[T]) movePage(n int) {
	if n != v.page {
		v.page = n
		v.selection.Clear()
	}
}

func (v *View[T]) pageSize() int {
	return listing.ApplyPaginateOptions(v.opts.paginateOptions()...).EffectiveSize(nil)
}

// VisiblePage computes the records, page strip and counts for the current
// filter state and page from the collection as it is now.
//
// When the filtered set has shrunk below the current page (after a mutation
// elsewhere, for example) the view returns to page 1.
func (v *View[T]) VisiblePage(ctx context.Context) (*Snapshot[T], error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return nil, ErrClosed
	}
	return v.visiblePage(ctx)
}

// Resync recomputes the visible page after the view becomes active again.
func (v *View[T]) Resync(ctx context.Context) (*Snapshot[T], error) {
	return v.VisiblePage(ctx)
}

// visiblePage must be called with mu held.
func (v *View[T]) visiblePage(ctx context.Context) (*Snapshot[T], error) {
	start := time.Now()

	items, version := v.coll.snapshot()
	pager := offset.New[T](NewSliceFetcher(items, v.schema), v.opts.paginateOptions()...).
		WithFilters(v.query.Search, v.query.Facets)

	page, err := pager.Paginate(ctx, listing.NewPageArgs(v.page, 0))
	if err != nil {
		return nil, errors.Wrapf(err, "paginate %s", v.coll.Kind())
	}
	if page.Metadata.Clamped {
		v.log.WithFields(logrus.Fields{
			"page":        v.page,
			"total_count": page.Metadata.ItemsExamined,
		}).Debug("current page out of range, returning to page 1")

		v.movePage(1)
		page, err = pager.Paginate(ctx, listing.NewPageArgs(1, 0))
		if err != nil {
			return nil, errors.Wrapf(err, "paginate %s", v.coll.Kind())
		}
	}

	snap, err := newSnapshot(page, v.query.Clone(), version)
	if err != nil {
		return nil, errors.Wrap(err, "build snapshot")
	}

	ids := make([]string, len(snap.Records))
	for i, rec := range snap.Records {
		ids[i] = rec.EntityID()
	}
	v.selection.setVisible(ids)
	v.stale = false

	if !v.opts.noMetrics {
		metrics.RecordVisiblePageDuration(v.coll.Kind(), time.Since(start).Seconds())
	}
	return snap, nil
}

// Create adds a record built from payload and returns the recomputed page.
func (v *View[T]) Create(ctx context.Context, payload crud.Payload[T]) (*Snapshot[T], error) {
	return v.mutate(ctx, func(m *crud.Mutator[T]) error {
		_, err := m.Create(payload)
		return err
	})
}

// Update applies patch to the record with id and returns the recomputed page.
func (v *View[T]) Update(ctx context.Context, id string, patch func(T) T) (*Snapshot[T], error) {
	return v.mutate(ctx, func(m *crud.Mutator[T]) error {
		_, err := m.Update(id, patch)
		return err
	})
}

// Edit validates form, applies it to the record with id and returns the
// recomputed page.
func (v *View[T]) Edit(ctx context.Context, id string, form crud.Patch[T]) (*Snapshot[T], error) {
	return v.mutate(ctx, func(m *crud.Mutator[T]) error {
		_, err := m.Edit(id, form)
		return err
	})
}

// Remove deletes the record with id and returns the recomputed page.
func (v *View[T]) Remove(ctx context.Context, id string) (*Snapshot[T], error) {
	return v.mutate(ctx, func(m *crud.Mutator[T]) error {
		return m.Delete(id)
	})
}

// SetStatus changes the status of the record with id and returns the
// recomputed page.
func (v *View[T]) SetStatus(ctx context.Context, id, status string) (*Snapshot[T], error) {
	return v.mutate(ctx, func(m *crud.Mutator[T]) error {
		_, err := m.SetStatus(id, status)
		return err
	})
}

func (v *View[T]) mutate(ctx context.Context, fn func(*crud.Mutator[T]) error) (*Snapshot[T], error) {
	v.mu.Lock()
	closed := v.closed
	v.mu.Unlock()

	if closed {
		return nil, ErrClosed
	}
	if v.mutator == nil {
		return nil, ErrReadOnly
	}

	// The collection notifies subscribers, this view included, so the
	// mutation must run without mu held.
	if err := fn(v.mutator); err != nil {
		return nil, err
	}
	return v.VisiblePage(ctx)
}

// Close unsubscribes the view from its collection.
func (v *View[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.sub.Close()
}
