// Package store holds the paged list state of the engine.
//
// A Collection is the single authoritative, ordered set of records of one
// entity type. Every mounted list page gets a View over the shared Collection:
// the view owns only its search term, facet selections, current page and row
// selection, and recomputes its visible page from a fresh snapshot on demand,
// so two views of the same entity never drift apart.
package store

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nrfta/listing-go/crud"
)

// ChangeType says what happened to a collection.
type ChangeType int

const (
	Inserted ChangeType = iota
	Replaced
	Deleted
)

func (c ChangeType) String() string {
	switch c {
	case Inserted:
		return "inserted"
	case Replaced:
		return "replaced"
	case Deleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change is delivered to subscribers after a mutation has been applied.
type Change struct {
	Type    ChangeType
	ID      string
	Version uint64
}

// Collection is an ordered, id-unique set of records guarded for concurrent
// use. It implements crud.Repository.
type Collection[T crud.Entity[T]] struct {
	mu      sync.RWMutex
	kind    string
	records []T
	version uint64

	subsMu sync.Mutex
	subs   map[uuid.UUID]func(Change)

	log logrus.FieldLogger
}

// NewCollection creates a collection seeded with records, in order.
// Records with duplicate ids after the first are dropped.
func NewCollection[T crud.Entity[T]](kind string, records []T, opts ...Option) *Collection[T] {
	o := applyOptions(opts)
	c := &Collection[T]{
		kind:    kind,
		records: make([]T, 0, len(records)),
		subs:    make(map[uuid.UUID]func(Change)),
		log:     o.logger.WithField("kind", kind),
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		id := rec.EntityID()
		if _, dup := seen[id]; dup {
			c.log.WithField("id", id).Warn("dropping seed record with duplicate id")
			continue
		}
		seen[id] = struct{}{}
		c.records = append(c.records, rec)
	}
	return c
}

// Kind returns the entity kind the collection holds.
func (c *Collection[T]) Kind() string {
	return c.kind
}

// Snapshot returns a copy of the records in order.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.records...)
}

// snapshot returns a copy of the records with the version they belong to.
func (c *Collection[T]) snapshot() ([]T, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.records...), c.version
}

// Version increases by one with every applied mutation.
func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Get returns the record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(id); i >= 0 {
		return c.records[i], true
	}
	var zero T
	return zero, false
}

// Len implements crud.Repository.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Contains implements crud.Repository.
func (c *Collection[T]) Contains(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// Insert implements crud.Repository.
func (c *Collection[T]) Insert(rec T, placement crud.Placement) error {
	id := rec.EntityID()

	c.mu.Lock()
	if c.indexOf(id) >= 0 {
		c.mu.Unlock()
		return crud.ErrDuplicateID
	}
	next := make([]T, 0, len(c.records)+1)
	if placement == crud.Append {
		next = append(append(next, c.records...), rec)
	} else {
		next = append(append(next, rec), c.records...)
	}
	c.records = next
	c.version++
	version := c.version
	c.mu.Unlock()

	c.notify(Change{Type: Inserted, ID: id, Version: version})
	return nil
}

// Replace implements crud.Repository.
func (c *Collection[T]) Replace(id string, fn func(T) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return zero, crud.ErrNotFound
	}
	rec, err := fn(c.records[i])
	if err != nil {
		c.mu.Unlock()
		return zero, err
	}
	next := append([]T(nil), c.records...)
	next[i] = rec
	c.records = next
	c.version++
	version := c.version
	c.mu.Unlock()

	c.notify(Change{Type: Replaced, ID: id, Version: version})
	return rec, nil
}

// Delete implements crud.Repository.
func (c *Collection[T]) Delete(id string) (T, error) {
	var zero T

	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return zero, crud.ErrNotFound
	}
	rec := c.records[i]
	next := make([]T, 0, len(c.records)-1)
	next = append(append(next, c.records[:i]...), c.records[i+1:]...)
	c.records = next
	c.version++
	version := c.version
	c.mu.Unlock()

	c.notify(Change{Type: Deleted, ID: id, Version: version})
	return rec, nil
}

// Subscribe registers fn to be called after every applied mutation.
// fn runs on the mutating goroutine, outside the collection lock.
func (c *Collection[T]) Subscribe(fn func(Change)) *Subscription {
	id := uuid.New()

	c.subsMu.Lock()
	c.subs[id] = fn
	c.subsMu.Unlock()

	return &Subscription{
		id: id,
		cancel: func() {
			c.subsMu.Lock()
			delete(c.subs, id)
			c.subsMu.Unlock()
		},
	}
}

func (c *Collection[T]) notify(change Change) {
	c.subsMu.Lock()
	fns := make([]func(Change), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subsMu.Unlock()

	c.log.WithFields(logrus.Fields{
		"change":  change.Type.String(),
		"id":      change.ID,
		"version": change.Version,
	}).Debug("collection changed")

	for _, fn := range fns {
		fn(change)
	}
}

// indexOf must be called with mu held.
func (c *Collection[T]) indexOf(id string) int {
	for i, rec := range c.records {
		if rec.EntityID() == id {
			return i
		}
	}
	return -1
}

// Subscription is a handle returned by Collection.Subscribe.
type Subscription struct {
	id     uuid.UUID
	once   sync.Once
	cancel func()
}

// ID identifies the subscription.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Close unsubscribes. It is safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}
