// Package crud implements create/update/delete/status mutations for list
// records, parameterised per entity type by a Spec rather than duplicated per
// page.
//
// Records are values. Every mutation builds a new value and hands it to a
// Repository (the shared collection), so snapshots already handed to views
// never change underneath them.
package crud

import "time"

// Event identifies why a record is being stamped.
type Event int

const (
	// Created is stamped once, when the record enters the collection.
	Created Event = iota
	// Updated is stamped on every edit.
	Updated
	// StatusChanged is stamped when only the status moves.
	StatusChanged
)

func (e Event) String() string {
	switch e {
	case Created:
		return "created"
	case Updated:
		return "updated"
	case StatusChanged:
		return "status_changed"
	default:
		return "unknown"
	}
}

// Entity is implemented by every record type managed by a Mutator.
//
// Type parameter T is the implementing type itself, so the copy-returning
// methods stay typed:
//
//	func (q Quiz) WithID(id string) Quiz { q.ID = id; return q }
type Entity[T any] interface {
	// EntityID returns the record's unique id.
	EntityID() string

	// WithID returns a copy carrying id.
	WithID(id string) T

	// Stamp returns a copy with the entity's timestamp fields for ev set from
	// now. Entities without timestamps return the receiver unchanged.
	Stamp(ev Event, now time.Time) T
}

// Statused is implemented by entities with a closed status enum.
type Statused[T any] interface {
	// CurrentStatus returns the record's status value.
	CurrentStatus() string

	// WithStatus returns a copy carrying status, or an error when status is
	// not a member of the entity's enum. Transitions are unconstrained.
	WithStatus(status string) (T, error)
}

// Payload is a create-form submission that builds a record.
// Payload structs carry `validate` tags checked before Record is called.
type Payload[T any] interface {
	// Record converts the payload into a record without id or timestamps.
	// It returns a *ValidationError for content the tags cannot express.
	Record() (T, error)
}

// Patch is an edit-form submission applied to an existing record.
// Like payloads, patch structs carry `validate` tags.
type Patch[T any] interface {
	Apply(cur T) T
}

// Placement says where a created record enters the collection.
type Placement int

const (
	// Prepend puts new records first (coupons, admins, categories, ...).
	Prepend Placement = iota
	// Append puts new records last (quizzes).
	Append
)

func (p Placement) String() string {
	if p == Append {
		return "append"
	}
	return "prepend"
}

// Repository is the shared collection a Mutator writes to.
// The store package's Collection implements it.
type Repository[T any] interface {
	// Insert adds rec at the given end. It fails if the id is already present.
	Insert(rec T, placement Placement) error

	// Replace swaps the record with id for fn's result in one step.
	// It returns ErrNotFound when id is absent; if fn fails nothing changes.
	Replace(id string, fn func(T) (T, error)) (T, error)

	// Delete removes the record with id and returns it, or ErrNotFound.
	Delete(id string) (T, error)

	// Contains reports whether id is present.
	Contains(id string) bool

	// Len returns the number of records.
	Len() int
}
