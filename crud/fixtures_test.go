package crud_test

import (
	"time"

	"github.com/friendsofgo/errors"

	"github.com/nrfta/listing-go/crud"
)

type note struct {
	ID      string
	Title   string
	Status  string
	Created time.Time
	Updated time.Time
}

func (n note) EntityID() string { return n.ID }

func (n note) WithID(id string) note {
	n.ID = id
	return n
}

func (n note) Stamp(ev crud.Event, now time.Time) note {
	if ev == crud.Created {
		n.Created = now
	}
	n.Updated = now
	return n
}

func (n note) CurrentStatus() string { return n.Status }

func (n note) WithStatus(status string) (note, error) {
	if status != "Open" && status != "Closed" {
		return n, errors.Errorf("unknown status %q", status)
	}
	n.Status = status
	return n, nil
}

type newNote struct {
	Title string `validate:"required,min=3"`
}

func (p newNote) Record() (note, error) {
	switch p.Title {
	case "reject":
		return note{}, crud.NewValidationError("note", "title", "is reserved")
	case "boom":
		return note{}, errors.New("storage offline")
	}
	return note{Title: p.Title, Status: "Open"}, nil
}

type renameNote struct {
	Title string `validate:"required"`
}

func (p renameNote) Apply(cur note) note {
	cur.Title = p.Title
	return cur
}

// tag has no status enum.
type tag struct {
	ID string
}

func (t tag) EntityID() string                { return t.ID }
func (t tag) WithID(id string) tag            { t.ID = id; return t }
func (t tag) Stamp(crud.Event, time.Time) tag { return t }

// memRepo is a minimal slice-backed crud.Repository.
type memRepo[T crud.Entity[T]] struct {
	records []T
}

func (r *memRepo[T]) indexOf(id string) int {
	for i, rec := range r.records {
		if rec.EntityID() == id {
			return i
		}
	}
	return -1
}

func (r *memRepo[T]) Insert(rec T, placement crud.Placement) error {
	if r.indexOf(rec.EntityID()) >= 0 {
		return crud.ErrDuplicateID
	}
	if placement == crud.Append {
		r.records = append(r.records, rec)
	} else {
		r.records = append([]T{rec}, r.records...)
	}
	return nil
}

func (r *memRepo[T]) Replace(id string, fn func(T) (T, error)) (T, error) {
	var zero T
	i := r.indexOf(id)
	if i < 0 {
		return zero, crud.ErrNotFound
	}
	rec, err := fn(r.records[i])
	if err != nil {
		return zero, err
	}
	r.records[i] = rec
	return rec, nil
}

func (r *memRepo[T]) Delete(id string) (T, error) {
	var zero T
	i := r.indexOf(id)
	if i < 0 {
		return zero, crud.ErrNotFound
	}
	rec := r.records[i]
	r.records = append(r.records[:i:i], r.records[i+1:]...)
	return rec, nil
}

func (r *memRepo[T]) Contains(id string) bool { return r.indexOf(id) >= 0 }

func (r *memRepo[T]) Len() int { return len(r.records) }

func (r *memRepo[T]) ids() []string {
	out := make([]string, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.EntityID()
	}
	return out
}
