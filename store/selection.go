package store

import (
	"fmt"
	"sync"

	"github.com/aarondl/strmangle"
)

// SelectionState describes how much of the visible page is selected.
type SelectionState int

const (
	SelectedNone SelectionState = iota
	SelectedSome
	SelectedAll
)

func (s SelectionState) String() string {
	switch s {
	case SelectedAll:
		return "all"
	case SelectedSome:
		return "some"
	default:
		return "none"
	}
}

// Selection tracks the row checkboxes of one view. Only rows on the visible
// page can be selected; the selection is cleared whenever the page or the
// filters change.
type Selection struct {
	mu       sync.Mutex
	selected []string
	visible  []string
}

// Select checks or unchecks the row with id. It returns false when id is not
// on the visible page.
func (s *Selection) Select(id string, checked bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strmangle.SetInclude(id, s.visible) {
		return false
	}
	if checked {
		s.selected = strmangle.SetMerge(s.selected, []string{id})
	} else {
		s.selected = strmangle.SetComplement(s.selected, []string{id})
	}
	return true
}

// SelectPage checks or unchecks every row of the visible page.
func (s *Selection) SelectPage(checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if checked {
		s.selected = strmangle.SetMerge(s.selected, s.visible)
	} else {
		s.selected = strmangle.SetComplement(s.selected, s.visible)
	}
}

// IsSelected reports whether the row with id is checked.
func (s *Selection) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strmangle.SetInclude(id, s.selected)
}

// Selected returns the checked ids in the order they were checked.
func (s *Selection) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.selected...)
}

// Count returns the number of checked rows.
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// PageState reports whether none, some or all of the visible rows are checked.
// An empty page is never fully selected.
func (s *Selection) PageState() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, id := range s.visible {
		if strmangle.SetInclude(id, s.selected) {
			n++
		}
	}
	switch {
	case n == 0:
		return SelectedNone
	case n == len(s.visible):
		return SelectedAll
	default:
		return SelectedSome
	}
}

// Summary renders the footer line, e.g. "2 of 24 row(s) selected.".
func (s *Selection) Summary(total int) string {
	return fmt.Sprintf("%d of %d row(s) selected.", s.Count(), total)
}

// Clear unchecks every row.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// drop unchecks id, used when the record is removed.
func (s *Selection) drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = strmangle.SetComplement(s.selected, []string{id})
}

// setVisible records the ids of the rows on the visible page.
func (s *Selection) setVisible(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = ids
}
