package catalog

import "countrycat/internal/country"

// State is the user-controlled part of the catalog view.
//
// Page is interpreted against the filtered record count. Changing Search or
// Direction leaves Page alone, so a narrowed search can leave the view on a
// page with no rows.
type State struct {
	Search    string
	Direction Direction
	Page      int
}

// NewState returns the initial state: no search, ascending, first page.
func NewState() State {
	return State{Direction: Ascending, Page: 1}
}

// Page is the derived, render-ready result of applying a State to a record set.
type Page struct {
	Rows      []country.Record
	Number    int
	PageCount int
	Filtered  int
	HasPrev   bool
	HasNext   bool
}

// Derive filters, sorts and paginates records for the current state.
func (s State) Derive(records []country.Record) Page {
	filtered := Sort(Filter(records, s.Search), s.Direction)
	return Page{
		Rows:      Paginate(filtered, s.Page, PageSize),
		Number:    s.Page,
		PageCount: PageCount(len(filtered), PageSize),
		Filtered:  len(filtered),
		HasPrev:   s.canPrev(),
		HasNext:   s.canNext(len(filtered)),
	}
}

// FilteredCount returns how many records match the current search.
func (s State) FilteredCount(records []country.Record) int {
	return len(Filter(records, s.Search))
}

// SetSearch replaces the search text. Reports whether it changed.
func (s *State) SetSearch(text string) bool {
	if s.Search == text {
		return false
	}
	s.Search = text
	return true
}

// ToggleSort flips the sort direction.
func (s *State) ToggleSort() {
	s.Direction = s.Direction.Toggle()
}

// PrevPage moves back one page. No-op on the first page.
func (s *State) PrevPage() bool {
	if !s.canPrev() {
		return false
	}
	s.Page--
	return true
}

// NextPage moves forward one page. No-op once the current page reaches the
// end of the filtered set.
func (s *State) NextPage(filtered int) bool {
	if !s.canNext(filtered) {
		return false
	}
	s.Page++
	return true
}

func (s State) canPrev() bool {
	return s.Page > 1
}

func (s State) canNext(filtered int) bool {
	return s.Page < PageCount(filtered, PageSize)
}
