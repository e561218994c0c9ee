package ui

import "countrycat/internal/country"

// countriesLoadedMsg carries the result of a CatalogView fetch.
// viewID ties the result to the view instance that started it.
type countriesLoadedMsg struct {
	viewID  uint64
	records []country.Record
	err     error
}

// ShowDetailMsg opens the detail overlay for one record (Enter on a row).
type ShowDetailMsg struct {
	Record country.Record
}

// DismissModalMsg is sent when the user closes the topmost overlay.
type DismissModalMsg struct{}

// ToggleSortMsg flips the sort direction (s, SPC s).
type ToggleSortMsg struct{}

// NextPageMsg moves to the next page (right, l, SPC n).
type NextPageMsg struct{}

// PrevPageMsg moves to the previous page (left, h, SPC p).
type PrevPageMsg struct{}

// ToggleHelpMsg shows or hides the key hint bar (?).
type ToggleHelpMsg struct{}

// QuitMsg tears the catalog down and exits (q, ctrl+c, SPC q).
type QuitMsg struct{}
