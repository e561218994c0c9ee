// Package ui implements the countrycat terminal interface with Bubble Tea.
//
// Core pieces:
//   - View: a screen or region with its own Init/Update/View (Elm-style)
//   - CatalogView: fetches the country list once and renders the searchable,
//     sortable, paginated table
//   - DetailOverlay: shows every raw field of one record until dismissed
//   - OverlayStack: modal views drawn above the catalog
//   - KeybindRegistry/KeyHandler: global and SPC-prefixed bindings
package ui
