package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// The catalog table and every overlay are Views.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Closer is implemented by views that own background work which must stop
// when the view is torn down.
type Closer interface {
	Close()
}
