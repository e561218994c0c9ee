package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"countrycat/internal/source"
)

// AppModel is the root model: the catalog table with an overlay stack above it.
type AppModel struct {
	Mode       AppMode
	Catalog    *CatalogView
	Overlays   OverlayStack
	KeyHandler *KeyHandler
	ShowHelp   bool

	width  int
	height int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model fetching from src.
// Canceling ctx cancels an in-flight fetch.
func NewAppModel(ctx context.Context, src source.Source, logger *slog.Logger) *AppModel {
	return &AppModel{
		Mode:       ModeCatalog,
		Catalog:    NewCatalogView(ctx, src, logger),
		KeyHandler: NewKeyHandler(NewDefaultKeybindRegistry()),
	}
}

// NewDefaultKeybindRegistry returns the global bindings.
func NewDefaultKeybindRegistry() *KeybindRegistry {
	quit := func() tea.Msg { return QuitMsg{} }
	reg := NewKeybindRegistry()
	reg.BindWithDesc("q", quit, "Quit")
	reg.BindWithDesc("ctrl+c", quit, "Quit")
	reg.BindWithDesc("?", func() tea.Msg { return ToggleHelpMsg{} }, "Help")
	reg.BindWithDesc("SPC q", quit, "Quit")
	catalogOnly := []AppMode{ModeCatalog}
	reg.BindWithDescForMode("SPC s", func() tea.Msg { return ToggleSortMsg{} }, "Toggle sort", catalogOnly)
	reg.BindWithDescForMode("SPC n", func() tea.Msg { return NextPageMsg{} }, "Next page", catalogOnly)
	reg.BindWithDescForMode("SPC p", func() tea.Msg { return PrevPageMsg{} }, "Previous page", catalogOnly)
	return reg
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	return a.Catalog.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuitMsg:
		a.closeViews()
		return a, tea.Quit
	case ToggleHelpMsg:
		a.ShowHelp = !a.ShowHelp
		return a, nil
	case ShowDetailMsg:
		return a, a.pushDetail(msg)
	case DismissModalMsg:
		a.Overlays.Pop()
		if a.Overlays.Len() == 0 {
			a.Mode = ModeCatalog
		}
		return a, nil
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		_, cmd := a.Catalog.Update(msg)
		return a, tea.Batch(cmd, a.Overlays.UpdateAll(msg))
	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	_, cmd := a.Catalog.Update(msg)
	return a, cmd
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, func() tea.Msg { return QuitMsg{} }
	}

	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(msg.String()) {
			return a, func() tea.Msg { return DismissModalMsg{} }
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}

	// Typing into the search box must not trigger global bindings.
	if !a.Catalog.CapturingInput() && a.KeyHandler != nil {
		if consumed, cmd := a.KeyHandler.Handle(msg, a.Mode); consumed {
			return a, cmd
		}
	}

	_, cmd := a.Catalog.Update(msg)
	return a, cmd
}

// closeViews stops background work in the catalog and any open overlays.
func (a *appModelAdapter) closeViews() {
	for _, o := range a.Overlays.Stack {
		if c, ok := o.View.(Closer); ok {
			c.Close()
		}
	}
	a.Catalog.Close()
}

func (a *appModelAdapter) pushDetail(msg ShowDetailMsg) tea.Cmd {
	overlay := NewDetailOverlay(msg.Record, func() tea.Msg { return DismissModalMsg{} })
	if a.width > 0 && a.height > 0 {
		overlay.SetSize(a.width, a.height)
	}
	a.Overlays.Push(Overlay{View: overlay, Dismiss: []string{"esc"}})
	a.Mode = ModeDetail
	return overlay.Init()
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if top, ok := a.Overlays.Peek(); ok {
		content := top.View.View()
		if a.width > 0 && a.height > 0 {
			return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, content)
		}
		return content
	}

	base := a.Catalog.View()
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler, a.Mode)
	} else if a.ShowHelp {
		base += "\n" + Styles.Hint.Render("q: quit  ?: hide help  SPC: commands  /: search  s: sort  ←/→: page  enter: details")
	}
	return base
}
