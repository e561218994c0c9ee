package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"countrycat/internal/country"
	"countrycat/internal/jsonutil"
	"countrycat/internal/ui/textutil"
)

// maxLabelWidth caps the label column so one long key does not push values off screen.
const maxLabelWidth = 16

// DetailOverlay shows every top-level field of one record.
// Esc, q or Enter run OnDismiss; the record is never modified.
type DetailOverlay struct {
	Record    country.Record
	OnDismiss func() tea.Msg
	viewport  viewport.Model
	width     int
}

// Ensure DetailOverlay implements View.
var _ View = (*DetailOverlay)(nil)

// NewDetailOverlay creates an overlay for r. onDismiss may be nil.
func NewDetailOverlay(r country.Record, onDismiss func() tea.Msg) *DetailOverlay {
	o := &DetailOverlay{
		Record:    r,
		OnDismiss: onDismiss,
		viewport:  viewport.New(80, 20),
		width:     80,
	}
	o.refreshContent()
	return o
}

// Init implements View.
func (o *DetailOverlay) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (o *DetailOverlay) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		o.SetSize(msg.Width, msg.Height)
		return o, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return o, o.OnDismiss
		}
	}
	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(msg)
	return o, cmd
}

// SetSize fits the overlay inside a terminal of the given size.
func (o *DetailOverlay) SetSize(width, height int) {
	// border, padding and margin of Styles.Box plus title and hint lines
	w := width - 8
	h := height - 10
	if w < 20 {
		w = 20
	}
	if h < 3 {
		h = 3
	}
	o.width = w
	o.viewport.Width = w
	o.viewport.Height = h
	o.refreshContent()
}

func (o *DetailOverlay) refreshContent() {
	o.viewport.SetContent(lipgloss.NewStyle().Width(o.width).Render(RenderFields(o.Record, true)))
}

// RenderFields renders each top-level field as "key: value", where value is
// the compact JSON form of the raw field. styled applies the overlay theme.
func RenderFields(r country.Record, styled bool) string {
	fields := r.Fields()
	labelWidth := 0
	for _, f := range fields {
		if w := textutil.VisualWidth(f.Key) + 1; w > labelWidth {
			labelWidth = w
		}
	}
	if labelWidth > maxLabelWidth {
		labelWidth = maxLabelWidth
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		label := f.Key + ":"
		if textutil.VisualWidth(label) < labelWidth {
			label = textutil.PadRightVisual(label, labelWidth)
		}
		value := jsonutil.Stringify(f.Value)
		if styled {
			label = Styles.FieldKey.Render(label)
			value = Styles.FieldValue.Render(value)
		}
		lines = append(lines, label+" "+value)
	}
	return strings.Join(lines, "\n")
}

// View implements View.
func (o *DetailOverlay) View() string {
	title := o.Record.DisplayName()
	if title == "" {
		title = "Country"
	}
	content := Styles.Title.Render(textutil.Truncate(title, o.width)) + "\n\n"
	content += o.viewport.View() + "\n\n"
	content += Styles.Hint.Render("↑/↓: scroll  Esc/q/Enter: close")
	return Styles.Box.Render(content)
}
