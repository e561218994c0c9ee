package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"countrycat/internal/catalog"
	"countrycat/internal/country"
	"countrycat/internal/source"
	"countrycat/internal/ui/textutil"
)

// errNoSource is reported when a CatalogView has nothing to fetch from.
var errNoSource = errors.New("no data source configured")

// nextViewID hands out instance ids so fetch results can be matched to the view that asked.
var nextViewID atomic.Uint64

// catalogColumns are the table columns, in display order.
var catalogColumns = []table.Column{
	{Title: "Flag", Width: 4},
	{Title: "Country Name", Width: 34},
	{Title: "cca2", Width: 4},
	{Title: "cca3", Width: 4},
	{Title: "Native Name", Width: 28},
	{Title: "Alt Spellings", Width: 30},
	{Title: "IDD", Width: 5},
}

// catalogKeyMap holds the keys the catalog handles itself.
type catalogKeyMap struct {
	Search key.Binding
	Blur   key.Binding
	Switch key.Binding
	Sort   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Open   key.Binding
}

func newCatalogKeyMap() catalogKeyMap {
	return catalogKeyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Blur:   key.NewBinding(key.WithKeys("esc", "enter", "tab"), key.WithHelp("esc", "done")),
		Switch: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus search")),
		Sort:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	}
}

// ShortHelp implements help.KeyMap.
func (k catalogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Prev, k.Next, k.Open}
}

// FullHelp implements help.KeyMap.
func (k catalogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// CatalogView fetches the country list once and renders it as a searchable,
// sortable, paginated table.
//
// The visible rows are derived from (records, state) on every render.
// A fetch result that arrives after Close, or that belongs to another
// instance, is dropped.
type CatalogView struct {
	id     uint64
	source source.Source
	logger *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	closed  bool

	records []country.Record
	loading bool
	state   catalog.State

	keys    catalogKeyMap
	focus   FocusManager
	search  textinput.Model
	table   table.Model
	spinner spinner.Model
	width   int
}

// Ensure CatalogView implements View and Closer.
var (
	_ View   = (*CatalogView)(nil)
	_ Closer = (*CatalogView)(nil)
)

// NewCatalogView creates a view that will fetch from src when initialized.
// The fetch is canceled when ctx is done or the view is closed.
func NewCatalogView(ctx context.Context, src source.Source, logger *slog.Logger) *CatalogView {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	ti := textinput.New()
	ti.Placeholder = "Search by Name"
	ti.Prompt = "🔍 "
	ti.Width = 30

	t := table.New(
		table.WithColumns(catalogColumns),
		table.WithFocused(true),
		table.WithHeight(catalog.PageSize+2),
	)
	t.SetStyles(NewTableStyles())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	v := &CatalogView{
		id:      nextViewID.Add(1),
		source:  src,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		loading: true,
		state:   catalog.NewState(),
		keys:    newCatalogKeyMap(),
		search:  ti,
		table:   t,
		spinner: s,
	}
	v.focus = FocusManager{
		Current:  focusTable,
		Order:    []string{focusTable, focusSearch},
		OnChange: v.applyFocus,
	}
	return v
}

func (v *CatalogView) applyFocus(_, to string) {
	if to == focusSearch {
		v.table.Blur()
		v.search.Focus()
		return
	}
	v.search.Blur()
	v.table.Focus()
}

// Init implements View. The fetch is issued on the first call only.
func (v *CatalogView) Init() tea.Cmd {
	if v.started || v.closed {
		return nil
	}
	v.started = true
	return tea.Batch(v.spinner.Tick, v.fetchCmd())
}

// fetchCmd runs the fetch off the update loop. It captures the view's
// context and id, never the view itself.
func (v *CatalogView) fetchCmd() tea.Cmd {
	ctx, src, id := v.ctx, v.source, v.id
	return func() tea.Msg {
		if src == nil {
			return countriesLoadedMsg{viewID: id, err: errNoSource}
		}
		records, err := src.Fetch(ctx)
		return countriesLoadedMsg{viewID: id, records: records, err: err}
	}
}

// Close tears the view down. An in-flight fetch is canceled and its result ignored.
func (v *CatalogView) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.cancel()
}

// Update implements View.
func (v *CatalogView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case countriesLoadedMsg:
		v.handleLoaded(msg)
		return v, nil
	case spinner.TickMsg:
		if !v.loading || v.closed {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.WindowSizeMsg:
		v.setSize(msg.Width, msg.Height)
		return v, nil
	case ToggleSortMsg:
		v.toggleSort()
		return v, nil
	case NextPageMsg:
		v.nextPage()
		return v, nil
	case PrevPageMsg:
		v.prevPage()
		return v, nil
	case tea.KeyMsg:
		if v.loading || v.closed {
			return v, nil
		}
		if v.focus.Is(focusSearch) {
			return v.updateSearch(msg)
		}
		return v.updateTable(msg)
	}
	return v, nil
}

func (v *CatalogView) handleLoaded(msg countriesLoadedMsg) {
	if msg.viewID != v.id || v.closed {
		v.logger.Debug("discarding stale fetch result", "view", v.id, "result_for", msg.viewID)
		return
	}
	v.loading = false
	if msg.err != nil {
		v.logger.Error("fetch countries failed", "err", msg.err)
		v.records = nil
	} else {
		v.records = msg.records
	}
	v.syncRows()
}

func (v *CatalogView) updateSearch(msg tea.KeyMsg) (View, tea.Cmd) {
	if key.Matches(msg, v.keys.Blur) {
		v.focus.SetFocus(focusTable)
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.state.SetSearch(v.search.Value()) {
		v.syncRows()
	}
	return v, cmd
}

func (v *CatalogView) updateTable(msg tea.KeyMsg) (View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Search):
		v.focus.SetFocus(focusSearch)
		return v, textinput.Blink
	case key.Matches(msg, v.keys.Switch):
		if v.focus.Next() == focusSearch {
			return v, textinput.Blink
		}
		return v, nil
	case key.Matches(msg, v.keys.Sort):
		v.toggleSort()
		return v, nil
	case key.Matches(msg, v.keys.Prev):
		v.prevPage()
		return v, nil
	case key.Matches(msg, v.keys.Next):
		v.nextPage()
		return v, nil
	case key.Matches(msg, v.keys.Open):
		if r, ok := v.SelectedRecord(); ok {
			return v, func() tea.Msg { return ShowDetailMsg{Record: r} }
		}
		return v, nil
	}
	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v *CatalogView) toggleSort() {
	v.state.ToggleSort()
	v.syncRows()
}

func (v *CatalogView) nextPage() {
	if v.state.NextPage(v.state.FilteredCount(v.records)) {
		v.table.SetCursor(0)
		v.syncRows()
	}
}

func (v *CatalogView) prevPage() {
	if v.state.PrevPage() {
		v.table.SetCursor(0)
		v.syncRows()
	}
}

func (v *CatalogView) setSize(width, height int) {
	v.width = width
	v.table.SetWidth(width)
	// title, search row, pager, hints and spacing
	h := height - 8
	if h > catalog.PageSize+2 {
		h = catalog.PageSize + 2
	}
	if h < 3 {
		h = 3
	}
	v.table.SetHeight(h)
}

// syncRows derives the current page and loads it into the table.
func (v *CatalogView) syncRows() {
	v.table.SetRows(tableRows(v.state.Derive(v.records).Rows))
}

func tableRows(records []country.Record) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		cells := []string{
			r.FlagEmoji(),
			r.DisplayName(),
			r.Code2(),
			r.Code3(),
			r.NativeOfficialName(),
			r.AltSpellingsText(),
			r.IDDSuffix(),
		}
		for j := range cells {
			cells[j] = textutil.Cell(cells[j], catalogColumns[j].Width)
		}
		rows[i] = table.Row(cells)
	}
	return rows
}

// SelectedRecord returns the record under the table cursor on the current page.
func (v *CatalogView) SelectedRecord() (country.Record, bool) {
	page := v.state.Derive(v.records)
	i := v.table.Cursor()
	if i < 0 || i >= len(page.Rows) {
		return country.Record{}, false
	}
	return page.Rows[i], true
}

// CapturingInput reports whether keystrokes are going into the search box.
func (v *CatalogView) CapturingInput() bool {
	return v.focus.Is(focusSearch)
}

// Loading reports whether the initial fetch is still pending.
func (v *CatalogView) Loading() bool { return v.loading }

// Closed reports whether Close has been called.
func (v *CatalogView) Closed() bool { return v.closed }

// Records returns the full fetched record set.
func (v *CatalogView) Records() []country.Record { return v.records }

// State returns the current search, sort and page state.
func (v *CatalogView) State() catalog.State { return v.state }

// Page derives the currently visible page.
func (v *CatalogView) Page() catalog.Page { return v.state.Derive(v.records) }

// View implements View.
func (v *CatalogView) View() string {
	if v.loading {
		return v.spinner.View() + " Loading..."
	}

	page := v.state.Derive(v.records)

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Country Catalog") + "\n\n")

	sortLabel := fmt.Sprintf("Sort by Country Name (%s)", v.state.Direction)
	controls := lipgloss.JoinHorizontal(lipgloss.Center,
		v.search.View(),
		"   ",
		Styles.Button.Render(sortLabel),
	)
	b.WriteString(controls + "\n\n")

	b.WriteString(v.table.View() + "\n")
	if len(page.Rows) == 0 {
		b.WriteString(Styles.Empty.Render("No countries to show") + "\n")
	}
	b.WriteString("\n" + v.pagerView(page) + "\n")
	b.WriteString(newHelpModel().ShortHelpView(v.keys.ShortHelp()))
	return b.String()
}

func (v *CatalogView) pagerView(page catalog.Page) string {
	status := fmt.Sprintf("Page %d/%d · %d countries", page.Number, page.PageCount, page.Filtered)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		buttonStyle(page.HasPrev).Render("Previous"),
		" ",
		Styles.Status.Render(status),
		" ",
		buttonStyle(page.HasNext).Render("Next"),
	)
}
