package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"countrycat/internal/catalog"
	"countrycat/internal/logger"
)

// loadedApp returns an app whose catalog has finished its fetch.
func loadedApp(t *testing.T, src *fakeSource) (*AppModel, *appModelAdapter) {
	t.Helper()
	a := NewAppModel(context.Background(), src, logger.Discard())
	adapter := a.AsTeaModel().(*appModelAdapter)
	for _, msg := range runCmd(adapter.Init()) {
		if _, ok := msg.(countriesLoadedMsg); ok {
			adapter.Update(msg)
		}
	}
	if a.Catalog.Loading() {
		t.Fatal("expected fetch to complete")
	}
	return a, adapter
}

// send delivers msg and then every message produced by the returned command.
func send(adapter *appModelAdapter, msg tea.Msg) []tea.Msg {
	_, cmd := adapter.Update(msg)
	var produced []tea.Msg
	for _, m := range runCmd(cmd) {
		produced = append(produced, m)
		if _, ok := m.(tea.QuitMsg); ok {
			continue
		}
		produced = append(produced, send(adapter, m)...)
	}
	return produced
}

func containsQuit(msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestApp_QuitClosesCatalog(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: testRecords(t, "Chad")})

	msgs := send(adapter, keyMsg("q"))
	if !containsQuit(msgs) {
		t.Error("expected q to quit")
	}
	if !a.Catalog.Closed() {
		t.Error("expected catalog to be closed on quit")
	}
}

func TestApp_CtrlCQuitsFromOverlay(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: testRecords(t, "Chad")})
	send(adapter, keyMsg("enter"))
	if a.Overlays.Len() != 1 {
		t.Fatal("expected detail overlay")
	}
	if !containsQuit(send(adapter, keyMsg("ctrl+c"))) {
		t.Error("expected ctrl+c to quit")
	}
}

func TestApp_QuitBeforeFetchCompletes(t *testing.T) {
	src := &fakeSource{records: testRecords(t, "Chad")}
	a := NewAppModel(context.Background(), src, logger.Discard())
	adapter := a.AsTeaModel().(*appModelAdapter)
	msgs := runCmd(adapter.Init())

	send(adapter, QuitMsg{})
	for _, msg := range msgs {
		adapter.Update(msg)
	}
	if len(a.Catalog.Records()) != 0 {
		t.Error("late fetch result should be ignored after quit")
	}
}

func TestApp_QTypedIntoSearch(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: testRecords(t, "Iraq", "Chad")})

	send(adapter, keyMsg("/"))
	msgs := send(adapter, keyMsg("q"))
	if containsQuit(msgs) {
		t.Error("q inside the search box should not quit")
	}
	if a.Catalog.State().Search != "q" {
		t.Errorf("search = %q, want q", a.Catalog.State().Search)
	}
	if got := pageNames(a.Catalog.Page()); len(got) != 1 || got[0] != "Iraq" {
		t.Errorf("rows = %v, want [Iraq]", got)
	}
}

func TestApp_DetailOverlayOpenAndDismiss(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: testRecords(t, "Zambia", "Aruba")})

	send(adapter, keyMsg("enter"))
	if a.Overlays.Len() != 1 || a.Mode != ModeDetail {
		t.Fatalf("overlays=%d mode=%v", a.Overlays.Len(), a.Mode)
	}
	top, _ := a.Overlays.Peek()
	d, ok := top.View.(*DetailOverlay)
	if !ok {
		t.Fatalf("expected DetailOverlay, got %T", top.View)
	}
	if d.Record.DisplayName() != "Aruba" {
		t.Errorf("overlay record = %q", d.Record.DisplayName())
	}
	if out := adapter.View(); !strings.Contains(out, "cca2:") {
		t.Errorf("expected detail fields in view:\n%s", out)
	}

	send(adapter, keyMsg("esc"))
	if a.Overlays.Len() != 0 || a.Mode != ModeCatalog {
		t.Errorf("after esc: overlays=%d mode=%v", a.Overlays.Len(), a.Mode)
	}
}

func TestApp_QDismissesOverlayInsteadOfQuitting(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: testRecords(t, "Chad")})
	send(adapter, keyMsg("enter"))

	msgs := send(adapter, keyMsg("q"))
	if containsQuit(msgs) {
		t.Error("q in the overlay should close it, not quit")
	}
	if a.Overlays.Len() != 0 {
		t.Error("expected overlay to be dismissed")
	}
	if a.Catalog.Closed() {
		t.Error("catalog should stay open")
	}
}

func TestApp_LeaderSortAndPaging(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: numberedRecords(t, 30)})

	send(adapter, keyMsg(" "))
	if out := adapter.View(); !strings.Contains(out, "Toggle sort") {
		t.Errorf("expected leader hints in view:\n%s", out)
	}
	send(adapter, keyMsg("s"))
	if a.Catalog.State().Direction != catalog.Descending {
		t.Error("SPC s should toggle sort")
	}

	send(adapter, keyMsg(" "))
	send(adapter, keyMsg("n"))
	if a.Catalog.State().Page != 2 {
		t.Errorf("page = %d after SPC n", a.Catalog.State().Page)
	}

	send(adapter, keyMsg(" "))
	send(adapter, keyMsg("p"))
	if a.Catalog.State().Page != 1 {
		t.Errorf("page = %d after SPC p", a.Catalog.State().Page)
	}
}

func TestApp_ToggleHelp(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{})
	send(adapter, keyMsg("?"))
	if !a.ShowHelp {
		t.Fatal("expected help shown")
	}
	if !strings.Contains(adapter.View(), "SPC: commands") {
		t.Error("expected help line in view")
	}
	send(adapter, keyMsg("?"))
	if a.ShowHelp {
		t.Error("expected help hidden")
	}
}

func TestApp_WindowSizeReachesOverlay(t *testing.T) {
	a, adapter := loadedApp(t, &fakeSource{records: testRecords(t, "Chad")})
	send(adapter, keyMsg("enter"))
	send(adapter, tea.WindowSizeMsg{Width: 100, Height: 40})

	top, _ := a.Overlays.Peek()
	if d := top.View.(*DetailOverlay); d.width != 92 {
		t.Errorf("overlay width = %d, want 92", d.width)
	}
}
