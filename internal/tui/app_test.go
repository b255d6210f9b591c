package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/dataset"
	"github.com/wexinc/fightsongs/internal/history"
	"github.com/wexinc/fightsongs/internal/songs"
	"github.com/wexinc/fightsongs/internal/tui/components"
)

func record(year int, conference string, fight songs.Flag) songs.Record {
	r := songs.NewRecord(year, map[songs.Trope]songs.Flag{
		songs.TropeFight:   fight,
		songs.TropeVictory: songs.FlagYes,
		songs.TropeRah:     songs.FlagNo,
		songs.TropeMen:     songs.FlagNo,
	})
	r.Conference = conference
	r.StudentWriter = songs.FlagYes
	r.Contest = songs.FlagNo
	return r
}

func testDataset() *songs.Dataset {
	return songs.FromRecords([]songs.Record{
		record(1893, "SEC", songs.FlagYes),
		record(1905, "SEC", songs.FlagNo),
		record(1911, "SEC", songs.FlagYes),
		record(1921, "Big Ten", songs.FlagYes),
		record(1925, "Big Ten", songs.FlagNo),
		record(1938, "ACC", songs.FlagYes),
	})
}

func newTestModel(ds *songs.Dataset) *Model {
	return New(Options{Source: dataset.NewStaticSource(ds), SessionID: "0f8fad5b-d9cb"})
}

func press(m *Model, msg tea.KeyMsg) (*Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(*Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	m := newTestModel(testDataset())
	if m == nil {
		t.Fatal("New() returned nil")
	}
	if m.ActiveTab() != TabOverview {
		t.Errorf("initial tab = %v, want Overview", m.ActiveTab())
	}
	if m.Init() != nil {
		t.Error("Init should not schedule anything")
	}

	// The first refresh seeds the two largest conferences.
	got := m.Selection().Conferences()
	if len(got) != 2 || got[0] != "SEC" || got[1] != "Big Ten" {
		t.Errorf("seeded conferences = %v, want [SEC Big Ten]", got)
	}
}

func TestModelUpdateKeyQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m := newTestModel(testDataset())
		model, cmd := press(m, msg)
		if !model.quitting {
			t.Errorf("Model should be quitting after %q", msg.String())
		}
		if cmd == nil {
			t.Error("Should return a quit command")
		}
		if model.View() != "" {
			t.Error("quitting model should render nothing")
		}
	}
}

func TestModelTabs(t *testing.T) {
	m := newTestModel(testDataset())

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.ActiveTab() != TabDecade {
		t.Errorf("tab after tab key = %v, want By decade", m.ActiveTab())
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.ActiveTab() != TabAuthorship {
		t.Errorf("shift+tab should wrap around, got %v", m.ActiveTab())
	}
	m, _ = press(m, runes("3"))
	if m.ActiveTab() != TabConference {
		t.Errorf("'3' should open By conference, got %v", m.ActiveTab())
	}
}

func TestModelUpdateWindowSize(t *testing.T) {
	m := newTestModel(testDataset())

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := next.(*Model)

	if model.width != 120 || model.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", model.width, model.height)
	}
}

func TestModelSeriesToggle(t *testing.T) {
	m := newTestModel(testDataset())
	m, _ = press(m, runes("2"))

	// focus starts on the slider; the next control is the first series
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	first := songs.DecadeTropes[0]
	if !m.Selection().SeriesSelected(first) {
		t.Fatal("every series should start selected")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Selection().SeriesSelected(first) {
		t.Error("space should deselect the focused series")
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Selection().SeriesSelected(first) {
		t.Error("enter should select the focused series again")
	}
}

func TestModelSlider(t *testing.T) {
	m := newTestModel(testDataset())
	m, _ = press(m, runes("2"))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Selection().MinDecade() != 1900 {
		t.Errorf("min decade = %d, want 1900", m.Selection().MinDecade())
	}
	if got := m.decades.Decades(); len(got) != 4 || got[0] != 1900 {
		t.Errorf("decades after moving the slider = %v", got)
	}

	// away from the slider, left still moves the threshold
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Selection().MinDecade() != 1890 {
		t.Errorf("min decade = %d, want 1890", m.Selection().MinDecade())
	}

	// left and right do nothing on other tabs
	m, _ = press(m, runes("1"))
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.Selection().MinDecade() != 1890 {
		t.Error("right on the overview should not move the slider")
	}
}

func TestModelDecadeButton(t *testing.T) {
	m := newTestModel(testDataset())
	m, _ = press(m, runes("2"))

	// slider + seven series, then the first decade button
	for i := 0; i < 1+len(songs.DecadeTropes); i++ {
		m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("pressing a decade button should return a command")
	}
	msg := cmd()
	clicked, ok := msg.(DecadeClickedMsg)
	if !ok || clicked.Decade != 1890 {
		t.Fatalf("command produced %#v, want DecadeClickedMsg{1890}", msg)
	}
	if _, ok := m.Selection().ClickedDecade(); ok {
		t.Error("the decade is recorded by the message handler, not the key press")
	}

	next, _ := m.Update(clicked)
	m = next.(*Model)
	if d, ok := m.Selection().ClickedDecade(); !ok || d != 1890 {
		t.Errorf("clicked decade = %d, %v", d, ok)
	}
	if strings.Contains(m.View(), history.PromptText) {
		t.Error("view should show the clicked decade's context instead of the prompt")
	}

	// moving the threshold past the clicked decade clears it
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	if _, ok := m.Selection().ClickedDecade(); ok {
		t.Error("clicked decade should be cleared when no longer offered")
	}
}

func TestModelConferenceTab(t *testing.T) {
	m := newTestModel(testDataset())
	m, _ = press(m, runes("3"))

	view := m.View()
	for _, want := range []string{"SEC (n=3)", "Big Ten (n=2)", "ACC (n=1)", "Victory 1.00"} {
		if !strings.Contains(view, want) {
			t.Errorf("conference view should contain %q", want)
		}
	}

	// deselect both seeded conferences
	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if len(m.Selection().Conferences()) != 0 {
		t.Fatalf("conferences = %v, want none", m.Selection().Conferences())
	}
	if !strings.Contains(m.View(), NoConferenceText) {
		t.Error("view should ask for a conference")
	}
}

func TestModelRadarNeedsThreeDimensions(t *testing.T) {
	m := newTestModel(testDataset())
	m.Selection().SetAllDimensions(songs.RadarTropes[:2])
	m, _ = press(m, runes("3"))

	if !strings.Contains(m.View(), "Select at least 3 dimensions for a radar plot.") {
		t.Error("view should explain the radar minimum")
	}
}

func TestModelAuthorshipVariant(t *testing.T) {
	m := newTestModel(testDataset())
	m, _ = press(m, runes("4"))

	if !strings.Contains(m.View(), "Trope Usage by Student Authorship") {
		t.Error("student chart should be shown first")
	}

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selection().Variant() != aggregate.VariantContest {
		t.Fatalf("variant = %q, want contest", m.Selection().Variant())
	}
	view := m.View()
	if !strings.Contains(view, "Trope Usage by Contest Selection") || !strings.Contains(view, "Non-contest (n=6)") {
		t.Error("contest chart should be shown after selecting it")
	}

	// selecting the same variant again is a no-op
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selection().Variant() != aggregate.VariantContest {
		t.Error("variant should stay contest")
	}
}

func TestModelNoData(t *testing.T) {
	m := newTestModel(nil)

	for _, key := range []string{"1", "2", "3", "4"} {
		m, _ = press(m, runes(key))
		if !strings.Contains(m.View(), NoDataText) {
			t.Errorf("tab %s should show the no-data message", key)
		}
	}
	if !strings.Contains(m.View(), "no data") {
		t.Error("status bar should report no data")
	}
}

func TestModelDatasetReloaded(t *testing.T) {
	src := dataset.NewStaticSource(testDataset())
	m := New(Options{Source: src})
	m.Selection().SetConferences([]string{"ACC"})

	next, _ := m.Update(DatasetReloadedMsg{})
	m = next.(*Model)
	if got := m.Selection().Conferences(); len(got) != 1 || got[0] != "ACC" {
		t.Errorf("reload should keep a valid selection, got %v", got)
	}
	if !strings.Contains(m.statusBar.View(), "data reloaded") {
		t.Error("status bar should confirm the reload")
	}
}

func TestModelDatasetReloadError(t *testing.T) {
	m := newTestModel(testDataset())

	next, _ := m.Update(DatasetReloadedMsg{Err: errTest("file vanished")})
	m = next.(*Model)
	if !m.statusBar.Data().IsError || !strings.Contains(m.statusBar.View(), "file vanished") {
		t.Error("status bar should show the reload error")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m := newTestModel(testDataset())

	m, _ = press(m, runes("?"))
	if !m.help.ShowAll {
		t.Fatal("? should expand help")
	}
	if !strings.Contains(m.View(), "reload data") {
		t.Error("full help should list every binding")
	}
	m, _ = press(m, runes("?"))
	if m.help.ShowAll {
		t.Error("? should collapse help again")
	}
}

func TestModelFocusWraps(t *testing.T) {
	m := newTestModel(testDataset())
	m, _ = press(m, runes("4"))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.focus[TabAuthorship] != len(aggregate.Variants)-1 {
		t.Errorf("up from the first control should wrap, focus = %d", m.focus[TabAuthorship])
	}
	btn, ok := m.focused().widget.(*components.Button)
	if !ok || !btn.Focused() {
		t.Error("focused control should be a focused button")
	}
}

func TestQuitMsg(t *testing.T) {
	m := newTestModel(testDataset())
	_, cmd := m.Update(QuitMsg{Reason: "test"})
	if cmd == nil || !m.quitting {
		t.Error("QuitMsg should quit")
	}
}

func TestTabString(t *testing.T) {
	if TabConference.String() != "By conference" {
		t.Errorf("String() = %q", TabConference.String())
	}
	if Tab(9).String() != "Tab(9)" {
		t.Errorf("String() = %q", Tab(9).String())
	}
}

type errTest string

func (e errTest) Error() string { return string(e) }
