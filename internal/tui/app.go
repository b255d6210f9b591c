// Package tui provides the terminal dashboard for fightsongs.
package tui

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/dataset"
	"github.com/wexinc/fightsongs/internal/selection"
	"github.com/wexinc/fightsongs/internal/songs"
	"github.com/wexinc/fightsongs/internal/tui/components"
)

// Tab identifies a dashboard tab.
type Tab int

const (
	TabOverview Tab = iota
	TabDecade
	TabConference
	TabAuthorship
	numTabs
)

var tabNames = [numTabs]string{"Overview", "By decade", "By conference", "By authorship"}

func (t Tab) String() string {
	if t >= 0 && t < numTabs {
		return tabNames[t]
	}
	return "Tab(" + strconv.Itoa(int(t)) + ")"
}

// Options configures a new Model.
type Options struct {
	// Source provides the current dataset. Required.
	Source *dataset.Source
	// Cache memoizes aggregations. A new cache is created when nil.
	Cache *aggregate.Cache
	// Selection configures the selection state.
	Selection selection.Options
	// TopK is the number of conferences offered (default 5).
	TopK int
	// SessionID is shown in the status bar.
	SessionID string
	// Logger receives selection and reload events. Discarded when nil.
	Logger *slog.Logger
}

// focusable is a control that can take keyboard focus.
type focusable interface {
	Focus() tea.Cmd
	Blur()
	View() string
}

// control is one focusable widget of a tab and what pressing it does.
type control struct {
	widget   focusable
	activate func() tea.Cmd
}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	source *dataset.Source
	cache  *aggregate.Cache
	sel    *selection.State
	topK   int
	logger *slog.Logger

	// Components
	header    *components.Header
	statusBar *components.StatusBar
	slider    *components.Slider
	lineChart *components.LineChart
	radar     *components.Radar
	barChart  *components.BarChart
	help      help.Model
	keys      keyMap

	// Per-tab controls, rebuilt after every recomputation.
	controls [numTabs][]control
	focus    [numTabs]int

	// Computed views
	ds          *songs.Dataset
	decades     aggregate.Table
	conferences aggregate.Table
	authorship  aggregate.AuthorshipView

	tab       Tab
	sessionID string

	// Window dimensions
	width  int
	height int

	quitting bool
}

// New creates a new dashboard model and computes the initial views.
func New(opts Options) *Model {
	if opts.Source == nil {
		opts.Source = dataset.NewStaticSource(nil)
	}
	if opts.Cache == nil {
		opts.Cache = aggregate.NewCache()
	}
	if opts.TopK <= 0 {
		opts.TopK = aggregate.DefaultTopK
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger := opts.Logger
	if opts.Selection.Logf == nil {
		opts.Selection.Logf = func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		}
	}

	names := make([]string, numTabs)
	for i := range tabNames {
		names[i] = fmt.Sprintf("%d %s", i+1, tabNames[i])
	}

	m := &Model{
		source:    opts.Source,
		cache:     opts.Cache,
		sel:       selection.New(opts.Selection),
		topK:      opts.TopK,
		logger:    logger,
		header:    components.NewHeader("FIGHT SONGS", names...),
		statusBar: components.NewStatusBar(),
		lineChart: components.NewLineChart(),
		radar:     components.NewRadar(),
		barChart:  components.NewBarChart(),
		help:      help.New(),
		keys:      keys,
		sessionID: opts.SessionID,
	}
	m.slider = components.NewSlider("min-decade", "Minimum decade", m.sel.DecadeChoices())
	m.refresh()
	return m
}

// Init is the Bubble Tea initialization function.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Selection returns the model's selection state.
func (m *Model) Selection() *selection.State {
	return m.sel
}

// ActiveTab returns the visible tab.
func (m *Model) ActiveTab() Tab {
	return m.tab
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.header.SetWidth(msg.Width)
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.lineChart.SetSize(min(msg.Width-2, 100), max(msg.Height/3, 10))
		m.radar.SetHeight(max(msg.Height/3, 13))
		m.barChart.SetWidth(min(msg.Width-2, 90))
		return m, nil

	case DecadeClickedMsg:
		m.sel.ClickDecade(msg.Decade)
		m.logger.Debug("decade clicked", "decade", msg.Decade)
		m.refresh()
		return m, nil

	case DatasetReloadedMsg:
		if msg.Err != nil {
			m.statusBar.SetError(msg.Err.Error())
			m.logger.Warn("dataset unavailable", "error", msg.Err)
		}
		m.cache.Prune(m.source.Dataset().Version())
		m.refresh()
		if msg.Err == nil {
			m.statusBar.SetMessage("data reloaded")
		}
		return m, nil

	case ErrorMsg:
		m.statusBar.SetError(msg.Err.Error())
		return m, nil

	case QuitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.setTab((m.tab + 1) % numTabs)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.setTab((m.tab + numTabs - 1) % numTabs)
		return m, nil

	case key.Matches(msg, m.keys.Tab1):
		m.setTab(TabOverview)
		return m, nil
	case key.Matches(msg, m.keys.Tab2):
		m.setTab(TabDecade)
		return m, nil
	case key.Matches(msg, m.keys.Tab3):
		m.setTab(TabConference)
		return m, nil
	case key.Matches(msg, m.keys.Tab4):
		m.setTab(TabAuthorship)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		return m.handleSlide(msg)

	case key.Matches(msg, m.keys.Toggle):
		ctl := m.focused()
		if ctl == nil || ctl.activate == nil {
			return m, nil
		}
		cmd := ctl.activate()
		m.selectionChanged()
		return m, cmd

	case key.Matches(msg, m.keys.Reload):
		return m, reloadCmd(m.source)
	}

	return m, nil
}

// handleSlide moves the minimum decade. The focused slider handles the key
// itself; elsewhere on the decade tab the threshold moves by one step.
func (m *Model) handleSlide(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tab != TabDecade {
		return m, nil
	}
	if ctl := m.focused(); ctl != nil && ctl.widget == m.slider {
		if _, _, changed := m.slider.Update(msg); changed {
			m.sel.SetMinDecade(m.slider.Value())
			m.selectionChanged()
		}
		return m, nil
	}

	before := m.sel.MinDecade()
	if key.Matches(msg, m.keys.Left) {
		m.sel.StepMinDecade(-1)
	} else {
		m.sel.StepMinDecade(1)
	}
	if m.sel.MinDecade() != before {
		m.selectionChanged()
	}
	return m, nil
}

// selectionChanged recomputes the views after a selection change.
func (m *Model) selectionChanged() {
	m.refresh()
	snap := m.sel.Snapshot()
	m.logger.Debug("selection changed",
		"tab", m.tab.String(),
		"min_decade", snap.MinDecade,
		"series", len(snap.Series),
		"conferences", snap.Conferences,
		"dimensions", len(snap.Dimensions),
		"variant", snap.Variant)
}

// refresh recomputes every view through the cache, reconciles the selection
// with the groups now offered, and rebuilds the controls.
func (m *Model) refresh() {
	m.ds = m.source.Dataset()
	m.decades = m.cache.Decades(m.ds, m.sel.MinDecade(), songs.DecadeTropes)
	m.conferences = m.cache.Conferences(m.ds, songs.RadarTropes).TopK(m.topK)
	m.authorship = m.cache.Authorship(m.ds, songs.AuthorshipTropes)

	// Without data there is nothing to reconcile against; keep the selection
	// for when the file comes back.
	if m.ds.Available() {
		m.sel.Reconcile(m.decades.Decades(), m.conferences.Keys())
	}

	m.rebuildControls()
	m.updateStatus()
}

func (m *Model) updateStatus() {
	data := m.statusBar.Data()
	data.DataPath = m.source.Path()
	data.Available = m.ds.Available()
	data.Rows = m.ds.Len()
	data.LoadedAt = m.ds.LoadedAt()
	data.SessionID = m.sessionID
	if !data.Available && data.Message == "" {
		if err := m.source.Err(); err != nil {
			data.Message = err.Error()
			data.IsError = true
		}
	}
	m.statusBar.SetData(data)
}

// setTab switches tabs, keeping each tab's focus position.
func (m *Model) setTab(t Tab) {
	m.tab = t
	m.header.SetActive(int(t))
	m.syncFocus()
}

// moveFocus moves focus within the current tab, wrapping around.
func (m *Model) moveFocus(delta int) {
	n := len(m.controls[m.tab])
	if n == 0 {
		return
	}
	m.focus[m.tab] = (m.focus[m.tab] + delta + n) % n
	m.syncFocus()
}

// focused returns the focused control of the current tab.
func (m *Model) focused() *control {
	ctls := m.controls[m.tab]
	i := m.focus[m.tab]
	if i < 0 || i >= len(ctls) {
		return nil
	}
	return &ctls[i]
}

// syncFocus clamps focus indexes and focuses exactly one control of the
// current tab.
func (m *Model) syncFocus() {
	for t := range m.controls {
		ctls := m.controls[t]
		if m.focus[t] >= len(ctls) {
			m.focus[t] = max(len(ctls)-1, 0)
		}
		for i, c := range ctls {
			if Tab(t) == m.tab && i == m.focus[t] {
				c.widget.Focus()
			} else {
				c.widget.Blur()
			}
		}
	}
}

// rebuildControls recreates the per-tab controls from the selection and the
// computed views.
func (m *Model) rebuildControls() {
	var ctls [numTabs][]control

	m.slider.SetValue(m.sel.MinDecade())
	ctls[TabDecade] = append(ctls[TabDecade], control{widget: m.slider})
	for _, t := range songs.DecadeTropes {
		cb := components.NewCheckbox("series-"+string(t), t.Label())
		cb.SetChecked(m.sel.SeriesSelected(t))
		cb.SetSwatch(tropeColor(t))
		ctls[TabDecade] = append(ctls[TabDecade], control{
			widget: cb,
			activate: func() tea.Cmd {
				m.sel.SetSeries(t, !m.sel.SeriesSelected(t))
				return nil
			},
		})
	}
	clicked, hasClicked := m.sel.ClickedDecade()
	for _, d := range m.decades.Decades() {
		btn := components.NewButton("decade-"+strconv.Itoa(d), strconv.Itoa(d)+"s")
		btn.SetActive(hasClicked && clicked == d)
		ctls[TabDecade] = append(ctls[TabDecade], control{
			widget: btn,
			activate: func() tea.Cmd {
				return func() tea.Msg { return DecadeClickedMsg{Decade: d} }
			},
		})
	}

	for i, c := range m.conferences.Keys() {
		g, _ := m.conferences.Group(c)
		cb := components.NewCheckbox("conference-"+c, fmt.Sprintf("%s (n=%d)", c, g.Count))
		cb.SetChecked(m.sel.ConferenceSelected(c))
		cb.SetSwatch(conferenceColor(c, i))
		ctls[TabConference] = append(ctls[TabConference], control{
			widget: cb,
			activate: func() tea.Cmd {
				m.sel.SetConference(c, !m.sel.ConferenceSelected(c))
				return nil
			},
		})
	}
	for _, t := range songs.RadarTropes {
		cb := components.NewCheckbox("dimension-"+string(t), t.Label())
		cb.SetChecked(m.sel.DimensionSelected(t))
		ctls[TabConference] = append(ctls[TabConference], control{
			widget: cb,
			activate: func() tea.Cmd {
				m.sel.SetDimension(t, !m.sel.DimensionSelected(t))
				return nil
			},
		})
	}

	for _, v := range aggregate.Variants {
		btn := components.NewButton("variant-"+string(v), v.Label())
		btn.SetActive(m.sel.Variant() == v)
		ctls[TabAuthorship] = append(ctls[TabAuthorship], control{
			widget: btn,
			activate: func() tea.Cmd {
				m.sel.SetVariant(v)
				return nil
			},
		})
	}

	m.controls = ctls
	m.syncFocus()
}

// reloadCmd re-reads the data file off the update loop.
func reloadCmd(source *dataset.Source) tea.Cmd {
	return func() tea.Msg {
		_, err := source.Reload()
		return DatasetReloadedMsg{Err: err}
	}
}
