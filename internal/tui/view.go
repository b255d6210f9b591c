package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/history"
	"github.com/wexinc/fightsongs/internal/songs"
	"github.com/wexinc/fightsongs/internal/tui/components"
	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// Texts shown by the dashboard.
const (
	NoDataText           = "No data available."
	NoConferenceText     = "Select one or more conferences."
	NoConferenceDataText = "No conference data available."

	overviewText = "College fight songs sit where music, athletics and institutional identity " +
		"meet. This dashboard looks at how common lyrical tropes (victory, opponents, school " +
		"colors, collective identity) changed across decades, between athletic conferences, " +
		"and with who wrote the song.\n\n" +
		"The data is FiveThirtyEight's collection of Power Five fight songs, from the late " +
		"19th century to the modern era."

	conferenceText = "Proportion of songs featuring each trope, by athletic conference. " +
		"Conferences are the Power Five as they stood in 2022."

	authorshipText = "Proportion of songs featuring each trope, by who wrote the song and how " +
		"it was selected."
)

func tropeColor(t songs.Trope) lipgloss.Color {
	return styles.TropeColor(t)
}

func conferenceColor(name string, index int) lipgloss.Color {
	return styles.ConferenceColor(name, index)
}

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	switch m.tab {
	case TabOverview:
		body = m.viewOverview()
	case TabDecade:
		body = m.viewDecade()
	case TabConference:
		body = m.viewConference()
	case TabAuthorship:
		body = m.viewAuthorship()
	}

	m.statusBar.SetHelp(m.help.ShortHelpView(m.keys.ShortHelp()))
	parts := []string{m.header.View(), lipgloss.NewStyle().Padding(0, 1).Render(body)}
	if m.help.ShowAll {
		parts = append(parts, lipgloss.NewStyle().Padding(0, 1).Render(m.help.FullHelpView(m.keys.FullHelp())))
	}
	parts = append(parts, m.statusBar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// textWidth is the wrapping width of prose.
func (m *Model) textWidth() int {
	if m.width <= 0 {
		return 80
	}
	return min(m.width-4, 100)
}

func (m *Model) paragraph(s string) string {
	return lipgloss.NewStyle().Width(m.textWidth()).Render(s)
}

func (m *Model) noData() string {
	return styles.WarningTextStyle.Render(NoDataText)
}

func (m *Model) viewOverview() string {
	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("College Fight Song Analysis") + "\n\n")
	b.WriteString(m.paragraph(overviewText) + "\n\n")

	if !m.ds.Available() {
		b.WriteString(m.noData())
		return b.String()
	}

	decades := m.cache.Decades(m.ds, 0, songs.DecadeTropes).Decades()
	all := m.cache.Conferences(m.ds, songs.RadarTropes)
	fmt.Fprintf(&b, "%s %s\n", styles.HeaderLabelStyle.Render("Songs:      "), styles.HeaderValueStyle.Render(strconv.Itoa(m.ds.Len())))
	if len(decades) > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.HeaderLabelStyle.Render("Decades:    "),
			styles.HeaderValueStyle.Render(fmt.Sprintf("%ds to %ds", decades[0], decades[len(decades)-1])))
	}
	fmt.Fprintf(&b, "%s %s\n", styles.HeaderLabelStyle.Render("Conferences:"), styles.HeaderValueStyle.Render(strconv.Itoa(len(all.Groups))))
	if dropped := m.ds.Dropped(); dropped > 0 {
		fmt.Fprintf(&b, "%s %s\n", styles.HeaderLabelStyle.Render("Skipped:    "),
			styles.MutedTextStyle.Render(fmt.Sprintf("%d rows without a year", dropped)))
	}
	return b.String()
}

func (m *Model) viewControls(tab Tab, from, to int) []string {
	ctls := m.controls[tab]
	to = min(to, len(ctls))
	out := make([]string, 0, max(to-from, 0))
	for _, c := range ctls[from:to] {
		out = append(out, c.widget.View())
	}
	return out
}

func (m *Model) viewDecade() string {
	if !m.ds.Available() {
		return m.noData()
	}

	nSeries := len(songs.DecadeTropes)
	var b strings.Builder

	// slider and series checkboxes
	controls := m.viewControls(TabDecade, 0, 1+nSeries)
	b.WriteString(controls[0] + "\n")
	b.WriteString(strings.Join(controls[1:], "\n") + "\n\n")

	// decade buttons
	b.WriteString(styles.SectionTitleStyle.Render("Select a decade") + "\n")
	buttons := m.viewControls(TabDecade, 1+nSeries, len(m.controls[TabDecade]))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, joinSpaced(buttons)...) + "\n\n")

	// historical context
	if d, ok := m.sel.ClickedDecade(); ok {
		b.WriteString(styles.HeaderValueStyle.Render(fmt.Sprintf("%ds", d)) + "\n")
		b.WriteString(m.paragraph(history.Text(d)) + "\n\n")
	} else {
		b.WriteString(styles.MutedTextStyle.Render(history.PromptText) + "\n\n")
	}

	// line chart
	xs := m.decades.Decades()
	labels := make([]string, len(xs))
	for i, d := range xs {
		labels[i] = strconv.Itoa(d)
	}
	var series []components.LineSeries
	for _, t := range m.sel.Series() {
		series = append(series, components.LineSeries{
			Name:   t.Label(),
			Color:  tropeColor(t),
			Values: m.decades.Series(t),
		})
	}
	m.lineChart.SetData(labels, series)
	b.WriteString(styles.MutedTextStyle.Render("Proportion of songs using each trope") + "\n")
	b.WriteString(m.lineChart.View())
	return b.String()
}

func (m *Model) viewConference() string {
	if !m.ds.Available() {
		return m.noData()
	}

	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("Fight Song Trope Profiles by Conference") + "\n")
	b.WriteString(m.paragraph(conferenceText) + "\n\n")

	nConf := len(m.conferences.Groups)
	if nConf == 0 {
		b.WriteString(styles.MutedTextStyle.Render(NoConferenceDataText) + "\n\n")
	}
	confs := m.viewControls(TabConference, 0, nConf)
	dims := m.viewControls(TabConference, nConf, len(m.controls[TabConference]))
	left := styles.LabelStyle.Render("Conferences") + "\n" + strings.Join(confs, "\n")
	right := styles.LabelStyle.Render("Dimensions") + "\n" + strings.Join(dims, "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right) + "\n\n")

	selected := m.sel.Conferences()
	if len(selected) == 0 {
		b.WriteString(styles.MutedTextStyle.Render(NoConferenceText))
		return b.String()
	}

	// stats lines, one per selected conference
	keys := m.conferences.Keys()
	for _, c := range selected {
		g, ok := m.conferences.Group(c)
		if !ok {
			continue
		}
		bar := lipgloss.NewStyle().Foreground(conferenceColor(c, slices.Index(keys, c))).Render("▌")
		b.WriteString(bar + " " + styles.HeaderValueStyle.Render(c) + "\n")
		b.WriteString(bar + " " + g.StatsLine(songs.RadarTropes) + "\n")
	}
	b.WriteString("\n")

	dimensions, err := m.sel.RadarDimensions()
	if err != nil {
		b.WriteString(styles.WarningTextStyle.Render(err.Error()))
		return b.String()
	}

	axes := make([]string, len(dimensions))
	for i, t := range dimensions {
		axes[i] = t.ShortLabel()
	}
	var series []components.LineSeries
	for _, c := range selected {
		g, ok := m.conferences.Group(c)
		if !ok {
			continue
		}
		values := make([]aggregate.Proportion, len(dimensions))
		for i, t := range dimensions {
			values[i] = g.Value(t)
		}
		series = append(series, components.LineSeries{
			Name:   fmt.Sprintf("%s (n=%d)", c, g.Count),
			Color:  conferenceColor(c, slices.Index(keys, c)),
			Values: values,
		})
	}
	m.radar.SetData(axes, series)
	b.WriteString(m.radar.View())
	return b.String()
}

func (m *Model) viewAuthorship() string {
	if !m.ds.Available() {
		return m.noData()
	}

	var b strings.Builder
	b.WriteString(styles.SectionTitleStyle.Render("Fight Song Trope Usage by Authorship") + "\n")
	b.WriteString(m.paragraph(authorshipText) + "\n\n")

	radios := make([]string, 0, len(m.controls[TabAuthorship]))
	for _, c := range m.controls[TabAuthorship] {
		if btn, ok := c.widget.(*components.Button); ok {
			radios = append(radios, btn.Radio())
		}
	}
	b.WriteString(strings.Join(radios, "   ") + "\n\n")

	variant := m.sel.Variant()
	yesGroup, noGroup := m.authorship.Pair(variant)
	yesLabel, noLabel := aggregate.PairLabels(variant)
	colors := []lipgloss.Color{styles.BarColors[0], styles.BarColors[1]}
	title := "Trope Usage by Student Authorship"
	if variant == aggregate.VariantContest {
		colors = []lipgloss.Color{styles.BarColors[2], styles.BarColors[3]}
		title = "Trope Usage by Contest Selection"
	}

	rows := make([]components.BarRow, 0, len(m.authorship.Tropes))
	for _, t := range m.authorship.Tropes {
		rows = append(rows, components.BarRow{
			Label:  t.Label(),
			Values: []aggregate.Proportion{yesGroup.Value(t), noGroup.Value(t)},
		})
	}
	m.barChart.SetTitle(title, "Proportion of Songs")
	m.barChart.SetSeries([]string{
		fmt.Sprintf("%s (n=%d)", yesLabel, yesGroup.Count),
		fmt.Sprintf("%s (n=%d)", noLabel, noGroup.Count),
	}, colors)
	m.barChart.SetRows(rows)
	b.WriteString(m.barChart.View())
	return b.String()
}

func joinSpaced(items []string) []string {
	out := make([]string, 0, 2*len(items))
	for i, s := range items {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, s)
	}
	return out
}
