package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// Header displays the application title and the tab strip.
type Header struct {
	title  string
	tabs   []string
	active int
	width  int
}

// NewHeader creates a new Header component.
func NewHeader(title string, tabs ...string) *Header {
	return &Header{
		title: title,
		tabs:  tabs,
	}
}

// SetActive selects the highlighted tab. Out of range values are ignored.
func (h *Header) SetActive(i int) {
	if i >= 0 && i < len(h.tabs) {
		h.active = i
	}
}

// Active returns the index of the highlighted tab.
func (h *Header) Active() int {
	return h.active
}

// SetWidth sets the width for the header.
func (h *Header) SetWidth(width int) {
	h.width = width
}

// View renders the header.
func (h *Header) View() string {
	parts := []string{styles.TitleStyle.Render(h.title)}
	for i, tab := range h.tabs {
		label := strings.TrimSpace(tab)
		if i == h.active {
			parts = append(parts, styles.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, styles.TabStyle.Render(label))
		}
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	headerStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(styles.BorderColor)

	if h.width > 0 {
		headerStyle = headerStyle.Width(h.width)
	}

	return headerStyle.Render(content)
}
