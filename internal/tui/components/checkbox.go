// Package components provides reusable TUI components for the fightsongs
// dashboard.
package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// Checkbox is a toggle checkbox component.
type Checkbox struct {
	label   string
	checked bool
	focused bool
	id      string
	swatch  lipgloss.TerminalColor
}

// NewCheckbox creates a new Checkbox component.
func NewCheckbox(id, label string) *Checkbox {
	return &Checkbox{
		label: label,
		id:    id,
	}
}

// ID returns the component's unique identifier.
func (c *Checkbox) ID() string {
	return c.id
}

// Focus focuses the checkbox.
func (c *Checkbox) Focus() tea.Cmd {
	c.focused = true
	return nil
}

// Blur removes focus from the checkbox.
func (c *Checkbox) Blur() {
	c.focused = false
}

// Focused returns whether the checkbox is focused.
func (c *Checkbox) Focused() bool {
	return c.focused
}

// Toggle toggles the checkbox state.
func (c *Checkbox) Toggle() {
	c.checked = !c.checked
}

// SetChecked sets the checkbox state.
func (c *Checkbox) SetChecked(checked bool) {
	c.checked = checked
}

// Checked returns whether the checkbox is checked.
func (c *Checkbox) Checked() bool {
	return c.checked
}

// SetSwatch shows a colored marker after the box, tying the checkbox to a
// chart series.
func (c *Checkbox) SetSwatch(color lipgloss.TerminalColor) {
	c.swatch = color
}

// Update handles messages for the checkbox. The returned bool reports
// whether the checkbox was toggled.
func (c *Checkbox) Update(msg tea.Msg) (*Checkbox, tea.Cmd, bool) {
	if !c.focused {
		return c, nil, false
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			c.Toggle()
			return c, nil, true
		}
	}

	return c, nil, false
}

// View renders the checkbox.
func (c *Checkbox) View() string {
	var box string
	if c.checked {
		box = styles.CheckboxCheckedStyle.Render("[✓]")
	} else {
		box = styles.CheckboxUncheckedStyle.Render("[ ]")
	}

	labelStyle := styles.LabelStyle
	cursor := "  "
	if c.focused {
		labelStyle = styles.LabelFocusedStyle
		cursor = styles.KeyStyle.Render("> ")
	}

	view := cursor + box + " "
	if c.swatch != nil {
		view += lipgloss.NewStyle().Foreground(c.swatch).Render("■") + " "
	}
	return view + labelStyle.Render(c.label)
}

// SetLabel sets the checkbox label.
func (c *Checkbox) SetLabel(label string) {
	c.label = label
}

// Label returns the checkbox label.
func (c *Checkbox) Label() string {
	return c.label
}
