package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// Button is a pressable button component. A button can also be marked
// active, which is how decade buttons show the clicked decade and radio
// buttons show the chosen option.
type Button struct {
	label   string
	focused bool
	active  bool
	id      string
}

// NewButton creates a new Button component.
func NewButton(id, label string) *Button {
	return &Button{
		label: label,
		id:    id,
	}
}

// ID returns the component's unique identifier.
func (b *Button) ID() string {
	return b.id
}

// Focus focuses the button.
func (b *Button) Focus() tea.Cmd {
	b.focused = true
	return nil
}

// Blur removes focus from the button.
func (b *Button) Blur() {
	b.focused = false
}

// Focused returns whether the button is focused.
func (b *Button) Focused() bool {
	return b.focused
}

// SetActive marks the button as the current choice.
func (b *Button) SetActive(active bool) {
	b.active = active
}

// Active reports whether the button is the current choice.
func (b *Button) Active() bool {
	return b.active
}

// SetLabel sets the button label.
func (b *Button) SetLabel(label string) {
	b.label = label
}

// Label returns the button label.
func (b *Button) Label() string {
	return b.label
}

// Update handles messages for the button.
// Returns true if the button was activated.
func (b *Button) Update(msg tea.Msg) (*Button, tea.Cmd, bool) {
	if !b.focused {
		return b, nil, false
	}

	activated := false
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			activated = true
		}
	}

	return b, nil, activated
}

// View renders the button.
func (b *Button) View() string {
	switch {
	case b.focused:
		return styles.ButtonFocusedStyle.Render(b.label)
	case b.active:
		return styles.ButtonActiveStyle.Render(b.label)
	default:
		return styles.ButtonStyle.Render(b.label)
	}
}

// Radio renders the button as a radio option: "(•) label" when active.
func (b *Button) Radio() string {
	mark := "( )"
	if b.active {
		mark = styles.CheckboxCheckedStyle.Render("(•)")
	}
	label := styles.LabelStyle
	cursor := "  "
	if b.focused {
		label = styles.LabelFocusedStyle
		cursor = styles.KeyStyle.Render("> ")
	}
	return cursor + mark + " " + label.Render(b.label)
}
