package components

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// Slider picks one of an ascending list of integer values.
type Slider struct {
	id      string
	label   string
	values  []int
	index   int
	focused bool
	width   int
}

// NewSlider creates a slider positioned at the first value.
func NewSlider(id, label string, values []int) *Slider {
	return &Slider{
		id:     id,
		label:  label,
		values: append([]int(nil), values...),
		width:  24,
	}
}

// ID returns the component's unique identifier.
func (s *Slider) ID() string {
	return s.id
}

// Focus focuses the slider.
func (s *Slider) Focus() tea.Cmd {
	s.focused = true
	return nil
}

// Blur removes focus from the slider.
func (s *Slider) Blur() {
	s.focused = false
}

// Focused returns whether the slider is focused.
func (s *Slider) Focused() bool {
	return s.focused
}

// Value returns the selected value, or 0 for an empty slider.
func (s *Slider) Value() int {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[s.index]
}

// SetValue moves the slider to the largest value not above v, or to the
// first value when v is below all of them.
func (s *Slider) SetValue(v int) {
	s.index = 0
	for i, candidate := range s.values {
		if candidate <= v {
			s.index = i
		}
	}
}

// Update moves the slider on left/right when focused. The returned bool
// reports whether the value changed.
func (s *Slider) Update(msg tea.Msg) (*Slider, tea.Cmd, bool) {
	if !s.focused || len(s.values) == 0 {
		return s, nil, false
	}

	before := s.index
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "left", "h":
			s.index = max(s.index-1, 0)
		case "right", "l":
			s.index = min(s.index+1, len(s.values)-1)
		case "home":
			s.index = 0
		case "end":
			s.index = len(s.values) - 1
		}
	}
	return s, nil, s.index != before
}

// View renders the slider: label, track with a knob, and the value.
func (s *Slider) View() string {
	labelStyle := styles.LabelStyle
	cursor := "  "
	if s.focused {
		labelStyle = styles.LabelFocusedStyle
		cursor = styles.KeyStyle.Render("> ")
	}
	if len(s.values) == 0 {
		return cursor + labelStyle.Render(s.label)
	}

	knob := 0
	if len(s.values) > 1 {
		knob = s.index * (s.width - 1) / (len(s.values) - 1)
	}
	track := styles.KeyStyle.Render(strings.Repeat("━", knob)) +
		styles.HeaderValueStyle.Render("●") +
		styles.MutedTextStyle.Render(strings.Repeat("─", s.width-1-knob))

	first := strconv.Itoa(s.values[0])
	last := strconv.Itoa(s.values[len(s.values)-1])
	return cursor + labelStyle.Render(s.label) + "  " +
		styles.MutedTextStyle.Render(first) + " " + track + " " + styles.MutedTextStyle.Render(last) +
		"  " + styles.HeaderValueStyle.Render(strconv.Itoa(s.Value()))
}
