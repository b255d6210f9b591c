package components

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/tui/styles"
)

// StatusBarData contains the data to display in the status bar.
type StatusBarData struct {
	DataPath  string
	Rows      int
	Available bool
	SessionID string
	LoadedAt  time.Time
	Message   string // Optional status message
	IsError   bool   // Render Message as an error
}

// StatusBar is a component that displays the data source and the last
// status message.
type StatusBar struct {
	data  StatusBarData
	help  string
	width int
}

// NewStatusBar creates a new StatusBar component.
func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// SetData updates the status bar data.
func (s *StatusBar) SetData(data StatusBarData) {
	s.data = data
}

// Data returns the current status bar data.
func (s *StatusBar) Data() StatusBarData {
	return s.data
}

// SetMessage sets an optional status message.
func (s *StatusBar) SetMessage(message string) {
	s.data.Message = message
	s.data.IsError = false
}

// SetError sets an error message.
func (s *StatusBar) SetError(message string) {
	s.data.Message = message
	s.data.IsError = true
}

// SetHelp sets the rendered key help shown on the right.
func (s *StatusBar) SetHelp(help string) {
	s.help = help
}

// SetWidth sets the width of the status bar.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	sep := lipgloss.NewStyle().
		Foreground(styles.Muted).
		Render(" │ ")

	file := s.data.DataPath
	if file == "" {
		file = "-"
	} else {
		file = filepath.Base(file)
	}

	var rows string
	if s.data.Available {
		rows = styles.HeaderValueStyle.Render(fmt.Sprintf("%d", s.data.Rows))
	} else {
		rows = styles.WarningTextStyle.Render("no data")
	}

	left := styles.HeaderLabelStyle.Render("Data: ") + styles.HeaderValueStyle.Render(file) +
		sep + styles.HeaderLabelStyle.Render("Rows: ") + rows

	if !s.data.LoadedAt.IsZero() {
		left += sep + styles.HeaderLabelStyle.Render("Loaded: ") +
			styles.HeaderValueStyle.Render(s.data.LoadedAt.Format("15:04:05"))
	}

	if s.data.SessionID != "" {
		short := s.data.SessionID
		if len(short) > 8 {
			short = short[:8]
		}
		left += sep + styles.HeaderLabelStyle.Render("Session: ") + styles.HeaderValueStyle.Render(short)
	}

	if s.data.Message != "" {
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.MutedLight).
			Italic(true)
		if s.data.IsError {
			msgStyle = styles.ErrorTextStyle
		}
		left += sep + msgStyle.Render(s.data.Message)
	}

	containerStyle := styles.StatusBarStyle.Background(styles.Background)

	if s.width > 0 {
		containerStyle = containerStyle.Width(s.width)

		padding := s.width - lipgloss.Width(left) - lipgloss.Width(s.help) - 2 // -2 for container padding
		if padding > 0 {
			return containerStyle.Render(left + strings.Repeat(" ", padding) + s.help)
		}
	}

	if s.help == "" {
		return containerStyle.Render(left)
	}
	return containerStyle.Render(left + "  " + s.help)
}
