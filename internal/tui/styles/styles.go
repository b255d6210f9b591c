// Package styles provides Lip Gloss styles for the fightsongs dashboard.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wexinc/fightsongs/internal/songs"
)

// Color palette for the TUI.
var (
	// Primary colors
	Primary     = lipgloss.Color("#376F32") // Field green
	Secondary   = lipgloss.Color("#06B6D4") // Cyan
	Success     = lipgloss.Color("#10B981") // Green
	Warning     = lipgloss.Color("#F59E0B") // Amber
	Error       = lipgloss.Color("#EF4444") // Red
	Muted       = lipgloss.Color("#6B7280") // Gray
	MutedLight  = lipgloss.Color("#9CA3AF") // Light Gray
	Background  = lipgloss.Color("#1F2937") // Dark Gray
	Foreground  = lipgloss.Color("#F9FAFB") // White
	BorderColor = lipgloss.Color("#374151") // Border Gray
	YardLine    = lipgloss.Color("#4B5563")
)

// Series colors of the decade line chart.
var TropeColors = map[songs.Trope]lipgloss.Color{
	songs.TropeMen:       lipgloss.Color("#F08080"), // lightcoral
	songs.TropeVictory:   lipgloss.Color("#FFA500"), // orange
	songs.TropeFight:     lipgloss.Color("#87CEFA"), // lightskyblue
	songs.TropeRah:       lipgloss.Color("#FFD700"), // gold
	songs.TropeNonsense:  lipgloss.Color("#40E0D0"), // turquoise
	songs.TropeColors:    lipgloss.Color("#9370DB"), // mediumpurple
	songs.TropeOpponents: lipgloss.Color("#DA70D6"), // orchid
	songs.TropeSpelling:  lipgloss.Color("#C0C0C0"),
}

// ConferenceColors are the official conference colors.
var ConferenceColors = map[string]lipgloss.Color{
	"ACC":     lipgloss.Color("#A5A9AB"),
	"Big Ten": lipgloss.Color("#0088CE"),
	"Big 12":  lipgloss.Color("#C8102E"),
	"Pac-12":  lipgloss.Color("#4B6CB7"), // #092346 is unreadable on a dark terminal
	"SEC":     lipgloss.Color("#FBCE28"),
}

// fallbackColors are used for conferences without an official color.
var fallbackColors = []lipgloss.Color{
	lipgloss.Color("#E76F51"),
	lipgloss.Color("#2A9D8F"),
	lipgloss.Color("#E9C46A"),
	lipgloss.Color("#8AB17D"),
	lipgloss.Color("#B56576"),
}

// BarColors are the authorship bar colors: the "yes" and "no" side of the
// student comparison, then of the contest comparison.
var BarColors = [4]lipgloss.Color{
	lipgloss.Color("#228B22"),
	lipgloss.Color("#8FBC8B"),
	lipgloss.Color("#EF6351"),
	lipgloss.Color("#FBC3BC"),
}

// TropeColor returns the series color for t.
func TropeColor(t songs.Trope) lipgloss.Color {
	if c, ok := TropeColors[t]; ok {
		return c
	}
	return MutedLight
}

// ConferenceColor returns the color for a conference. index is the
// conference's position in the top-K list and picks a fallback color.
func ConferenceColor(name string, index int) lipgloss.Color {
	if c, ok := ConferenceColors[name]; ok {
		return c
	}
	if index < 0 {
		index = -index
	}
	return fallbackColors[index%len(fallbackColors)]
}

// Header styles.
var (
	// HeaderLabelStyle is for header labels.
	HeaderLabelStyle = lipgloss.NewStyle().
				Foreground(MutedLight)

	// HeaderValueStyle is for header values.
	HeaderValueStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true)

	// TitleStyle is for the application title.
	TitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(Primary).
			Bold(true).
			Padding(0, 1)

	// TabStyle is an inactive tab.
	TabStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// ActiveTabStyle is the selected tab.
	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(BorderColor).
			Bold(true).
			Padding(0, 1)

	// SectionTitleStyle heads a block inside a tab.
	SectionTitleStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Bold(true).
				Underline(true)
)

// Box styles.
var (
	// BoxStyle is a standard box with border.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	// FocusedBoxStyle is a box that's currently focused.
	FocusedBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)
)

// Text styles.
var (
	// MutedTextStyle is for de-emphasized text.
	MutedTextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// ErrorTextStyle is for error messages.
	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(Error)

	// SuccessTextStyle is for success messages.
	SuccessTextStyle = lipgloss.NewStyle().
				Foreground(Success)

	// WarningTextStyle is for warning messages.
	WarningTextStyle = lipgloss.NewStyle().
				Foreground(Warning)
)

// Status bar styles.
var (
	// StatusBarStyle is the main status bar container.
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Padding(0, 1)

	// KeyStyle is for keyboard shortcut keys.
	KeyStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// HelpStyle is for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted)
)

// Control styles.
var (
	// LabelStyle is for control labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedLight)

	// LabelFocusedStyle is for the focused control's label.
	LabelFocusedStyle = lipgloss.NewStyle().
				Foreground(Secondary).
				Bold(true)

	// CheckboxCheckedStyle is for checked checkboxes.
	CheckboxCheckedStyle = lipgloss.NewStyle().
				Foreground(Success)

	// CheckboxUncheckedStyle is for unchecked checkboxes.
	CheckboxUncheckedStyle = lipgloss.NewStyle().
				Foreground(Muted)

	// ButtonStyle is an idle button.
	ButtonStyle = lipgloss.NewStyle().
			Foreground(MutedLight).
			Background(BorderColor).
			Padding(0, 1)

	// ButtonFocusedStyle is the focused button.
	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(Background).
				Background(Secondary).
				Bold(true).
				Padding(0, 1)

	// ButtonActiveStyle marks a pressed (selected) button.
	ButtonActiveStyle = lipgloss.NewStyle().
				Foreground(Foreground).
				Background(Primary).
				Bold(true).
				Padding(0, 1)
)
