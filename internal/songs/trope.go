// Package songs loads the fight-songs CSV into immutable, normalized records.
package songs

import (
	"fmt"
	"strings"
)

// Trope is a binary lyrical feature tracked per song. Its value is the CSV
// column name.
type Trope string

const (
	TropeMen       Trope = "men"
	TropeVictory   Trope = "victory_win_won"
	TropeFight     Trope = "fight"
	TropeRah       Trope = "rah"
	TropeNonsense  Trope = "nonsense"
	TropeColors    Trope = "colors"
	TropeOpponents Trope = "opponents"
	// TropeSpelling is only tracked for the authorship view. The dataset
	// gives it no further definition, so it is treated as an opaque flag.
	TropeSpelling Trope = "spelling"
)

// AllTropes lists every trope column the loader reads.
var AllTropes = []Trope{
	TropeMen, TropeVictory, TropeFight, TropeRah,
	TropeNonsense, TropeColors, TropeOpponents, TropeSpelling,
}

// DecadeTropes is the series order of the decade line chart.
var DecadeTropes = []Trope{
	TropeMen, TropeVictory, TropeFight, TropeRah,
	TropeColors, TropeNonsense, TropeOpponents,
}

// RadarTropes is the axis order of the conference radar chart.
var RadarTropes = []Trope{
	TropeVictory, TropeFight, TropeRah, TropeNonsense,
	TropeMen, TropeColors, TropeOpponents,
}

// AuthorshipTropes is the bar order of the authorship chart.
var AuthorshipTropes = []Trope{
	TropeFight, TropeVictory, TropeRah, TropeNonsense,
	TropeColors, TropeMen, TropeOpponents, TropeSpelling,
}

var tropeLabels = map[Trope]string{
	TropeMen:       "Men",
	TropeVictory:   "Victory / Win / Won",
	TropeFight:     "Fight",
	TropeRah:       "Rah",
	TropeNonsense:  "Nonsense",
	TropeColors:    "Colors",
	TropeOpponents: "Opponents",
	TropeSpelling:  "Spelling",
}

// shortLabels are used where space is tight (radar axes, stats lines).
var shortLabels = map[Trope]string{
	TropeVictory: "Victory",
}

// Label returns the display label of the trope.
func (t Trope) Label() string {
	if l, ok := tropeLabels[t]; ok {
		return l
	}
	return string(t)
}

// ShortLabel returns a compact display label.
func (t Trope) ShortLabel() string {
	if l, ok := shortLabels[t]; ok {
		return l
	}
	return t.Label()
}

// Valid reports whether t is one of the tracked tropes.
func (t Trope) Valid() bool {
	_, ok := tropeLabels[t]
	return ok
}

// ParseTrope accepts a column name, a label, or a short alias such as
// "victory" (case-insensitive).
func ParseTrope(s string) (Trope, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "victory" || s == "victory/win/won" {
		return TropeVictory, nil
	}
	for _, t := range AllTropes {
		if s == string(t) || s == strings.ToLower(t.Label()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trope %q", s)
}

// ParseTropes parses a list of trope names, preserving order and dropping
// duplicates.
func ParseTropes(names []string) ([]Trope, error) {
	seen := make(map[Trope]bool, len(names))
	out := make([]Trope, 0, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		t, err := ParseTrope(n)
		if err != nil {
			return nil, err
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}
