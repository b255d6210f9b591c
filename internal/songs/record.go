package songs

import "strings"

// Flag is a tri-state Yes/No value. Unknown values are excluded from
// proportion denominators, never counted as No.
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagNo
	FlagYes
)

// ParseFlag maps "yes"/"no" (trimmed, case-insensitive) to a known flag and
// everything else to FlagUnknown.
func ParseFlag(s string) Flag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes":
		return FlagYes
	case "no":
		return FlagNo
	default:
		return FlagUnknown
	}
}

// Known reports whether the flag is Yes or No.
func (f Flag) Known() bool {
	return f == FlagYes || f == FlagNo
}

func (f Flag) String() string {
	switch f {
	case FlagYes:
		return "Yes"
	case FlagNo:
		return "No"
	default:
		return "Unknown"
	}
}

// Record is one normalized fight song.
type Record struct {
	School string
	Song   string
	Year   int
	Decade int
	// Conference is empty when the row has no conference.
	Conference    string
	StudentWriter Flag
	Contest       Flag

	tropes map[Trope]Flag
}

// NewRecord builds a record for year with the given trope flags. Tropes not
// present in flags are Unknown.
func NewRecord(year int, flags map[Trope]Flag) Record {
	r := Record{
		Year:   year,
		Decade: DecadeOf(year),
		tropes: make(map[Trope]Flag, len(flags)),
	}
	for t, f := range flags {
		r.tropes[t] = f
	}
	return r
}

// Trope returns the flag for t.
func (r Record) Trope(t Trope) Flag {
	return r.tropes[t]
}

// DecadeOf truncates a year to its decade.
func DecadeOf(year int) int {
	return year / 10 * 10
}
