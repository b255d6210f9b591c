package selection

import (
	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/songs"
)

// Snapshot is a value copy of a State, suitable for logging and JSON.
type Snapshot struct {
	MinDecade     int               `json:"min_decade"`
	Series        []songs.Trope     `json:"series"`
	Conferences   []string          `json:"conferences"`
	Dimensions    []songs.Trope     `json:"dimensions"`
	ClickedDecade *int              `json:"clicked_decade"`
	Variant       aggregate.Variant `json:"variant"`
}

// Snapshot returns a copy of the current selection.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		MinDecade:   s.minDecade,
		Series:      s.Series(),
		Conferences: s.Conferences(),
		Dimensions:  s.Dimensions(),
		Variant:     s.variant,
	}
	if d, ok := s.ClickedDecade(); ok {
		snap.ClickedDecade = &d
	}
	return snap
}
