// Package selection holds the user-adjustable parameters that decide which
// aggregations are computed and shown.
//
// A State belongs to one session and is not safe for concurrent use. Every
// mutator takes the target value explicitly, so applying the same call twice
// leaves the state unchanged.
package selection

import (
	"slices"
	"strconv"

	"github.com/wexinc/fightsongs/internal/aggregate"
	fserrors "github.com/wexinc/fightsongs/internal/errors"
	"github.com/wexinc/fightsongs/internal/songs"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultDecadeMin        = 1890
	DefaultDecadeMax        = 1960
	DefaultDecadeStep       = 10
	DefaultConferences      = 2
	DefaultMinRadarSelected = 3
)

// Options configures a new State.
type Options struct {
	DecadeMin  int
	DecadeMax  int
	DecadeStep int
	// DefaultConferences is how many of the top conferences are selected on
	// the first Reconcile.
	DefaultConferences int
	// MinRadarDimensions is the fewest dimensions a radar chart accepts.
	MinRadarDimensions int
	Variant            aggregate.Variant
	// Logf receives pruning notices. Optional.
	Logf func(format string, args ...any)
}

func (o *Options) applyDefaults() {
	if o.DecadeMin == 0 {
		o.DecadeMin = DefaultDecadeMin
	}
	if o.DecadeMax == 0 {
		o.DecadeMax = DefaultDecadeMax
	}
	if o.DecadeStep <= 0 {
		o.DecadeStep = DefaultDecadeStep
	}
	if o.DecadeMax < o.DecadeMin {
		o.DecadeMax = o.DecadeMin
	}
	if o.DefaultConferences <= 0 {
		o.DefaultConferences = DefaultConferences
	}
	if o.MinRadarDimensions <= 0 {
		o.MinRadarDimensions = DefaultMinRadarSelected
	}
	if o.Variant == "" {
		o.Variant = aggregate.VariantStudent
	}
}

// State is the selection for one session.
type State struct {
	opts Options

	minDecade   int
	series      map[songs.Trope]bool
	conferences []string
	dimensions  map[songs.Trope]bool
	clicked     int
	hasClicked  bool
	variant     aggregate.Variant

	// seeded is set once the default conferences have been applied.
	seeded bool
	// offered is the top-K list from the last Reconcile.
	offered []string
}

// New creates a State with the documented defaults: the earliest decade,
// every decade series, every radar dimension, no clicked decade and the
// configured variant. Conferences are seeded by the first Reconcile.
func New(opts Options) *State {
	opts.applyDefaults()
	s := &State{
		opts:       opts,
		minDecade:  opts.DecadeMin,
		series:     make(map[songs.Trope]bool, len(songs.DecadeTropes)),
		dimensions: make(map[songs.Trope]bool, len(songs.RadarTropes)),
		variant:    opts.Variant,
	}
	for _, t := range songs.DecadeTropes {
		s.series[t] = true
	}
	for _, t := range songs.RadarTropes {
		s.dimensions[t] = true
	}
	return s
}

// DecadeChoices returns the decades the slider can take, ascending.
func (s *State) DecadeChoices() []int {
	var out []int
	for d := s.opts.DecadeMin; d <= s.opts.DecadeMax; d += s.opts.DecadeStep {
		out = append(out, d)
	}
	return out
}

// MinDecade returns the minimum-decade threshold.
func (s *State) MinDecade() int { return s.minDecade }

// SetMinDecade sets the threshold, clamped to the configured range and
// snapped down to a step.
func (s *State) SetMinDecade(d int) {
	if d < s.opts.DecadeMin {
		d = s.opts.DecadeMin
	}
	if d > s.opts.DecadeMax {
		d = s.opts.DecadeMax
	}
	d = s.opts.DecadeMin + (d-s.opts.DecadeMin)/s.opts.DecadeStep*s.opts.DecadeStep
	s.minDecade = d
}

// StepMinDecade moves the threshold by delta steps.
func (s *State) StepMinDecade(delta int) {
	s.SetMinDecade(s.minDecade + delta*s.opts.DecadeStep)
}

// Series returns the selected decade series in line-chart order.
func (s *State) Series() []songs.Trope {
	return selected(songs.DecadeTropes, s.series)
}

// SeriesSelected reports whether t is a selected series.
func (s *State) SeriesSelected(t songs.Trope) bool { return s.series[t] }

// SetSeries selects or deselects a decade series. Unknown tropes are ignored.
func (s *State) SetSeries(t songs.Trope, on bool) {
	if !slices.Contains(songs.DecadeTropes, t) {
		return
	}
	s.series[t] = on
}

// SetAllSeries replaces the series selection.
func (s *State) SetAllSeries(tropes []songs.Trope) {
	for _, t := range songs.DecadeTropes {
		s.series[t] = false
	}
	for _, t := range tropes {
		s.SetSeries(t, true)
	}
}

// Conferences returns the selected conferences in top-K order when known,
// otherwise in selection order.
func (s *State) Conferences() []string {
	if len(s.offered) == 0 {
		return slices.Clone(s.conferences)
	}
	out := make([]string, 0, len(s.conferences))
	for _, c := range s.offered {
		if slices.Contains(s.conferences, c) {
			out = append(out, c)
		}
	}
	return out
}

// ConferenceSelected reports whether c is selected.
func (s *State) ConferenceSelected(c string) bool {
	return slices.Contains(s.conferences, c)
}

// SetConference selects or deselects a conference. Selecting a conference
// marks the defaults as applied so Reconcile never overrides a user choice.
func (s *State) SetConference(c string, on bool) {
	s.seeded = true
	i := slices.Index(s.conferences, c)
	switch {
	case on && i < 0:
		s.conferences = append(s.conferences, c)
	case !on && i >= 0:
		s.conferences = slices.Delete(s.conferences, i, i+1)
	}
}

// SetConferences replaces the conference selection.
func (s *State) SetConferences(cs []string) {
	s.seeded = true
	s.conferences = s.conferences[:0]
	for _, c := range cs {
		s.SetConference(c, true)
	}
}

// Dimensions returns the selected radar dimensions in radar order.
func (s *State) Dimensions() []songs.Trope {
	return selected(songs.RadarTropes, s.dimensions)
}

// DimensionSelected reports whether t is a selected radar dimension.
func (s *State) DimensionSelected(t songs.Trope) bool { return s.dimensions[t] }

// SetDimension selects or deselects a radar dimension. Unknown tropes are
// ignored.
func (s *State) SetDimension(t songs.Trope, on bool) {
	if !slices.Contains(songs.RadarTropes, t) {
		return
	}
	s.dimensions[t] = on
}

// SetAllDimensions replaces the radar dimension selection.
func (s *State) SetAllDimensions(tropes []songs.Trope) {
	for _, t := range songs.RadarTropes {
		s.dimensions[t] = false
	}
	for _, t := range tropes {
		s.SetDimension(t, true)
	}
}

// RadarDimensions returns the selected dimensions, or an
// InsufficientSelection error when fewer than the minimum are selected.
// The dimensions are returned in both cases.
func (s *State) RadarDimensions() ([]songs.Trope, error) {
	dims := s.Dimensions()
	if len(dims) < s.opts.MinRadarDimensions {
		return dims, fserrors.InsufficientSelection("radar", len(dims), s.opts.MinRadarDimensions)
	}
	return dims, nil
}

// ClickedDecade returns the last clicked decade, if any.
func (s *State) ClickedDecade() (int, bool) { return s.clicked, s.hasClicked }

// ClickDecade records d as the decade whose context is shown.
func (s *State) ClickDecade(d int) {
	s.clicked = d
	s.hasClicked = true
}

// ClearClickedDecade unsets the clicked decade.
func (s *State) ClearClickedDecade() {
	s.clicked = 0
	s.hasClicked = false
}

// Variant returns the authorship variant.
func (s *State) Variant() aggregate.Variant { return s.variant }

// SetVariant sets the authorship variant. Unknown values are ignored.
func (s *State) SetVariant(v aggregate.Variant) {
	if slices.Contains(aggregate.Variants, v) {
		s.variant = v
	}
}

// Reconcile aligns the state with freshly computed groups. decades is the
// list of decades currently offered as buttons and topK the current top
// conferences in order. Selected conferences outside topK are dropped,
// the default conferences are seeded once, and a clicked decade that is no
// longer offered is cleared. It reports whether anything changed.
func (s *State) Reconcile(decades []int, topK []string) bool {
	changed := false
	s.offered = slices.Clone(topK)

	kept := s.conferences[:0]
	for _, c := range s.conferences {
		if slices.Contains(topK, c) {
			kept = append(kept, c)
			continue
		}
		changed = true
		s.logf("pruned selection: %v", fserrors.UnknownGroupReference("conference", c))
	}
	s.conferences = kept

	if !s.seeded && len(topK) > 0 {
		n := min(s.opts.DefaultConferences, len(topK))
		s.conferences = slices.Clone(topK[:n])
		s.seeded = true
		changed = true
	}

	if s.hasClicked && !slices.Contains(decades, s.clicked) {
		s.logf("pruned selection: %v", fserrors.UnknownGroupReference("decade", strconv.Itoa(s.clicked)))
		s.ClearClickedDecade()
		changed = true
	}
	return changed
}

func (s *State) logf(format string, args ...any) {
	if s.opts.Logf != nil {
		s.opts.Logf(format, args...)
	}
}

// MinRadarDimensions returns the configured radar minimum.
func (s *State) MinRadarDimensions() int { return s.opts.MinRadarDimensions }

func selected(order []songs.Trope, set map[songs.Trope]bool) []songs.Trope {
	out := make([]songs.Trope, 0, len(order))
	for _, t := range order {
		if set[t] {
			out = append(out, t)
		}
	}
	return out
}
