// Package report builds the headless views of the dashboard: the same
// aggregations the TUI draws, shaped for tables and JSON. The report command
// and the HTTP server both build a fresh selection per request from Params.
package report

import (
	"slices"
	"strconv"

	"github.com/wexinc/fightsongs/internal/aggregate"
	fserrors "github.com/wexinc/fightsongs/internal/errors"
	"github.com/wexinc/fightsongs/internal/history"
	"github.com/wexinc/fightsongs/internal/selection"
	"github.com/wexinc/fightsongs/internal/songs"
)

// Messages reported in place of chart data.
const (
	NoDataMessage       = "No data available."
	NoConferenceMessage = "Select one or more conferences."
)

// Params are the request-scoped selection parameters. Zero values keep the
// selection defaults.
type Params struct {
	MinDecade   int
	Series      []string
	TopK        int
	Conferences []string
	Dimensions  []string
	Variant     string
}

// State builds a fresh selection from the params. Malformed values return an
// InvalidParameter error; conference names are not checked here because
// stale ones are pruned when the selection is reconciled.
func (p Params) State(opts selection.Options) (*selection.State, error) {
	if p.Variant != "" {
		v, err := aggregate.ParseVariant(p.Variant)
		if err != nil {
			return nil, fserrors.InvalidParameter("variant", p.Variant, "want student or contest")
		}
		opts.Variant = v
	}
	st := selection.New(opts)

	if p.MinDecade < 0 {
		return nil, fserrors.InvalidParameter("min_decade", strconv.Itoa(p.MinDecade), "must not be negative")
	}
	if p.MinDecade > 0 {
		st.SetMinDecade(p.MinDecade)
	}
	if p.TopK < 0 {
		return nil, fserrors.InvalidParameter("top_k", strconv.Itoa(p.TopK), "must not be negative")
	}

	if len(p.Series) > 0 {
		series, err := parseTropes("series", p.Series, songs.DecadeTropes)
		if err != nil {
			return nil, err
		}
		st.SetAllSeries(series)
	}
	if len(p.Dimensions) > 0 {
		dims, err := parseTropes("dims", p.Dimensions, songs.RadarTropes)
		if err != nil {
			return nil, err
		}
		st.SetAllDimensions(dims)
	}
	if len(p.Conferences) > 0 {
		st.SetConferences(p.Conferences)
	}
	return st, nil
}

func parseTropes(param string, names []string, allowed []songs.Trope) ([]songs.Trope, error) {
	out := make([]songs.Trope, 0, len(names))
	for _, name := range names {
		t, err := songs.ParseTrope(name)
		if err != nil {
			return nil, fserrors.InvalidParameter(param, name, "unknown trope")
		}
		if !slices.Contains(allowed, t) {
			return nil, fserrors.InvalidParameter(param, name, "trope is not offered in this view")
		}
		out = append(out, t)
	}
	return out, nil
}

// Line is one decade series.
type Line struct {
	Trope  songs.Trope            `json:"trope"`
	Label  string                 `json:"label"`
	Values []aggregate.Proportion `json:"values"`
}

// DecadesReport is the decade line chart as data.
type DecadesReport struct {
	Available bool   `json:"available"`
	MinDecade int    `json:"min_decade"`
	Decades   []int  `json:"decades"`
	Series    []Line `json:"series"`
	Message   string `json:"message,omitempty"`
}

// Decades builds the decade view for the selected series.
func Decades(ds *songs.Dataset, cache *aggregate.Cache, st *selection.State) DecadesReport {
	r := DecadesReport{MinDecade: st.MinDecade(), Decades: []int{}, Series: []Line{}}
	table := cache.Decades(ds, st.MinDecade(), songs.DecadeTropes)
	if !table.Available {
		r.Message = NoDataMessage
		return r
	}
	r.Available = true
	r.Decades = table.Decades()
	for _, t := range st.Series() {
		r.Series = append(r.Series, Line{Trope: t, Label: t.Label(), Values: table.Series(t)})
	}
	return r
}

// ConferenceRow is one offered conference.
type ConferenceRow struct {
	Conference string                               `json:"conference"`
	Count      int                                  `json:"count"`
	Selected   bool                                 `json:"selected"`
	Values     map[songs.Trope]aggregate.Proportion `json:"values"`
	Stats      string                               `json:"stats"`
}

// RadarSeries is one conference polygon on the radar chart.
type RadarSeries struct {
	Conference string                 `json:"conference"`
	Values     []aggregate.Proportion `json:"values"`
}

// ConferencesReport is the conference radar view as data. Radar is empty
// whenever Message is set.
type ConferencesReport struct {
	Available   bool            `json:"available"`
	TopK        int             `json:"top_k"`
	Conferences []ConferenceRow `json:"conferences"`
	Selected    []string        `json:"selected"`
	Dimensions  []songs.Trope   `json:"dimensions"`
	Radar       []RadarSeries   `json:"radar,omitempty"`
	Message     string          `json:"message,omitempty"`
}

// Conferences builds the conference view. The selection is reconciled
// against the current top-K, so stale conference names are dropped.
func Conferences(ds *songs.Dataset, cache *aggregate.Cache, st *selection.State, topK int) ConferencesReport {
	if topK <= 0 {
		topK = aggregate.DefaultTopK
	}
	r := ConferencesReport{
		TopK:        topK,
		Conferences: []ConferenceRow{},
		Selected:    []string{},
		Dimensions:  st.Dimensions(),
	}
	table := cache.Conferences(ds, songs.RadarTropes)
	if !table.Available {
		r.Message = NoDataMessage
		return r
	}
	r.Available = true

	top := table.TopK(topK)
	decades := cache.Decades(ds, st.MinDecade(), songs.DecadeTropes).Decades()
	st.Reconcile(decades, top.Keys())
	r.Selected = st.Conferences()

	for _, g := range top.Groups {
		r.Conferences = append(r.Conferences, ConferenceRow{
			Conference: g.Key,
			Count:      g.Count,
			Selected:   st.ConferenceSelected(g.Key),
			Values:     g.Values,
			Stats:      g.StatsLine(songs.RadarTropes),
		})
	}

	if len(r.Selected) == 0 {
		r.Message = NoConferenceMessage
		return r
	}
	dims, err := st.RadarDimensions()
	if err != nil {
		r.Message = err.Error()
		return r
	}
	for _, c := range r.Selected {
		g, _ := top.Group(c)
		values := make([]aggregate.Proportion, len(dims))
		for i, t := range dims {
			values[i] = g.Value(t)
		}
		r.Radar = append(r.Radar, RadarSeries{Conference: c, Values: values})
	}
	return r
}

// AuthorshipGroup is one bar series.
type AuthorshipGroup struct {
	Key    string                 `json:"key"`
	Label  string                 `json:"label"`
	Count  int                    `json:"count"`
	Values []aggregate.Proportion `json:"values"`
}

// AuthorshipReport is the grouped bar chart for one variant.
type AuthorshipReport struct {
	Available bool              `json:"available"`
	Variant   aggregate.Variant `json:"variant"`
	Title     string            `json:"title"`
	Tropes    []songs.Trope     `json:"tropes"`
	Groups    []AuthorshipGroup `json:"groups"`
	Message   string            `json:"message,omitempty"`
}

// Authorship builds the authorship view for the selected variant.
func Authorship(ds *songs.Dataset, cache *aggregate.Cache, st *selection.State) AuthorshipReport {
	variant := st.Variant()
	r := AuthorshipReport{
		Variant: variant,
		Title:   variant.Label(),
		Tropes:  songs.AuthorshipTropes,
		Groups:  []AuthorshipGroup{},
	}
	view := cache.Authorship(ds, songs.AuthorshipTropes)
	if !view.Available {
		r.Message = NoDataMessage
		return r
	}
	r.Available = true

	yes, no := view.Pair(variant)
	yesLabel, noLabel := aggregate.PairLabels(variant)
	yesKey, noKey := aggregate.GroupStudent, aggregate.GroupNonStudent
	if variant == aggregate.VariantContest {
		yesKey, noKey = aggregate.GroupContest, aggregate.GroupNonContest
	}
	for _, pair := range []struct {
		group      aggregate.Group
		key, label string
	}{{yes, yesKey, yesLabel}, {no, noKey, noLabel}} {
		values := make([]aggregate.Proportion, len(songs.AuthorshipTropes))
		for i, t := range songs.AuthorshipTropes {
			values[i] = pair.group.Value(t)
		}
		r.Groups = append(r.Groups, AuthorshipGroup{
			Key:    pair.key,
			Label:  pair.label,
			Count:  pair.group.Count,
			Values: values,
		})
	}
	return r
}

// ContextReport is the historical note for one decade.
type ContextReport struct {
	Decade int    `json:"decade"`
	Found  bool   `json:"found"`
	Text   string `json:"text"`
}

// Context looks up the historical note for decade. A year is accepted and
// reduced to its decade.
func Context(decade int) ContextReport {
	d := songs.DecadeOf(decade)
	text, ok := history.Lookup(d)
	if !ok {
		text = history.MissingText
	}
	return ContextReport{Decade: d, Found: ok, Text: text}
}
