// Package aggregate computes per-group trope proportions over a loaded
// fight-songs dataset.
//
// All functions are pure: the same dataset, grouping, tropes and filter always
// produce the same table with the same group order. A nil or empty dataset
// yields a table with Available set to false rather than an error.
package aggregate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wexinc/fightsongs/internal/songs"
)

// Grouping selects the attribute records are grouped by.
type Grouping int

const (
	ByDecade Grouping = iota
	ByConference
	ByStudent
	ByContest
)

func (g Grouping) String() string {
	switch g {
	case ByDecade:
		return "decade"
	case ByConference:
		return "conference"
	case ByStudent:
		return "student"
	case ByContest:
		return "contest"
	default:
		return "grouping(" + strconv.Itoa(int(g)) + ")"
	}
}

// Authorship group keys.
const (
	GroupStudent    = "student"
	GroupNonStudent = "nonstudent"
	GroupContest    = "contest"
	GroupNonContest = "noncontest"
)

// Filter is applied to records before grouping. The zero value matches
// every record.
type Filter struct {
	// MinDecade keeps records whose decade is at least this value. Zero
	// disables the bound.
	MinDecade int
}

// Match reports whether r passes the filter.
func (f Filter) Match(r songs.Record) bool {
	return f.MinDecade == 0 || r.Decade >= f.MinDecade
}

// Key returns a stable string identifying the filter for memoization.
func (f Filter) Key() string {
	if f.MinDecade == 0 {
		return "all"
	}
	return "min_decade=" + strconv.Itoa(f.MinDecade)
}

// Proportion is Yes/(Yes+No) for one trope in one group. Valid is false
// when no record in the group has a known value for the trope.
type Proportion struct {
	Value float64
	Valid bool
}

// MarshalJSON encodes a missing proportion as null.
func (p Proportion) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// Format renders the proportion with two decimals, or "-" when missing.
func (p Proportion) Format() string {
	if !p.Valid {
		return "-"
	}
	return strconv.FormatFloat(p.Value, 'f', 2, 64)
}

// Group is one row of a proportion table.
type Group struct {
	Key string `json:"key"`
	// Decade is set for decade groupings.
	Decade int `json:"decade,omitempty"`
	// Count is the number of records in the group after filtering.
	Count  int                        `json:"count"`
	Values map[songs.Trope]Proportion `json:"values"`
}

// Value returns the proportion for t, or a missing proportion when t was not
// requested.
func (g Group) Value(t songs.Trope) Proportion {
	return g.Values[t]
}

// StatsLine renders "Victory 0.62 • Fight 0.81 • ..." for the given tropes.
func (g Group) StatsLine(tropes []songs.Trope) string {
	parts := make([]string, 0, len(tropes))
	for _, t := range tropes {
		parts = append(parts, t.ShortLabel()+" "+g.Value(t).Format())
	}
	return strings.Join(parts, " • ")
}

// Table is the result of one aggregation.
type Table struct {
	Grouping  Grouping      `json:"-"`
	Available bool          `json:"available"`
	Tropes    []songs.Trope `json:"tropes"`
	Groups    []Group       `json:"groups"`
}

// Keys returns the group keys in table order.
func (t Table) Keys() []string {
	keys := make([]string, len(t.Groups))
	for i, g := range t.Groups {
		keys[i] = g.Key
	}
	return keys
}

// Decades returns the decade of every group in table order. Only meaningful
// for decade tables.
func (t Table) Decades() []int {
	decades := make([]int, len(t.Groups))
	for i, g := range t.Groups {
		decades[i] = g.Decade
	}
	return decades
}

// Group looks up a group by key.
func (t Table) Group(key string) (Group, bool) {
	for _, g := range t.Groups {
		if g.Key == key {
			return g, true
		}
	}
	return Group{}, false
}

// Series returns the proportions of one trope across all groups, in order.
func (t Table) Series(trope songs.Trope) []Proportion {
	out := make([]Proportion, len(t.Groups))
	for i, g := range t.Groups {
		out[i] = g.Value(trope)
	}
	return out
}

// Proportions groups the records of ds by the given attribute and computes
// the proportion of each trope per group. Records lacking the grouping
// attribute are excluded from the grouping.
func Proportions(ds *songs.Dataset, by Grouping, tropes []songs.Trope, filter Filter) Table {
	table := Table{
		Grouping: by,
		Tropes:   append([]songs.Trope(nil), tropes...),
	}
	if !ds.Available() {
		return table
	}
	table.Available = true

	acc := newAccumulator(by, tropes)
	for _, r := range ds.Records() {
		if !filter.Match(r) {
			continue
		}
		key, ok := groupKey(r, by)
		if !ok {
			continue
		}
		acc.add(key, r)
	}

	switch by {
	case ByStudent:
		acc.ensure(GroupStudent, GroupNonStudent)
	case ByContest:
		acc.ensure(GroupContest, GroupNonContest)
	}

	table.Groups = acc.groups(tropes)
	sortGroups(table.Groups, by)
	return table
}

func groupKey(r songs.Record, by Grouping) (string, bool) {
	switch by {
	case ByDecade:
		return strconv.Itoa(r.Decade), true
	case ByConference:
		return r.Conference, r.Conference != ""
	case ByStudent:
		return dichotomy(r.StudentWriter, GroupStudent, GroupNonStudent)
	case ByContest:
		return dichotomy(r.Contest, GroupContest, GroupNonContest)
	default:
		return "", false
	}
}

func dichotomy(f songs.Flag, yes, no string) (string, bool) {
	switch f {
	case songs.FlagYes:
		return yes, true
	case songs.FlagNo:
		return no, true
	default:
		return "", false
	}
}

// tally counts Yes and known values for one trope in one group.
type tally struct {
	yes, known int
}

type groupAcc struct {
	key    string
	decade int
	count  int
	tally  []tally
}

// accumulator collects groups in first-seen order.
type accumulator struct {
	by     Grouping
	tropes []songs.Trope
	index  map[string]int
	list   []*groupAcc
}

func newAccumulator(by Grouping, tropes []songs.Trope) *accumulator {
	return &accumulator{
		by:     by,
		tropes: tropes,
		index:  make(map[string]int),
	}
}

func (a *accumulator) get(key string) *groupAcc {
	if i, ok := a.index[key]; ok {
		return a.list[i]
	}
	g := &groupAcc{key: key, tally: make([]tally, len(a.tropes))}
	a.index[key] = len(a.list)
	a.list = append(a.list, g)
	return g
}

func (a *accumulator) add(key string, r songs.Record) {
	g := a.get(key)
	if a.by == ByDecade {
		g.decade = r.Decade
	}
	g.count++
	for i, t := range a.tropes {
		switch r.Trope(t) {
		case songs.FlagYes:
			g.tally[i].yes++
			g.tally[i].known++
		case songs.FlagNo:
			g.tally[i].known++
		}
	}
}

// ensure creates empty groups for keys that saw no records so dichotomies
// always report both sides.
func (a *accumulator) ensure(keys ...string) {
	for _, k := range keys {
		a.get(k)
	}
}

func (a *accumulator) groups(tropes []songs.Trope) []Group {
	out := make([]Group, 0, len(a.list))
	for _, ga := range a.list {
		g := Group{
			Key:    ga.key,
			Decade: ga.decade,
			Count:  ga.count,
			Values: make(map[songs.Trope]Proportion, len(tropes)),
		}
		for i, t := range tropes {
			tl := ga.tally[i]
			if tl.known == 0 {
				g.Values[t] = Proportion{}
				continue
			}
			g.Values[t] = Proportion{Value: float64(tl.yes) / float64(tl.known), Valid: true}
		}
		out = append(out, g)
	}
	return out
}

var dichotomyOrder = map[string]int{
	GroupStudent:    0,
	GroupNonStudent: 1,
	GroupContest:    0,
	GroupNonContest: 1,
}

func sortGroups(groups []Group, by Grouping) {
	switch by {
	case ByDecade:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Decade < groups[j].Decade })
	case ByConference:
		// Stable sort keeps first-seen order among equal counts.
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	case ByStudent, ByContest:
		sort.SliceStable(groups, func(i, j int) bool {
			return dichotomyOrder[groups[i].Key] < dichotomyOrder[groups[j].Key]
		})
	}
}

// ParseGrouping maps a grouping name to its value.
func ParseGrouping(s string) (Grouping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decade", "decades":
		return ByDecade, nil
	case "conference", "conferences":
		return ByConference, nil
	case "student":
		return ByStudent, nil
	case "contest":
		return ByContest, nil
	default:
		return 0, fmt.Errorf("unknown grouping %q", s)
	}
}
