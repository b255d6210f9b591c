package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wexinc/fightsongs/internal/aggregate"
	fserrors "github.com/wexinc/fightsongs/internal/errors"
	"github.com/wexinc/fightsongs/internal/history"
	"github.com/wexinc/fightsongs/internal/selection"
	"github.com/wexinc/fightsongs/internal/songs"
)

const testCSV = `school,song_name,year,conference,student_writer,contest,men,victory_win_won,fight,rah,nonsense,colors,opponents,spelling
Auburn,War Eagle,1955,SEC,No,Yes,No,Yes,No,No,No,No,No,No
Alabama,Yea Alabama,1926,SEC,Yes,Yes,No,Yes,Yes,No,No,Yes,No,No
Georgia,Glory Glory,1909,SEC,Unknown,No,No,No,No,No,No,No,No,No
Iowa,Iowa Fight Song,1951,Big Ten,No,No,No,Yes,Yes,Yes,No,No,No,No
Michigan,The Victors,1898,Big Ten,Yes,No,Yes,Yes,No,No,No,Yes,No,No
Clemson,Tiger Rag,1917,ACC,No,No,No,No,No,No,Yes,No,No,No
`

func testDataset(t *testing.T) *songs.Dataset {
	t.Helper()
	ds, err := songs.Parse(strings.NewReader(testCSV), "fight-songs.csv")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return ds
}

func newState(t *testing.T, p Params) *selection.State {
	t.Helper()
	st, err := p.State(selection.Options{})
	if err != nil {
		t.Fatalf("State() error = %v", err)
	}
	return st
}

func TestParams_State(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantParam string
	}{
		{name: "defaults", params: Params{}},
		{name: "series by label", params: Params{Series: []string{"Victory / Win / Won", "fight"}}},
		{name: "contest variant", params: Params{Variant: "Contest"}},
		{name: "unknown variant", params: Params{Variant: "coach"}, wantParam: "variant"},
		{name: "negative decade", params: Params{MinDecade: -10}, wantParam: "min_decade"},
		{name: "negative top_k", params: Params{TopK: -1}, wantParam: "top_k"},
		{name: "unknown series", params: Params{Series: []string{"tuba"}}, wantParam: "series"},
		{name: "spelling is not a series", params: Params{Series: []string{"spelling"}}, wantParam: "series"},
		{name: "unknown dimension", params: Params{Dimensions: []string{"men", "band"}}, wantParam: "dims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := tt.params.State(selection.Options{})
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("unexpected error %v", err)
				}
				if st == nil {
					t.Fatal("nil state")
				}
				return
			}
			if !errors.Is(err, fserrors.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			de, ok := fserrors.As(err)
			if !ok || de.Details["parameter"] != tt.wantParam {
				t.Errorf("expected parameter %q in details, got %v", tt.wantParam, err)
			}
		})
	}
}

func TestParams_StateAppliesValues(t *testing.T) {
	st := newState(t, Params{
		MinDecade:  1917,
		Series:     []string{"rah", "men"},
		Dimensions: []string{"victory", "fight", "rah"},
		Variant:    "contest",
	})

	if st.MinDecade() != 1910 {
		t.Errorf("MinDecade() = %d, want 1910 (snapped)", st.MinDecade())
	}
	if diff := cmp.Diff([]songs.Trope{songs.TropeMen, songs.TropeRah}, st.Series()); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]songs.Trope{songs.TropeVictory, songs.TropeFight, songs.TropeRah}, st.Dimensions()); diff != "" {
		t.Errorf("dimensions mismatch (-want +got):\n%s", diff)
	}
	if st.Variant() != aggregate.VariantContest {
		t.Errorf("Variant() = %q", st.Variant())
	}
}

func TestDecades(t *testing.T) {
	ds := testDataset(t)
	r := Decades(ds, aggregate.NewCache(), newState(t, Params{MinDecade: 1900, Series: []string{"fight"}}))

	if !r.Available || r.Message != "" {
		t.Fatalf("unexpected report %+v", r)
	}
	if diff := cmp.Diff([]int{1900, 1910, 1920, 1950}, r.Decades); diff != "" {
		t.Errorf("decades mismatch (-want +got):\n%s", diff)
	}
	if len(r.Series) != 1 || r.Series[0].Trope != songs.TropeFight {
		t.Fatalf("series = %+v", r.Series)
	}
	// 1950s: Auburn No, Iowa Yes.
	if p := r.Series[0].Values[3]; !p.Valid || p.Value != 0.5 {
		t.Errorf("1950s fight = %+v, want 0.5", p)
	}
}

func TestDecades_NoData(t *testing.T) {
	r := Decades(nil, aggregate.NewCache(), newState(t, Params{}))
	if r.Available || r.Message != NoDataMessage {
		t.Errorf("unexpected report %+v", r)
	}
	if r.Decades == nil || r.Series == nil {
		t.Error("empty report should carry empty slices, not nil")
	}
}

func TestConferences(t *testing.T) {
	ds := testDataset(t)
	cache := aggregate.NewCache()

	t.Run("defaults seed the two largest", func(t *testing.T) {
		r := Conferences(ds, cache, newState(t, Params{}), 0)
		if r.TopK != aggregate.DefaultTopK {
			t.Errorf("TopK = %d", r.TopK)
		}
		if diff := cmp.Diff([]string{"SEC", "Big Ten"}, r.Selected); diff != "" {
			t.Errorf("selected mismatch (-want +got):\n%s", diff)
		}
		if len(r.Radar) != 2 || len(r.Radar[0].Values) != len(songs.RadarTropes) {
			t.Errorf("radar = %+v", r.Radar)
		}
		if len(r.Conferences) != 3 || !r.Conferences[0].Selected || r.Conferences[2].Selected {
			t.Errorf("conference rows = %+v", r.Conferences)
		}
	})

	t.Run("stale conference is pruned", func(t *testing.T) {
		r := Conferences(ds, cache, newState(t, Params{Conferences: []string{"ACC", "Pac-12"}}), 0)
		if diff := cmp.Diff([]string{"ACC"}, r.Selected); diff != "" {
			t.Errorf("selected mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("outside top-k is pruned", func(t *testing.T) {
		r := Conferences(ds, cache, newState(t, Params{Conferences: []string{"ACC"}}), 2)
		if len(r.Selected) != 0 || r.Message != NoConferenceMessage || r.Radar != nil {
			t.Errorf("unexpected report %+v", r)
		}
	})

	t.Run("too few dimensions", func(t *testing.T) {
		r := Conferences(ds, cache, newState(t, Params{Dimensions: []string{"fight", "rah"}}), 0)
		if r.Message != "Select at least 3 dimensions for a radar plot." {
			t.Errorf("Message = %q", r.Message)
		}
		if r.Radar != nil {
			t.Errorf("radar should be empty, got %+v", r.Radar)
		}
		if !r.Available || len(r.Conferences) == 0 {
			t.Error("conference rows should still be reported")
		}
	})
}

func TestAuthorship(t *testing.T) {
	ds := testDataset(t)
	cache := aggregate.NewCache()

	r := Authorship(ds, cache, newState(t, Params{}))
	if !r.Available || r.Variant != aggregate.VariantStudent {
		t.Fatalf("unexpected report %+v", r)
	}
	if len(r.Groups) != 2 || r.Groups[0].Key != aggregate.GroupStudent || r.Groups[1].Key != aggregate.GroupNonStudent {
		t.Fatalf("groups = %+v", r.Groups)
	}
	// Georgia has an unknown student_writer and is excluded.
	if r.Groups[0].Count != 2 || r.Groups[1].Count != 3 {
		t.Errorf("counts = %d/%d, want 2/3", r.Groups[0].Count, r.Groups[1].Count)
	}

	c := Authorship(ds, cache, newState(t, Params{Variant: "contest"}))
	if c.Groups[0].Label != "Contest-selected" || c.Groups[0].Count != 2 || c.Groups[1].Count != 4 {
		t.Errorf("contest groups = %+v", c.Groups)
	}
}

func TestContext(t *testing.T) {
	r := Context(1937)
	if r.Decade != 1930 || !r.Found {
		t.Errorf("unexpected report %+v", r)
	}
	if want, _ := history.Lookup(1930); r.Text != want {
		t.Errorf("Text = %q", r.Text)
	}

	missing := Context(2010)
	if missing.Found || missing.Text != history.MissingText {
		t.Errorf("unexpected report %+v", missing)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatText, "text": FormatText, "JSON": FormatJSON}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("yaml"); !errors.Is(err, fserrors.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestWriter_DecadesText(t *testing.T) {
	ds := songs.FromRecords([]songs.Record{
		songs.NewRecord(1920, map[songs.Trope]songs.Flag{songs.TropeFight: songs.FlagYes}),
		songs.NewRecord(1930, map[songs.Trope]songs.Flag{songs.TropeRah: songs.FlagNo}),
	})
	r := Decades(ds, aggregate.NewCache(), newState(t, Params{Series: []string{"fight"}}))

	var buf bytes.Buffer
	if err := NewWriter(&buf, FormatText).Decades(r); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "DECADE") || !strings.Contains(out, "FIGHT") {
		t.Errorf("missing header:\n%s", out)
	}
	// 1930 has no known fight value.
	if !strings.Contains(out, "1930s") || !strings.Contains(out, "-") {
		t.Errorf("missing value should print as '-':\n%s", out)
	}
	if !strings.Contains(out, "1.00") {
		t.Errorf("expected 1.00 for the 1920s:\n%s", out)
	}
}

func TestWriter_DecadesJSON(t *testing.T) {
	ds := songs.FromRecords([]songs.Record{
		songs.NewRecord(1920, map[songs.Trope]songs.Flag{songs.TropeFight: songs.FlagYes}),
		songs.NewRecord(1930, map[songs.Trope]songs.Flag{songs.TropeRah: songs.FlagNo}),
	})
	r := Decades(ds, aggregate.NewCache(), newState(t, Params{Series: []string{"fight"}}))

	var buf bytes.Buffer
	if err := NewWriter(&buf, FormatJSON).Decades(r); err != nil {
		t.Fatal(err)
	}
	var got struct {
		Available bool `json:"available"`
		Series    []struct {
			Values []*float64 `json:"values"`
		} `json:"series"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if !got.Available || len(got.Series) != 1 || len(got.Series[0].Values) != 2 {
		t.Fatalf("unexpected JSON %s", buf.String())
	}
	if got.Series[0].Values[1] != nil {
		t.Errorf("missing value should be null, got %v", *got.Series[0].Values[1])
	}
}

func TestWriter_NoDataText(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatText)
	cache := aggregate.NewCache()
	st := newState(t, Params{})

	if err := w.Decades(Decades(nil, cache, st)); err != nil {
		t.Fatal(err)
	}
	if err := w.Conferences(Conferences(nil, cache, st, 0)); err != nil {
		t.Fatal(err)
	}
	if err := w.Authorship(Authorship(nil, cache, st)); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), NoDataMessage); got != 3 {
		t.Errorf("expected the no-data message three times, got %d:\n%s", got, buf.String())
	}
}

func TestWriter_ConferencesAndAuthorshipText(t *testing.T) {
	ds := testDataset(t)
	cache := aggregate.NewCache()
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatText)

	if err := w.Conferences(Conferences(ds, cache, newState(t, Params{Dimensions: []string{"fight"}}), 0)); err != nil {
		t.Fatal(err)
	}
	if err := w.Authorship(Authorship(ds, cache, newState(t, Params{}))); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"CONFERENCE", "* ", "SEC", "Select at least 3 dimensions", "Student vs Non-student", "STUDENT-WRITTEN (n=2)", "Spelling"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
