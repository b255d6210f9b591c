package aggregate

import (
	"fmt"
	"strings"

	"github.com/wexinc/fightsongs/internal/songs"
)

// DefaultTopK is the number of conferences offered when no K is configured.
const DefaultTopK = 5

// Decades returns the per-decade table for records at or after minDecade,
// in ascending decade order.
func Decades(ds *songs.Dataset, minDecade int, tropes []songs.Trope) Table {
	return Proportions(ds, ByDecade, tropes, Filter{MinDecade: minDecade})
}

// Conferences returns the per-conference table ordered by descending record
// count.
func Conferences(ds *songs.Dataset, tropes []songs.Trope) Table {
	return Proportions(ds, ByConference, tropes, Filter{})
}

// TopK returns a copy of the table truncated to its first k groups. For a
// conference table that is the k largest conferences. k <= 0 means
// DefaultTopK.
func (t Table) TopK(k int) Table {
	if k <= 0 {
		k = DefaultTopK
	}
	out := t
	if len(t.Groups) > k {
		out.Groups = append([]Group(nil), t.Groups[:k]...)
	} else {
		out.Groups = append([]Group(nil), t.Groups...)
	}
	return out
}

// Variant selects which authorship dichotomy is displayed.
type Variant string

const (
	VariantStudent Variant = "student"
	VariantContest Variant = "contest"
)

// Variants lists the authorship variants in display order.
var Variants = []Variant{VariantStudent, VariantContest}

// Label returns the display label of the variant.
func (v Variant) Label() string {
	switch v {
	case VariantContest:
		return "Contest vs Non-contest"
	default:
		return "Student vs Non-student"
	}
}

// ParseVariant accepts "student" or "contest" (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantStudent:
		return VariantStudent, nil
	case VariantContest:
		return VariantContest, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want student or contest)", s)
	}
}

// AuthorshipView holds the four authorship groups. The student and contest
// dichotomies are computed independently, each over the records with a
// known value for its own column.
type AuthorshipView struct {
	Available  bool          `json:"available"`
	Tropes     []songs.Trope `json:"tropes"`
	Student    Group         `json:"student"`
	NonStudent Group         `json:"nonstudent"`
	Contest    Group         `json:"contest"`
	NonContest Group         `json:"noncontest"`
}

// Pair returns the two groups shown for a variant, "yes" side first.
func (v AuthorshipView) Pair(variant Variant) (Group, Group) {
	if variant == VariantContest {
		return v.Contest, v.NonContest
	}
	return v.Student, v.NonStudent
}

// PairLabels returns the legend labels for a variant.
func PairLabels(variant Variant) (string, string) {
	if variant == VariantContest {
		return "Contest-selected", "Non-contest"
	}
	return "Student-written", "Non-student-written"
}

// Authorship computes the authorship view from two independent groupings.
func Authorship(ds *songs.Dataset, tropes []songs.Trope) AuthorshipView {
	return authorshipFrom(
		Proportions(ds, ByStudent, tropes, Filter{}),
		Proportions(ds, ByContest, tropes, Filter{}),
		tropes,
	)
}

func authorshipFrom(student, contest Table, tropes []songs.Trope) AuthorshipView {
	v := AuthorshipView{
		Available: student.Available && contest.Available,
		Tropes:    append([]songs.Trope(nil), tropes...),
	}
	if !v.Available {
		return v
	}
	v.Student, _ = student.Group(GroupStudent)
	v.NonStudent, _ = student.Group(GroupNonStudent)
	v.Contest, _ = contest.Group(GroupContest)
	v.NonContest, _ = contest.Group(GroupNonContest)
	return v
}
