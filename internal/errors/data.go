package errors

import (
	"fmt"
	"strconv"
)

// Data and selection error constructors.

// DataUnavailable creates an error for a source CSV that cannot be used.
// Every view renders an explicit "no data" state when it sees this kind.
func DataUnavailable(path string, cause error) *DashboardError {
	return &DashboardError{
		Kind:    ErrDataUnavailable,
		Message: fmt.Sprintf("fight song data unavailable: %s", path),
		Cause:   cause,
		Details: map[string]string{
			"path": path,
		},
		Suggestion: `Point the dashboard at the fight-songs CSV:

    fightsongs --data ./fight-songs.csv

The file needs a header row with at least a "year" column.
The dataset is published at https://github.com/fivethirtyeight/data/tree/master/fight-songs`,
	}
}

// InsufficientSelection creates an error for a view that needs more
// selected dimensions than the user picked.
func InsufficientSelection(view string, selected, required int) *DashboardError {
	return &DashboardError{
		Kind:    ErrInsufficientSelection,
		Message: fmt.Sprintf("Select at least %d dimensions for a %s plot.", required, view),
		Details: map[string]string{
			"view":     view,
			"selected": strconv.Itoa(selected),
			"required": strconv.Itoa(required),
		},
	}
}

// UnknownGroupReference creates an error for a selection that points at a
// group missing from the current aggregation. Callers prune such references
// and only log this error.
func UnknownGroupReference(grouping, key string) *DashboardError {
	return &DashboardError{
		Kind:    ErrUnknownGroup,
		Message: fmt.Sprintf("%s %q is not among the current groups", grouping, key),
		Details: map[string]string{
			"grouping": grouping,
			"key":      key,
		},
	}
}
