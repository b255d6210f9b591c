package tui

// Message types for dashboard state updates.

// DecadeClickedMsg is sent when a decade button is pressed. It is handled
// in one place, which records the decade on the selection state.
type DecadeClickedMsg struct {
	Decade int
}

// DatasetReloadedMsg is sent after the data source was reloaded, either by
// the file watcher or on request. Err is the load error, if any.
type DatasetReloadedMsg struct {
	Err error
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg signals the TUI should quit.
type QuitMsg struct {
	Reason string
}
