package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wexinc/fightsongs/internal/dataset"
)

// ReloadNotifier forwards dataset watcher callbacks to a running program.
type ReloadNotifier struct {
	program *tea.Program
}

// NewReloadNotifier creates a notifier for program. A nil program makes
// Notify a no-op.
func NewReloadNotifier(program *tea.Program) *ReloadNotifier {
	return &ReloadNotifier{program: program}
}

// Notify implements dataset.ChangeFunc.
func (n *ReloadNotifier) Notify(err error) {
	if n == nil || n.program == nil {
		return
	}
	n.program.Send(DatasetReloadedMsg{Err: err})
}

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	Model Options
	// Watch reloads the dataset when its file changes.
	Watch bool
	// Debounce is how long file changes must settle before a reload.
	Debounce time.Duration
	// ProgramOptions are passed to tea.NewProgram after the defaults.
	ProgramOptions []tea.ProgramOption
}

// Runner runs the dashboard together with the data file watcher.
type Runner struct {
	model    *Model
	program  *tea.Program
	notifier *ReloadNotifier
	watcher  *dataset.Watcher
}

// NewRunner creates the model, the program and, when enabled, the watcher.
// Nothing runs until Run is called.
func NewRunner(ctx context.Context, opts RunnerOptions) (*Runner, error) {
	model := New(opts.Model)

	progOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts.ProgramOptions...)
	program := tea.NewProgram(model, progOpts...)

	r := &Runner{
		model:    model,
		program:  program,
		notifier: NewReloadNotifier(program),
	}

	if opts.Watch && model.source.Path() != "" {
		w, err := dataset.NewWatcher(model.source, opts.Debounce, r.notifier.Notify, model.logger)
		if err != nil {
			return nil, err
		}
		r.watcher = w
	}
	return r, nil
}

// Run starts the watcher and runs the TUI on the calling goroutine until the
// user quits or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	if r.watcher != nil {
		if err := r.watcher.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = r.watcher.Stop() }()
	}

	_, err := r.program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Program returns the tea.Program for external access.
func (r *Runner) Program() *tea.Program {
	return r.program
}

// Model returns the TUI model for external access.
func (r *Runner) Model() *Model {
	return r.model
}

// Watching reports whether the data file is watched.
func (r *Runner) Watching() bool {
	return r.watcher != nil
}
