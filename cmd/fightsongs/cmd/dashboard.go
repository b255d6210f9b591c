package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/dataset"
	"github.com/wexinc/fightsongs/internal/logging"
	"github.com/wexinc/fightsongs/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive terminal dashboard.

The dashboard has four tabs: an overview, trope usage by decade, trope
profiles by conference and trope usage by authorship. When data.watch is
enabled the CSV is reloaded whenever it changes on disk.

Examples:
  fightsongs                              # Same as "fightsongs dashboard"
  fightsongs dashboard --data songs.csv   # Use a specific CSV
  fightsongs dashboard --no-watch         # Do not reload on file changes`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().Bool("no-watch", false, "Do not reload the CSV when it changes")
}

// runDashboard is the entry point for the dashboard and for the bare root
// command.
func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sessionID, closeLog := initLogging(cmd, cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithSessionID(ctx, sessionID)

	source := dataset.NewSource(cfg.Data.Path)
	if err := source.Err(); err != nil {
		// The dashboard still opens and shows its no-data state.
		logging.Warn("dataset unavailable", "path", cfg.Data.Path, "error", err)
	}

	watch := cfg.Data.Watch
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		watch = false
	}

	runner, err := tui.NewRunner(ctx, tui.RunnerOptions{
		Model: tui.Options{
			Source:    source,
			Cache:     aggregate.NewCache(),
			Selection: selectionOptions(cfg),
			TopK:      cfg.Dashboard.TopK,
			SessionID: sessionID,
			Logger:    logging.Global().Slog(),
		},
		Watch:    watch,
		Debounce: cfg.Data.Debounce,
	})
	if err != nil {
		return fmt.Errorf("failed to start dashboard: %w", err)
	}

	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	logging.Info("dashboard closed")
	return nil
}
