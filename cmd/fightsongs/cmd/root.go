// Package cmd provides the CLI commands for fightsongs.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/config"
	"github.com/wexinc/fightsongs/internal/logging"
	"github.com/wexinc/fightsongs/internal/selection"
	"github.com/wexinc/fightsongs/internal/version"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "fightsongs",
	Short: "Explore lyrical tropes in college fight songs",
	Long: `fightsongs is a terminal dashboard over FiveThirtyEight's college
fight songs dataset.

It charts how often songs use common tropes (fight, victory, rah, school
colors, opponents...) by decade, by athletic conference and by who wrote
the song. The same views are available as plain reports and as a
read-only JSON API.`,
	// When fightsongs is called with no subcommand, start the dashboard
	RunE:         runDashboard,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default .fightsongs/config.yaml)")
	rootCmd.PersistentFlags().String("data", "", "Path to the fight-songs CSV (overrides data.path)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	info := version.Current()
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
	rootCmd.SetVersionTemplate("fightsongs {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Root returns the root command for testing purposes.
func Root() *cobra.Command {
	return rootCmd
}

// loadConfig reads the config file named by --config (or the default) and
// applies the --data override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Data.Path = data
	}
	return cfg, nil
}

// initLogging starts the file logger and returns the session id. A logger
// that cannot be created is reported and skipped; the returned closer is
// always safe to call.
func initLogging(cmd *cobra.Command, cfg *config.Config) (string, func()) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	sessionID, err := logging.InitGlobal(cfg.LoggingConfig(verbose))
	if err != nil {
		// Non-fatal: warn but continue without file logging
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to initialize logging: %v\n", err)
		return logging.NewSessionID(), func() {}
	}
	logging.Info("fightsongs starting", "version", version.Version, "command", cmd.Name(), "verbose", verbose)
	return sessionID, func() { _ = logging.CloseGlobal() }
}

// selectionOptions maps the dashboard section onto selection defaults.
func selectionOptions(cfg *config.Config) selection.Options {
	d := cfg.Dashboard
	return selection.Options{
		DecadeMin:          d.DecadeMin,
		DecadeMax:          d.DecadeMax,
		DecadeStep:         d.DecadeStep,
		DefaultConferences: d.DefaultConferences,
		MinRadarDimensions: d.MinRadarDimensions,
		Variant:            aggregate.Variant(d.Variant),
	}
}
