package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wexinc/fightsongs/internal/aggregate"
	"github.com/wexinc/fightsongs/internal/dataset"
	"github.com/wexinc/fightsongs/internal/logging"
	"github.com/wexinc/fightsongs/internal/report"
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report decades|conferences|authorship|context",
	Short: "Print one dashboard view as a table or JSON",
	Long: `Print one dashboard view without starting the TUI.

Views:
  decades      Trope proportions per decade (--min-decade, --series)
  conferences  Trope profiles of the largest conferences (--top-k,
               --conferences, --dims)
  authorship   Trope proportions by authorship (--variant)
  context      Historical context for a decade (--decade)

Missing values print as "-" in text output and null in JSON.

Examples:
  fightsongs report decades --min-decade 1920 --series fight,victory
  fightsongs report conferences --top-k 3 --output json
  fightsongs report authorship --variant contest
  fightsongs report context --decade 1930`,
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"decades", "conferences", "authorship", "context"},
	RunE:      runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().Int("min-decade", 0, "Earliest decade included (decades view)")
	reportCmd.Flags().StringSlice("series", nil, "Tropes to include (decades view)")
	reportCmd.Flags().Int("top-k", 0, "Number of conferences offered (default dashboard.top_k)")
	reportCmd.Flags().StringSlice("conferences", nil, "Conferences to select (conferences view)")
	reportCmd.Flags().StringSlice("dims", nil, "Radar dimensions (conferences view)")
	reportCmd.Flags().String("variant", "", "Authorship variant: student or contest")
	reportCmd.Flags().Int("decade", 0, "Decade to describe (context view)")
	reportCmd.Flags().StringP("output", "o", "text", "Output format: text or json")
}

// runReport is the main entry point for the report command.
func runReport(cmd *cobra.Command, args []string) error {
	view := args[0]
	outputFormat, _ := cmd.Flags().GetString("output")
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	w := report.NewWriter(cmd.OutOrStdout(), format)

	if view == "context" {
		decade, _ := cmd.Flags().GetInt("decade")
		if decade == 0 {
			return fmt.Errorf("the context view needs --decade")
		}
		return w.Context(report.Context(decade))
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, closeLog := initLogging(cmd, cfg)
	defer closeLog()

	p := report.Params{Variant: string(cfg.Dashboard.Variant)}
	p.MinDecade, _ = cmd.Flags().GetInt("min-decade")
	p.Series, _ = cmd.Flags().GetStringSlice("series")
	p.TopK, _ = cmd.Flags().GetInt("top-k")
	p.Conferences, _ = cmd.Flags().GetStringSlice("conferences")
	p.Dimensions, _ = cmd.Flags().GetStringSlice("dims")
	if v, _ := cmd.Flags().GetString("variant"); v != "" {
		p.Variant = v
	}
	if p.TopK == 0 {
		p.TopK = cfg.Dashboard.TopK
	}

	st, err := p.State(selectionOptions(cfg))
	if err != nil {
		return err
	}

	source := dataset.NewSource(cfg.Data.Path)
	if err := source.Err(); err != nil {
		logging.Warn("dataset unavailable", "path", cfg.Data.Path, "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	ds := source.Dataset()
	cache := aggregate.NewCache()

	logging.Debug("report", "view", view, "format", string(format), "selection", st.Snapshot())
	switch strings.ToLower(view) {
	case "decades":
		return w.Decades(report.Decades(ds, cache, st))
	case "conferences":
		return w.Conferences(report.Conferences(ds, cache, st, p.TopK))
	case "authorship":
		return w.Authorship(report.Authorship(ds, cache, st))
	}
	return fmt.Errorf("unknown view %q", view)
}
