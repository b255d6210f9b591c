package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/wexinc/fightsongs/internal/version"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show detailed version information for fightsongs.

Displays the current version, commit hash, build date,
and Go/platform information.

Examples:
  fightsongs version          # Show detailed version info
  fightsongs version --json   # Machine-readable output`,
	RunE: runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("json", false, "Print version information as JSON")
}

// runVersion handles the version command.
func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Current()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	cmd.Println(info.FullString())
	return nil
}
