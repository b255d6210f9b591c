package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wexinc/fightsongs/internal/config"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default configuration to .fightsongs/config.yaml, or to the
path given with --config.

Every setting can also be overridden with a FIGHTSONGS_ environment
variable, for example FIGHTSONGS_DATA_PATH or FIGHTSONGS_DASHBOARD_TOP_K.

Use --force to overwrite existing configuration.

Examples:
  fightsongs init          # Write .fightsongs/config.yaml
  fightsongs init --force  # Overwrite an existing config`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing configuration")
}

// runInit is the main entry point for the init command.
func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath
	}

	cfg := config.NewConfig()
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Data.Path = data
	}
	if err := config.Save(cfg, path, force); err != nil {
		return err
	}

	cmd.Printf("Created %s\n", path)
	cmd.Println("")
	cmd.Printf("Edit %s to configure your settings.\n", path)
	cmd.Println("Run 'fightsongs' to open the dashboard.")
	return nil
}
