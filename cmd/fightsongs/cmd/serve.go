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
	"github.com/wexinc/fightsongs/internal/server"
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the aggregations as a read-only JSON API",
	Long: `Serve the dashboard aggregations over HTTP.

Endpoints:
  GET /api/decades?min_decade=1900&series=fight,rah
  GET /api/conferences?top_k=5&conferences=SEC,Big%20Ten&dims=fight,rah,men
  GET /api/authorship?variant=student
  GET /api/context/{decade}
  GET /healthz
  GET /metrics

Every request is answered from its own parameters; no state is kept
between requests.

Examples:
  fightsongs serve                      # Listen on server.addr
  fightsongs serve --addr :8080         # Listen on another address`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Bool("no-watch", false, "Do not reload the CSV when it changes")
}

// runServe is the main entry point for the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	_, closeLog := initLogging(cmd, cfg)
	defer closeLog()

	addr := cfg.Server.Addr
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}
	watch := cfg.Data.Watch
	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		watch = false
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source := dataset.NewSource(cfg.Data.Path)
	if err := source.Err(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		logging.Warn("dataset unavailable", "path", cfg.Data.Path, "error", err)
	}

	cmd.Printf("Serving %s on http://%s\n", cfg.Data.Path, addr)
	err = server.Run(ctx, source, aggregate.NewCache(), server.Options{
		Addr:        addr,
		ReadTimeout: cfg.Server.ReadTimeout,
		TopK:        cfg.Dashboard.TopK,
		Selection:   selectionOptions(cfg),
		Watch:       watch,
		Debounce:    cfg.Data.Debounce,
		Logger:      logging.Global().Slog(),
	})
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	cmd.Println("Server stopped.")
	return nil
}
