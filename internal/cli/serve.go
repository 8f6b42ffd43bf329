package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mgpai22/cuedit/internal/platform/config"
	"github.com/mgpai22/cuedit/internal/platform/metrics"
	"github.com/mgpai22/cuedit/internal/server"
	"github.com/mgpai22/cuedit/internal/session"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve edit sessions over HTTP",
	Long: `Start the HTTP API. Each session holds a caption timeline and its
undo history in memory; sessions are lost when the server stops.

The listen address defaults to CUEDIT_ADDR, or :8080 when unset.
Prometheus metrics are served on /metrics unless --no-metrics is set
or CUEDIT_METRICS is false.

Examples:
  cuedit serve
  cuedit serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().
		String("addr", "", "Listen address (default $CUEDIT_ADDR or :8080)")
	serveCmd.Flags().
		Bool("no-metrics", false, "Disable the /metrics endpoint")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	noMetrics, _ := cmd.Flags().GetBool("no-metrics")

	if addr == "" {
		addr = config.GetEnv(config.EnvAddr, ":8080")
	}

	var (
		m        *metrics.Metrics
		observer session.Observer
	)
	if metricsEnabled(noMetrics) {
		m = metrics.New()
		observer = m.ObserveEdit
	}

	store := session.NewStore(logger, observer)
	h := server.NewHandler(store, logger, m)
	router := server.NewRouter(h, logger, m)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, addr, router, logger, config.ShutdownTimeout())
}

// the flag can only turn metrics off
func metricsEnabled(noMetrics bool) bool {
	return !noMetrics && config.GetEnvBool(config.EnvMetrics, true)
}
