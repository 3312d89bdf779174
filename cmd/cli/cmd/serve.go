package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/picogrid/cosim-input/pkg/api"
	"github.com/picogrid/cosim-input/pkg/logger"
	"github.com/picogrid/cosim-input/pkg/metrics"
	"github.com/picogrid/cosim-input/pkg/session"
	"github.com/picogrid/cosim-input/pkg/simulation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve editing sessions over HTTP",
	Long: `Start the JSON API. Each client opens its own session with
POST /api/v1/sessions; sessions never share state. Prometheus metrics are
served on /metrics.`,
	RunE: serve,
}

func init() {
	serveCmd.Flags().String("listen", "", "listen address (overrides config)")
}

func serve(cmd *cobra.Command, _ []string) error {
	listen := appConfig.Listen
	if l, _ := cmd.Flags().GetString("listen"); l != "" {
		listen = l
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Get()
	m := metrics.New()
	srv, err := api.New(api.Deps{
		Listen:      listen,
		Logger:      log,
		Sessions:    session.NewManager(sessionLogger(), m),
		Simulations: simulation.DefaultRegistry,
		Metrics:     m,
		Regions:     appConfig.RegionMap(),
		Simulation:  appConfig.Simulation,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	if err := srv.Start(ctx); err != nil {
		return err
	}
	logger.Successf("Listening on http://%s", srv.Addr())

	<-ctx.Done()
	return srv.Close()
}
