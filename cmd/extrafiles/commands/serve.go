package commands

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/extrafiles/internal/config"
	"git.home.luguber.info/inful/extrafiles/internal/metrics"
	"git.home.luguber.info/inful/extrafiles/internal/preview"
	"git.home.luguber.info/inful/extrafiles/internal/site"
)

// ServeCmd starts the local preview server watching the docs directory and
// all resolved extra sources.
type ServeCmd struct {
	Port         int  `short:"p" help:"Preview server port (overrides preview.port)"`
	NoLiveReload bool `name:"no-live-reload" help:"Disable live reload SSE and script injection"`
	Metrics      bool `help:"Expose Prometheus metrics at /metrics (overrides preview.metrics)"`
}

func (s *ServeCmd) Run(_ *Global, root *CLI) error {
	// Graceful shutdown on SIGINT/SIGTERM
	sigctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if s.Port != 0 {
		cfg.Preview.Port = s.Port
	}
	if s.NoLiveReload {
		enabled := false
		cfg.Preview.LiveReload = &enabled
	}

	var rec metrics.Recorder = metrics.NoopRecorder{}
	var metricsHandler http.Handler
	if s.Metrics || cfg.Preview.Metrics {
		pr := metrics.NewPrometheusRecorder(nil)
		rec = pr
		metricsHandler = pr.Handler()
	}

	gen, err := newGenerator(cfg, rec)
	if err != nil {
		return err
	}
	if err := gen.ValidateConfig(sigctx, site.ModeServe); err != nil {
		return err
	}

	server := preview.NewServer(cfg, gen, rec, metricsHandler)
	return server.Run(sigctx)
}
