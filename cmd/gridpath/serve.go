package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/httpapi"
	"github.com/katalvlaran/gridpath/session"
	"github.com/katalvlaran/gridpath/telemetry"
)

// shutdownGrace bounds how long in-flight requests may finish after a signal.
const shutdownGrace = 5 * time.Second

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the grid editor and search API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := readConfig(v)
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			srv, err := newHTTPServer(cfg, logger)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), srv, logger)
		},
	}

	f := cmd.Flags()
	f.String(keyAddr, ":8080", "listen address")
	f.Int(keyWidth, 10, "grid width")
	f.Int(keyHeight, 10, "grid height")
	for _, k := range []string{keyAddr, keyWidth, keyHeight} {
		_ = v.BindPFlag(k, f.Lookup(k))
	}
	return cmd
}

// newHTTPServer builds the grid, controller, metrics registry and router.
func newHTTPServer(cfg config, logger *slog.Logger) (*http.Server, error) {
	g, err := grid.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	ctrl, err := session.NewController(g)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	gin.SetMode(gin.ReleaseMode)
	api := httpapi.New(ctrl,
		httpapi.WithLogger(logger),
		httpapi.WithTelemetry(telemetry.NewCollector(reg), reg),
	)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", slog.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
