package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tuscaler/internal/metrics"
	"github.com/ppiankov/tuscaler/pkg/config"
)

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	var callTimeoutStr string
	var intervalStr string
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run reconciliation passes on an interval",
		Long: `Run a reconciliation pass immediately and then on a fixed interval
until interrupted. Prometheus metrics are served on /metrics for the
lifetime of the process.

A failed pass is logged and the cadence keeps going; the next tick
recomputes everything from live metadata.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadFileConfig(cmd, cfg, configPath); err != nil {
				return err
			}

			if cmd.Flags().Changed("call-timeout") {
				d, err := config.ParseDuration(callTimeoutStr)
				if err != nil {
					return fmt.Errorf("invalid --call-timeout duration: %w", err)
				}
				cfg.CallTimeout = d
			}
			if cmd.Flags().Changed("interval") {
				d, err := config.ParseDuration(intervalStr)
				if err != nil {
					return fmt.Errorf("invalid --interval duration: %w", err)
				}
				cfg.Interval = d
			}

			cfg.Verbose = verbose
			cfg.Normalize()
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cfg)
		},
	}

	addRunFlags(cmd, cfg, &callTimeoutStr, &configPath)
	cmd.Flags().StringVar(&intervalStr, "interval", "1m", "Time between passes (e.g. 1m, 5m, 1h)")
	cmd.Flags().IntVar(&cfg.MetricsPort, "metrics-port", cfg.MetricsPort, "Port for the Prometheus /metrics endpoint")

	return cmd
}

// runWatch loops passes on a ticker until the process is signalled.
func runWatch(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	run, err := newRunner(cfg)
	if err != nil {
		return err
	}

	go func() {
		if err := metrics.Serve(cfg.MetricsPort); err != nil {
			slog.Error("metrics endpoint stopped", slog.String("error", err.Error()))
		}
	}()

	fmt.Printf("👀 Watching: pass every %s, metrics on :%d (Ctrl+C to stop)\n",
		cfg.Interval, cfg.MetricsPort)

	pass := func() {
		if _, err := executePass(ctx, run, cfg); err != nil {
			slog.Error("pass failed, waiting for next tick",
				slog.String("error", err.Error()),
			)
		}
	}

	pass()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\n👋 Stopping")
			return nil
		case <-ticker.C:
			pass()
		}
	}
}
