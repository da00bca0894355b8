package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/tuscaler/internal/azure"
	"github.com/ppiankov/tuscaler/internal/models"
	"github.com/ppiankov/tuscaler/internal/report"
	"github.com/ppiankov/tuscaler/internal/runner"
	"github.com/ppiankov/tuscaler/pkg/config"
)

// NewRunCmd creates the run command
func NewRunCmd() *cobra.Command {
	cfg := config.DefaultConfig()

	// String variables for custom duration parsing
	var callTimeoutStr string
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one reconciliation pass",
		Long: `Enumerate all visible subscriptions, scan each for Event Hubs
namespaces tagged ScaleDownTUs with auto-inflate enabled, and lower any
namespace whose current throughput units exceed the tagged target.`,
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

			cfg.Verbose = verbose
			cfg.Normalize()
			return cfg.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runOnce(cmd.Context(), cfg)
			return err
		},
	}

	addRunFlags(cmd, cfg, &callTimeoutStr, &configPath)
	return cmd
}

// addRunFlags registers the flags shared by run and watch.
func addRunFlags(cmd *cobra.Command, cfg *config.Config, callTimeoutStr, configPath *string) {
	cmd.Flags().StringVar(callTimeoutStr, "call-timeout", "2m", "Per-call ARM timeout, retries included (e.g. 30s, 2m)")
	cmd.Flags().IntVar(&cfg.ARMRateLimit, "arm-rate-limit", cfg.ARMRateLimit, "ARM API rate limit (requests/sec)")
	cmd.Flags().IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Subscriptions processed in parallel")
	cmd.Flags().StringSliceVar(&cfg.ExcludeSubscriptions, "exclude-subscription", nil, "Subscription id/name patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&cfg.ExcludeNamespaces, "exclude-namespace", nil, "Namespace name patterns to skip (repeatable)")
	cmd.Flags().StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Directory for run-report.json (empty: text summary only)")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Evaluate and report without issuing updates")
	cmd.Flags().StringVar(configPath, "config", "", "Config file path (default: auto-discover .tuscaler.yaml)")
}

// loadFileConfig merges file values under any flags the user set.
func loadFileConfig(cmd *cobra.Command, cfg *config.Config, path string) error {
	var fc *config.FileConfig
	var err error

	if path != "" {
		fc, err = config.LoadFile(path)
	} else {
		fc, _, err = config.AutoLoadFile()
	}
	if err != nil {
		return err
	}
	if fc == nil {
		return nil
	}

	// Flags win over file values: snapshot the flag-set fields, apply the
	// file, then restore what the user set explicitly.
	fromFlags := *cfg
	if err := fc.Apply(cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("arm-rate-limit") {
		cfg.ARMRateLimit = fromFlags.ARMRateLimit
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = fromFlags.Concurrency
	}
	if cmd.Flags().Changed("exclude-subscription") {
		cfg.ExcludeSubscriptions = fromFlags.ExcludeSubscriptions
	}
	if cmd.Flags().Changed("exclude-namespace") {
		cfg.ExcludeNamespaces = fromFlags.ExcludeNamespaces
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = fromFlags.OutputDir
	}
	return nil
}

// newRunner resolves the credential chain and wires the orchestrator.
func newRunner(cfg *config.Config) (*runner.Runner, error) {
	fmt.Println("🔐 Resolving Azure credential...")
	client, err := azure.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create ARM client: %w", err)
	}
	return runner.New(client, client, cfg, version), nil
}

// runOnce executes a single reconciliation pass and renders its report.
func runOnce(ctx context.Context, cfg *config.Config) (*models.RunReport, error) {
	run, err := newRunner(cfg)
	if err != nil {
		return nil, err
	}
	return executePass(ctx, run, cfg)
}

// executePass drives one pass of an already-wired runner.
func executePass(ctx context.Context, run *runner.Runner, cfg *config.Config) (*models.RunReport, error) {
	startTime := time.Now()

	fmt.Println("🔍 Reconciling namespaces...")
	rep, err := run.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := report.WriteText(rep); err != nil {
		return rep, fmt.Errorf("failed to render summary: %w", err)
	}
	if cfg.OutputDir != "" {
		if err := report.WriteJSON(rep, cfg.OutputDir); err != nil {
			return rep, err
		}
		fmt.Printf("📝 Report written to: %s\n", cfg.OutputDir)
	}

	slog.Debug("pass complete",
		slog.Duration("elapsed", time.Since(startTime)),
	)
	fmt.Printf("\n✅ Pass complete in %s\n", time.Since(startTime).Round(time.Second))
	return rep, nil
}
