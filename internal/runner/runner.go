// Package runner drives one full reconciliation pass: enumerate
// subscriptions, scan each for eligible namespaces, reconcile each policy.
//
// Failure containment is three-tiered. Only subscription enumeration is
// run-fatal; a failed subscription scan skips that subscription alone, and
// a failed namespace fetch or update skips that namespace alone. Outcomes
// are collected as data rather than raised, so the containment holds at
// any concurrency degree.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/tuscaler/internal/azure"
	"github.com/ppiankov/tuscaler/internal/metrics"
	"github.com/ppiankov/tuscaler/internal/models"
	"github.com/ppiankov/tuscaler/internal/reconciler"
	"github.com/ppiankov/tuscaler/internal/scanner"
	"github.com/ppiankov/tuscaler/pkg/config"
)

// Runner orchestrates one pass over every visible subscription.
type Runner struct {
	subs    azure.SubscriptionLister
	scanner *scanner.Scanner
	recon   *reconciler.Reconciler
	cfg     *config.Config
	version string
}

// New wires a Runner from the platform clients and configuration.
func New(subs azure.SubscriptionLister, platform azure.NamespacePlatform, cfg *config.Config, version string) *Runner {
	return &Runner{
		subs:    subs,
		scanner: scanner.New(platform, cfg),
		recon:   reconciler.New(platform, cfg.DryRun),
		cfg:     cfg,
		version: version,
	}
}

// Run executes one reconciliation pass. The returned error is non-nil only
// when subscription enumeration fails; everything narrower is reported in
// the RunReport.
func (r *Runner) Run(ctx context.Context) (*models.RunReport, error) {
	start := time.Now()

	subs, err := r.subs.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscription enumeration failed: %w", err)
	}

	slog.Debug("run started",
		slog.Int("subscriptions", len(subs)),
		slog.Int("concurrency", r.cfg.Concurrency),
		slog.Bool("dry_run", r.cfg.DryRun),
	)

	results := make([]models.SubscriptionResult, len(subs))
	forEach(ctx, r.cfg.Concurrency, len(subs), func(ctx context.Context, i int) {
		results[i] = r.processSubscription(ctx, subs[i])
	})

	report := &models.RunReport{
		Metadata: models.Metadata{
			StartedAt:     start,
			Duration:      time.Since(start).Round(time.Millisecond).String(),
			Version:       r.version,
			DryRun:        r.cfg.DryRun,
			Concurrency:   r.cfg.Concurrency,
			Subscriptions: len(subs),
		},
		Results: results,
	}

	metrics.ObserveRun(report, time.Since(start))
	return report, nil
}

// processSubscription scans one subscription and reconciles its policies
// sequentially. Scan failure marks the whole subscription failed with no
// partial namespace processing; reconcile failures are per-namespace.
func (r *Runner) processSubscription(ctx context.Context, sub models.Subscription) models.SubscriptionResult {
	result := models.SubscriptionResult{Subscription: sub}

	if r.cfg.IsSubscriptionExcluded(sub.ID, sub.DisplayName) {
		slog.Info("subscription excluded by configuration",
			slog.String("subscription", sub.ID),
			slog.String("name", sub.DisplayName),
		)
		result.SkipReason = "excluded by configuration"
		return result
	}

	policies, skipped, err := r.scanner.Scan(ctx, sub.ID)
	if err != nil {
		slog.Warn("subscription scan failed, moving on",
			slog.String("subscription", sub.ID),
			slog.String("error", err.Error()),
		)
		result.Err = err.Error()
		return result
	}

	result.Outcomes = append(result.Outcomes, skipped...)
	for _, p := range policies {
		result.Outcomes = append(result.Outcomes, r.recon.Reconcile(ctx, p))
	}

	return result
}
