// Package reconciler applies one scale-down policy to live namespace state.
package reconciler

import (
	"context"
	"log/slog"

	"github.com/ppiankov/tuscaler/internal/azure"
	"github.com/ppiankov/tuscaler/internal/models"
)

// Reconciler lowers a namespace's capacity to its policy target.
type Reconciler struct {
	platform azure.NamespacePlatform
	dryRun   bool
}

// New creates a Reconciler. In dry-run mode the decision is evaluated and
// reported but no update is issued.
func New(platform azure.NamespacePlatform, dryRun bool) *Reconciler {
	return &Reconciler{platform: platform, dryRun: dryRun}
}

// Reconcile refetches the namespace by identity and, when current capacity
// exceeds the target, patches it down to the target while preserving the
// SKU name and tier. The refetch matters: a capacity figure captured during
// the scan could be stale by the time of the update. All failures land in
// the returned outcome; none propagate to sibling namespaces.
func (r *Reconciler) Reconcile(ctx context.Context, p models.ScaleDownPolicy) models.Outcome {
	outcome := models.Outcome{
		SubscriptionID: p.SubscriptionID,
		ResourceGroup:  p.ResourceGroup,
		Namespace:      p.NamespaceName,
	}

	meta, err := r.platform.GetNamespace(ctx, p.SubscriptionID, p.ResourceGroup, p.NamespaceName)
	if err != nil {
		outcome.Action = models.ActionFailed
		outcome.Reason = err.Error()
		slog.Warn("failed to fetch namespace for reconciliation",
			slog.String("namespace", p.NamespaceName),
			slog.String("error", err.Error()),
		)
		return outcome
	}

	current := meta.SKU.Capacity
	outcome.FromUnits = current

	if current <= p.TargetUnits {
		outcome.Action = models.ActionNoop
		outcome.ToUnits = current
		slog.Debug("namespace already at or below target",
			slog.String("namespace", p.NamespaceName),
			slog.Int("current", int(current)),
			slog.Int("target", int(p.TargetUnits)),
		)
		return outcome
	}

	if r.dryRun {
		outcome.Action = models.ActionNoop
		outcome.ToUnits = current
		outcome.Reason = "dry run"
		slog.Info("dry run: would scale down namespace",
			slog.String("namespace", p.NamespaceName),
			slog.Int("from", int(current)),
			slog.Int("to", int(p.TargetUnits)),
		)
		return outcome
	}

	target := meta.SKU
	target.Capacity = p.TargetUnits
	if err := r.platform.UpdateCapacity(ctx, p.SubscriptionID, p.ResourceGroup, p.NamespaceName, target); err != nil {
		outcome.Action = models.ActionFailed
		outcome.Reason = err.Error()
		slog.Warn("failed to update namespace capacity",
			slog.String("namespace", p.NamespaceName),
			slog.String("error", err.Error()),
		)
		return outcome
	}

	outcome.Action = models.ActionUpdated
	outcome.ToUnits = p.TargetUnits
	slog.Info("scaled down namespace",
		slog.String("subscription", p.SubscriptionID),
		slog.String("resource_group", p.ResourceGroup),
		slog.String("namespace", p.NamespaceName),
		slog.Int("from", int(current)),
		slog.Int("to", int(p.TargetUnits)),
	)
	return outcome
}
