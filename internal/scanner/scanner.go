// Package scanner turns one subscription into the list of scale-down
// policies for its eligible namespaces.
package scanner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ppiankov/tuscaler/internal/azure"
	"github.com/ppiankov/tuscaler/internal/models"
	"github.com/ppiankov/tuscaler/internal/policy"
	"github.com/ppiankov/tuscaler/pkg/config"
)

// Scanner lists the namespaces of a subscription and derives policies.
type Scanner struct {
	platform azure.NamespacePlatform
	cfg      *config.Config
}

// New creates a Scanner over the given platform.
func New(platform azure.NamespacePlatform, cfg *config.Config) *Scanner {
	return &Scanner{platform: platform, cfg: cfg}
}

// Scan fetches all namespaces of one subscription in a single bulk listing,
// pre-filters to those tagged for scale-down, and extracts one policy per
// eligible namespace. Ineligible, excluded and malformed entries are
// reported as skip outcomes; only the listing itself can fail, and that
// failure is scoped to this subscription.
func (s *Scanner) Scan(ctx context.Context, subscriptionID string) ([]models.ScaleDownPolicy, []models.Outcome, error) {
	metas, err := s.platform.ListNamespaces(ctx, subscriptionID)
	if err != nil {
		return nil, nil, fmt.Errorf("scan of subscription %s failed: %w", subscriptionID, err)
	}

	var policies []models.ScaleDownPolicy
	var skipped []models.Outcome

	for _, meta := range metas {
		if !policy.Tagged(meta) {
			continue
		}

		if s.cfg.IsNamespaceExcluded(meta.Name) {
			slog.Info("namespace excluded by configuration",
				slog.String("subscription", subscriptionID),
				slog.String("namespace", meta.Name),
			)
			skipped = append(skipped, models.Outcome{
				SubscriptionID: subscriptionID,
				Namespace:      meta.Name,
				Action:         models.ActionSkipped,
				Reason:         "excluded by configuration",
			})
			continue
		}

		p, ok, err := policy.Extract(meta)
		if err != nil {
			slog.Warn("skipping namespace with malformed metadata",
				slog.String("subscription", subscriptionID),
				slog.String("namespace", meta.Name),
				slog.String("error", err.Error()),
			)
			skipped = append(skipped, models.Outcome{
				SubscriptionID: subscriptionID,
				Namespace:      meta.Name,
				Action:         models.ActionSkipped,
				Reason:         err.Error(),
			})
			continue
		}
		if !ok {
			skipped = append(skipped, models.Outcome{
				SubscriptionID: subscriptionID,
				Namespace:      meta.Name,
				Action:         models.ActionSkipped,
				Reason:         "not configured for auto-inflate",
			})
			continue
		}

		// List responses carry fully-qualified ids, but the scanned
		// subscription is authoritative either way.
		p.SubscriptionID = subscriptionID
		policies = append(policies, p)
	}

	slog.Debug("subscription scan complete",
		slog.String("subscription", subscriptionID),
		slog.Int("namespaces", len(metas)),
		slog.Int("policies", len(policies)),
		slog.Int("skipped", len(skipped)),
	)

	return policies, skipped, nil
}
