package azure

import (
	"context"
	"fmt"

	"github.com/ppiankov/tuscaler/internal/models"
)

// ListSubscriptions enumerates every subscription the credential can see.
// A failure here is run-fatal: with no subscriptions there is nothing to do.
func (c *Client) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var out []models.Subscription

	err := c.call(ctx, func(ctx context.Context) error {
		out = out[:0]
		pager := c.subs.NewListPager(nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("failed to list subscriptions: %w", err)
			}
			for _, sub := range page.Value {
				if sub == nil || sub.SubscriptionID == nil {
					continue
				}
				out = append(out, models.Subscription{
					ID:          *sub.SubscriptionID,
					DisplayName: deref(sub.DisplayName),
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
