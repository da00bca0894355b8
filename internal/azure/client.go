// Package azure wraps the Azure Resource Manager surface the reconciler
// uses: subscription enumeration and Event Hubs namespace list/get/update.
// All calls go through a shared token-bucket rate limiter and a retry
// policy that backs off on throttling and transient network failures.
package azure

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"

	"github.com/ppiankov/tuscaler/internal/models"
	"github.com/ppiankov/tuscaler/pkg/config"
)

// SubscriptionLister enumerates subscriptions visible to the credential.
type SubscriptionLister interface {
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
}

// NamespacePlatform is the management-plane surface the pipeline uses.
type NamespacePlatform interface {
	ListNamespaces(ctx context.Context, subscriptionID string) ([]models.NamespaceMetadata, error)
	GetNamespace(ctx context.Context, subscriptionID, resourceGroup, name string) (models.NamespaceMetadata, error)
	UpdateCapacity(ctx context.Context, subscriptionID, resourceGroup, name string, sku models.SKU) error
}

// Client implements SubscriptionLister and NamespacePlatform against ARM.
type Client struct {
	cred    azcore.TokenCredential
	subs    *armsubscriptions.Client
	limiter *RateLimiter
	retry   retryConfig
	timeout time.Duration
}

// NewClient builds a Client from an already-resolved credential chain.
// Tenant, client id and client secret come from the process environment;
// no authentication state lives in this package.
func NewClient(cfg *config.Config) (*Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Azure credential: %w", err)
	}
	return NewClientWithCredential(cfg, cred)
}

// NewClientWithCredential builds a Client around an explicit credential.
func NewClientWithCredential(cfg *config.Config, cred azcore.TokenCredential) (*Client, error) {
	subs, err := armsubscriptions.NewClient(cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscriptions client: %w", err)
	}

	slog.Debug("ARM client initialized",
		slog.Int("rate_limit", cfg.ARMRateLimit),
		slog.Duration("call_timeout", cfg.CallTimeout),
	)

	return &Client{
		cred:    cred,
		subs:    subs,
		limiter: NewRateLimiter(cfg.ARMRateLimit),
		retry:   defaultRetryConfig(),
		timeout: cfg.CallTimeout,
	}, nil
}

// call applies the shared rate limit, per-call timeout and retry policy
// around one platform operation.
func (c *Client) call(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := withCallTimeout(ctx, c.timeout)
	defer cancel()

	return executeWithRetry(ctx, c.retry, func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		return fn(ctx)
	})
}
