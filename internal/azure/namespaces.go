package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"

	"github.com/ppiankov/tuscaler/internal/models"
)

// ListNamespaces returns the metadata of every Event Hubs namespace in one
// subscription via a single bulk listing.
func (c *Client) ListNamespaces(ctx context.Context, subscriptionID string) ([]models.NamespaceMetadata, error) {
	client, err := c.namespacesClient(subscriptionID)
	if err != nil {
		return nil, err
	}

	var out []models.NamespaceMetadata
	err = c.call(ctx, func(ctx context.Context) error {
		out = out[:0]
		pager := client.NewListPager(nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return fmt.Errorf("failed to list namespaces in subscription %s: %w", subscriptionID, err)
			}
			for _, ns := range page.Value {
				if ns == nil {
					continue
				}
				out = append(out, fromEHNamespace(ns))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetNamespace fetches one namespace by identity. Reconciliation refetches
// rather than trusting capacity figures captured during the scan, which may
// be stale by the time of the update.
func (c *Client) GetNamespace(ctx context.Context, subscriptionID, resourceGroup, name string) (models.NamespaceMetadata, error) {
	client, err := c.namespacesClient(subscriptionID)
	if err != nil {
		return models.NamespaceMetadata{}, err
	}

	var meta models.NamespaceMetadata
	err = c.call(ctx, func(ctx context.Context) error {
		resp, err := client.Get(ctx, resourceGroup, name, nil)
		if err != nil {
			return fmt.Errorf("failed to get namespace %s/%s: %w", resourceGroup, name, err)
		}
		meta = fromEHNamespace(&resp.EHNamespace)
		return nil
	})
	if err != nil {
		return models.NamespaceMetadata{}, err
	}

	return meta, nil
}

// UpdateCapacity patches the namespace SKU to the given capacity, echoing
// back the existing SKU name and tier so only capacity changes.
func (c *Client) UpdateCapacity(ctx context.Context, subscriptionID, resourceGroup, name string, sku models.SKU) error {
	client, err := c.namespacesClient(subscriptionID)
	if err != nil {
		return err
	}

	patch := &armeventhub.SKU{
		Capacity: to.Ptr(sku.Capacity),
	}
	if sku.Name != "" {
		patch.Name = to.Ptr(armeventhub.SKUName(sku.Name))
	}
	if sku.Tier != "" {
		patch.Tier = to.Ptr(armeventhub.SKUTier(sku.Tier))
	}
	parameters := armeventhub.EHNamespace{SKU: patch}

	return c.call(ctx, func(ctx context.Context) error {
		if _, err := client.Update(ctx, resourceGroup, name, parameters, nil); err != nil {
			return fmt.Errorf("failed to update capacity of %s/%s: %w", resourceGroup, name, err)
		}
		return nil
	})
}

func (c *Client) namespacesClient(subscriptionID string) (*armeventhub.NamespacesClient, error) {
	client, err := armeventhub.NewNamespacesClient(subscriptionID, c.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create namespaces client for subscription %s: %w", subscriptionID, err)
	}
	return client, nil
}

func fromEHNamespace(ns *armeventhub.EHNamespace) models.NamespaceMetadata {
	meta := models.NamespaceMetadata{
		ID:   deref(ns.ID),
		Name: deref(ns.Name),
	}

	if len(ns.Tags) > 0 {
		meta.Tags = make(map[string]string, len(ns.Tags))
		for k, v := range ns.Tags {
			meta.Tags[k] = deref(v)
		}
	}

	if props := ns.Properties; props != nil {
		meta.AutoInflateEnabled = props.IsAutoInflateEnabled
		if props.MaximumThroughputUnits != nil {
			meta.MaximumThroughput = *props.MaximumThroughputUnits
		}
	}

	if sku := ns.SKU; sku != nil {
		if sku.Name != nil {
			meta.SKU.Name = string(*sku.Name)
		}
		if sku.Tier != nil {
			meta.SKU.Tier = string(*sku.Tier)
		}
		if sku.Capacity != nil {
			meta.SKU.Capacity = *sku.Capacity
		}
	}

	return meta
}
