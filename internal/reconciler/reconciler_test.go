package reconciler

import (
	"context"
	"errors"
	"testing"

	"github.com/ppiankov/tuscaler/internal/models"
)

type updateCall struct {
	resourceGroup string
	name          string
	sku           models.SKU
}

type fakePlatform struct {
	capacity  map[string]int32
	getErr    error
	updateErr error
	updates   []updateCall
}

func (f *fakePlatform) ListNamespaces(context.Context, string) ([]models.NamespaceMetadata, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlatform) GetNamespace(_ context.Context, _, resourceGroup, name string) (models.NamespaceMetadata, error) {
	if f.getErr != nil {
		return models.NamespaceMetadata{}, f.getErr
	}
	return models.NamespaceMetadata{
		Name: name,
		SKU:  models.SKU{Name: "Standard", Tier: "Standard", Capacity: f.capacity[name]},
	}, nil
}

func (f *fakePlatform) UpdateCapacity(_ context.Context, _, resourceGroup, name string, sku models.SKU) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, updateCall{resourceGroup: resourceGroup, name: name, sku: sku})
	f.capacity[name] = sku.Capacity
	return nil
}

func testPolicy(name string, target int32) models.ScaleDownPolicy {
	return models.ScaleDownPolicy{
		SubscriptionID: "sub-1",
		ResourceGroup:  "rg-1",
		NamespaceName:  name,
		TargetUnits:    target,
	}
}

func TestReconcileScalesDown(t *testing.T) {
	platform := &fakePlatform{capacity: map[string]int32{"eh-a": 10}}
	r := New(platform, false)

	outcome := r.Reconcile(context.Background(), testPolicy("eh-a", 2))

	if outcome.Action != models.ActionUpdated {
		t.Fatalf("expected updated, got %+v", outcome)
	}
	if outcome.FromUnits != 10 || outcome.ToUnits != 2 {
		t.Fatalf("expected 10 -> 2, got %d -> %d", outcome.FromUnits, outcome.ToUnits)
	}
	if len(platform.updates) != 1 {
		t.Fatalf("expected exactly one update call, got %d", len(platform.updates))
	}
	up := platform.updates[0]
	if up.resourceGroup != "rg-1" || up.name != "eh-a" {
		t.Fatalf("update addressed wrong namespace: %+v", up)
	}
	if up.sku.Name != "Standard" || up.sku.Tier != "Standard" {
		t.Fatalf("update must preserve SKU name and tier: %+v", up.sku)
	}
	if up.sku.Capacity != 2 {
		t.Fatalf("expected capacity 2, got %d", up.sku.Capacity)
	}
}

func TestReconcileNoopAtOrBelowTarget(t *testing.T) {
	cases := []struct {
		name    string
		current int32
		target  int32
	}{
		{name: "at_target", current: 2, target: 2},
		{name: "below_target", current: 1, target: 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			platform := &fakePlatform{capacity: map[string]int32{"eh-a": tc.current}}
			outcome := New(platform, false).Reconcile(context.Background(), testPolicy("eh-a", tc.target))

			if outcome.Action != models.ActionNoop {
				t.Fatalf("expected noop, got %+v", outcome)
			}
			if len(platform.updates) != 0 {
				t.Fatalf("expected no update calls, got %d", len(platform.updates))
			}
		})
	}
}

func TestReconcileIdempotent(t *testing.T) {
	platform := &fakePlatform{capacity: map[string]int32{"eh-a": 10}}
	r := New(platform, false)
	p := testPolicy("eh-a", 2)

	first := r.Reconcile(context.Background(), p)
	if first.Action != models.ActionUpdated {
		t.Fatalf("expected first pass to update, got %+v", first)
	}

	second := r.Reconcile(context.Background(), p)
	if second.Action != models.ActionNoop {
		t.Fatalf("expected second pass to be a noop, got %+v", second)
	}
	if len(platform.updates) != 1 {
		t.Fatalf("expected zero updates on second pass, got %d total", len(platform.updates))
	}
}

func TestReconcileDryRun(t *testing.T) {
	platform := &fakePlatform{capacity: map[string]int32{"eh-a": 10}}
	outcome := New(platform, true).Reconcile(context.Background(), testPolicy("eh-a", 2))

	if outcome.Action != models.ActionNoop || outcome.Reason != "dry run" {
		t.Fatalf("expected dry-run noop, got %+v", outcome)
	}
	if len(platform.updates) != 0 {
		t.Fatalf("expected no update calls in dry run, got %d", len(platform.updates))
	}
}

func TestReconcileFetchFailure(t *testing.T) {
	platform := &fakePlatform{getErr: errors.New("gateway timeout")}
	outcome := New(platform, false).Reconcile(context.Background(), testPolicy("eh-a", 2))

	if outcome.Action != models.ActionFailed {
		t.Fatalf("expected failed outcome, got %+v", outcome)
	}
	if outcome.Reason == "" {
		t.Fatal("expected failure reason to be recorded")
	}
}

func TestReconcileUpdateFailure(t *testing.T) {
	platform := &fakePlatform{
		capacity:  map[string]int32{"eh-a": 10},
		updateErr: errors.New("conflict"),
	}
	outcome := New(platform, false).Reconcile(context.Background(), testPolicy("eh-a", 2))

	if outcome.Action != models.ActionFailed {
		t.Fatalf("expected failed outcome, got %+v", outcome)
	}
}
