package models

// Subscription is one Azure subscription visible to the credential.
type Subscription struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SKU describes the provisioned tier and capacity of a namespace.
type SKU struct {
	Name     string `json:"name"`
	Tier     string `json:"tier"`
	Capacity int32  `json:"capacity"`
}

// NamespaceMetadata is the raw platform view of one Event Hubs namespace.
// AutoInflateEnabled is tri-state: nil when the platform omits the flag.
type NamespaceMetadata struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Tags               map[string]string `json:"tags,omitempty"`
	AutoInflateEnabled *bool             `json:"auto_inflate_enabled,omitempty"`
	MaximumThroughput  int32             `json:"maximum_throughput_units,omitempty"`
	SKU                SKU               `json:"sku"`
}

// ScaleDownPolicy is the per-namespace downscale decision. Only built for
// namespaces that carry the scale-down tag and have auto-inflate enabled.
type ScaleDownPolicy struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group"`
	NamespaceName  string `json:"namespace"`
	TargetUnits    int32  `json:"target_units"`
}

// Action classifies the result of evaluating one namespace.
type Action string

const (
	// ActionNoop means current capacity was already at or below target.
	ActionNoop Action = "noop"
	// ActionUpdated means capacity was lowered to the target.
	ActionUpdated Action = "updated"
	// ActionSkipped means the namespace was excluded before reconciliation
	// (not eligible, excluded by pattern, or malformed metadata).
	ActionSkipped Action = "skipped"
	// ActionFailed means a platform fetch or update failed.
	ActionFailed Action = "failed"
)

// Outcome records what happened to one namespace during a run.
type Outcome struct {
	SubscriptionID string `json:"subscription_id"`
	ResourceGroup  string `json:"resource_group,omitempty"`
	Namespace      string `json:"namespace"`
	Action         Action `json:"action"`
	FromUnits      int32  `json:"from_units,omitempty"`
	ToUnits        int32  `json:"to_units,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// SubscriptionResult aggregates the outcomes of one subscription scan.
// Err is set when the namespace listing itself failed; Outcomes is empty
// in that case because no namespace was processed.
type SubscriptionResult struct {
	Subscription Subscription `json:"subscription"`
	Outcomes     []Outcome    `json:"outcomes,omitempty"`
	SkipReason   string       `json:"skip_reason,omitempty"`
	Err          string       `json:"error,omitempty"`
}

// Failed reports whether the subscription scan itself failed.
func (r SubscriptionResult) Failed() bool {
	return r.Err != ""
}
