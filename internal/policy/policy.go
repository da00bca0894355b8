// Package policy decides which namespaces are in scope for downscaling and
// what their target capacity is. It is pure: all decisions are made over
// metadata already fetched from the platform.
package policy

import (
	"log/slog"
	"strconv"

	"github.com/ppiankov/tuscaler/internal/models"
	"github.com/ppiankov/tuscaler/internal/resourceid"
)

// TagKey is the well-known tag that opts a namespace into downscaling.
// Its value is the target throughput-unit count.
const TagKey = "ScaleDownTUs"

// DefaultTargetUnits is the target applied when the tag value is missing
// or not a positive integer. Failing open to minimum capacity is a policy
// choice: a mistyped tag downscales all the way rather than not at all.
const DefaultTargetUnits int32 = 1

// Tagged reports whether the namespace carries the scale-down tag at all.
// Untagged namespaces are filtered before extraction and never logged.
func Tagged(meta models.NamespaceMetadata) bool {
	_, ok := meta.Tags[TagKey]
	return ok
}

// Extract derives a ScaleDownPolicy from one namespace's metadata.
// It returns false when the namespace is tagged but not eligible, which
// currently means auto-inflate is absent or disabled. Malformed resource
// ids surface as an error scoped to this namespace alone.
func Extract(meta models.NamespaceMetadata) (models.ScaleDownPolicy, bool, error) {
	if meta.AutoInflateEnabled == nil || !*meta.AutoInflateEnabled {
		slog.Info("namespace not configured for auto-inflate, skipping",
			slog.String("namespace", meta.Name),
		)
		return models.ScaleDownPolicy{}, false, nil
	}

	rid, err := resourceid.Parse(meta.ID)
	if err != nil {
		return models.ScaleDownPolicy{}, false, err
	}

	return models.ScaleDownPolicy{
		SubscriptionID: rid.SubscriptionID,
		ResourceGroup:  rid.ResourceGroup,
		NamespaceName:  meta.Name,
		TargetUnits:    targetUnits(meta.Tags[TagKey]),
	}, true, nil
}

// targetUnits parses the tag value as a positive integer target,
// falling back to DefaultTargetUnits.
func targetUnits(raw string) int32 {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n <= 0 {
		slog.Debug("unparseable scale-down target, using default",
			slog.String("value", raw),
			slog.Int("default", int(DefaultTargetUnits)),
		)
		return DefaultTargetUnits
	}
	return int32(n)
}
