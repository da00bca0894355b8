// Package resourceid parses Azure Resource Manager hierarchical identifiers.
//
// ARM ids are alternating key/value segment pairs, e.g.
//
//	/subscriptions/<id>/resourceGroups/<rg>/providers/Microsoft.EventHub/namespaces/<name>
//
// The parser is deliberately lenient about prefixes: any path carrying a
// resourceGroups/<name>/providers run of segments is accepted, so ids
// returned by list calls and ids embedded in other documents both work.
package resourceid

import (
	"fmt"
	"strings"
)

const (
	segmentSubscriptions  = "subscriptions"
	segmentResourceGroups = "resourceGroups"
	segmentProviders      = "providers"
)

// ParseError reports a malformed resource identifier. It is scoped to the
// one resource carrying the id; callers skip that resource and continue.
type ParseError struct {
	ID     string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed resource id %q: %s", e.ID, e.Reason)
}

// ResourceID is the decoded form of an ARM identifier.
type ResourceID struct {
	SubscriptionID string
	ResourceGroup  string
	Provider       string
	ResourceType   string
	ResourceName   string
}

// Parse decodes an ARM identifier into its segment pairs.
func Parse(id string) (ResourceID, error) {
	trimmed := strings.Trim(id, "/")
	if trimmed == "" {
		return ResourceID{}, &ParseError{ID: id, Reason: "empty identifier"}
	}

	segments := strings.Split(trimmed, "/")
	var out ResourceID

	for i := 0; i < len(segments)-1; i++ {
		switch segments[i] {
		case segmentSubscriptions:
			if out.SubscriptionID == "" {
				out.SubscriptionID = segments[i+1]
			}
		case segmentResourceGroups:
			if segments[i+1] == "" {
				return ResourceID{}, &ParseError{ID: id, Reason: "empty resource group segment"}
			}
			if i+2 >= len(segments) || segments[i+2] != segmentProviders {
				return ResourceID{}, &ParseError{ID: id, Reason: "resource group not followed by providers segment"}
			}
			out.ResourceGroup = segments[i+1]
			if i+3 < len(segments) {
				out.Provider = segments[i+3]
			}
			if i+5 < len(segments) {
				out.ResourceType = segments[i+4]
				out.ResourceName = segments[i+5]
			}
			return out, nil
		}
	}

	return ResourceID{}, &ParseError{ID: id, Reason: "no resourceGroups segment"}
}

// ResourceGroup extracts the owning resource-group name from an ARM id.
func ResourceGroup(id string) (string, error) {
	rid, err := Parse(id)
	if err != nil {
		return "", err
	}
	return rid.ResourceGroup, nil
}
