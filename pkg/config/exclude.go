package config

import (
	"path"
	"strings"
)

// Normalize trims exclude patterns and removes empty values.
func (c *Config) Normalize() {
	if c == nil {
		return
	}
	c.ExcludeSubscriptions = normalizePatterns(c.ExcludeSubscriptions)
	c.ExcludeNamespaces = normalizePatterns(c.ExcludeNamespaces)
}

// IsSubscriptionExcluded reports whether a subscription matches the exclude
// patterns, by id or by display name.
func (c *Config) IsSubscriptionExcluded(id, displayName string) bool {
	if c == nil || len(c.ExcludeSubscriptions) == 0 {
		return false
	}

	for _, pattern := range c.ExcludeSubscriptions {
		if patternMatches(pattern, id) || patternMatches(pattern, displayName) {
			return true
		}
	}

	return false
}

// IsNamespaceExcluded reports whether a namespace name matches the exclude
// patterns. Excluded namespaces are never reconciled even when tagged.
func (c *Config) IsNamespaceExcluded(name string) bool {
	if c == nil || len(c.ExcludeNamespaces) == 0 {
		return false
	}

	value := normalizePattern(name)
	if value == "" {
		return false
	}

	for _, pattern := range c.ExcludeNamespaces {
		if patternMatches(pattern, value) {
			return true
		}
	}

	return false
}

func normalizePatterns(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, pattern := range values {
		p := normalizePattern(pattern)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	return normalized
}

func normalizePattern(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func patternMatches(pattern, value string) bool {
	normalizedPattern := normalizePattern(pattern)
	normalizedValue := normalizePattern(value)
	if normalizedPattern == "" || normalizedValue == "" {
		return false
	}

	// Invalid glob patterns are treated as exact matches.
	matched, err := path.Match(normalizedPattern, normalizedValue)
	if err == nil {
		return matched
	}
	return normalizedPattern == normalizedValue
}
