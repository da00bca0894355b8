package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFileYAML is the canonical config filename.
	DefaultConfigFileYAML = ".tuscaler.yaml"
	// DefaultConfigFileYML is a compatible alternate config filename.
	DefaultConfigFileYML = ".tuscaler.yml"
)

// FileConfig represents values loaded from a .tuscaler.yaml file.
// Flags take precedence over file values.
type FileConfig struct {
	ExcludeSubscriptions []string `yaml:"exclude_subscriptions"`
	ExcludeNamespaces    []string `yaml:"exclude_namespaces"`
	CallTimeout          string   `yaml:"call_timeout"`
	Interval             string   `yaml:"interval"`
	ARMRateLimit         *int     `yaml:"arm_rate_limit"`
	Concurrency          *int     `yaml:"concurrency"`
	OutputDir            string   `yaml:"output"`
}

// Normalize trims and removes empty items from list fields.
func (fc *FileConfig) Normalize() {
	if fc == nil {
		return
	}
	fc.ExcludeSubscriptions = normalizeList(fc.ExcludeSubscriptions)
	fc.ExcludeNamespaces = normalizeList(fc.ExcludeNamespaces)
	fc.CallTimeout = strings.TrimSpace(fc.CallTimeout)
	fc.Interval = strings.TrimSpace(fc.Interval)
	fc.OutputDir = strings.TrimSpace(fc.OutputDir)
}

// Apply copies file values into cfg for fields the file sets.
func (fc *FileConfig) Apply(cfg *Config) error {
	if fc == nil || cfg == nil {
		return nil
	}

	if len(fc.ExcludeSubscriptions) > 0 {
		cfg.ExcludeSubscriptions = fc.ExcludeSubscriptions
	}
	if len(fc.ExcludeNamespaces) > 0 {
		cfg.ExcludeNamespaces = fc.ExcludeNamespaces
	}
	if fc.CallTimeout != "" {
		d, err := ParseDuration(fc.CallTimeout)
		if err != nil {
			return fmt.Errorf("invalid call_timeout in config file: %w", err)
		}
		cfg.CallTimeout = d
	}
	if fc.Interval != "" {
		d, err := ParseDuration(fc.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval in config file: %w", err)
		}
		cfg.Interval = d
	}
	if fc.ARMRateLimit != nil {
		cfg.ARMRateLimit = *fc.ARMRateLimit
	}
	if fc.Concurrency != nil {
		cfg.Concurrency = *fc.Concurrency
	}
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}

	return nil
}

// AutoLoadFile discovers and loads the first available config file.
func AutoLoadFile() (*FileConfig, string, error) {
	candidates := []string{
		DefaultConfigFileYAML,
		DefaultConfigFileYML,
	}

	if homeDir, err := os.UserHomeDir(); err == nil && strings.TrimSpace(homeDir) != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, DefaultConfigFileYAML),
			filepath.Join(homeDir, DefaultConfigFileYML),
		)
	}

	return LoadFirstExistingFile(candidates)
}

// LoadFirstExistingFile loads the first config file that exists in paths.
func LoadFirstExistingFile(paths []string) (*FileConfig, string, error) {
	for _, path := range paths {
		candidate := strings.TrimSpace(path)
		if candidate == "" {
			continue
		}

		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, "", fmt.Errorf("failed to access config file %q: %w", candidate, err)
		}
		if info.IsDir() {
			return nil, "", fmt.Errorf("config path %q is a directory, expected a file", candidate)
		}

		cfg, err := LoadFile(candidate)
		if err != nil {
			return nil, "", err
		}
		return cfg, candidate, nil
	}

	return nil, "", nil
}

// LoadFile loads config values from a specific YAML file path.
func LoadFile(path string) (*FileConfig, error) {
	filename := strings.TrimSpace(path)
	if filename == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", filename, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}

	cfg.Normalize()
	return cfg, nil
}

func normalizeList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	normalized := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
