package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFileYAML)
	content := `
exclude_subscriptions:
  - prod-*
exclude_namespaces:
  - eh-critical-*
  - legacy
call_timeout: 90s
interval: 2m
arm_rate_limit: 5
concurrency: 4
output: ./out
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	fc, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if len(fc.ExcludeSubscriptions) != 1 || fc.ExcludeSubscriptions[0] != "prod-*" {
		t.Fatalf("unexpected exclude_subscriptions: %v", fc.ExcludeSubscriptions)
	}
	if len(fc.ExcludeNamespaces) != 2 || fc.ExcludeNamespaces[1] != "legacy" {
		t.Fatalf("unexpected exclude_namespaces: %v", fc.ExcludeNamespaces)
	}

	cfg := DefaultConfig()
	if err := fc.Apply(cfg); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if cfg.CallTimeout != 90*time.Second {
		t.Fatalf("expected call timeout 90s, got %s", cfg.CallTimeout)
	}
	if cfg.Interval != 2*time.Minute {
		t.Fatalf("expected interval 2m, got %s", cfg.Interval)
	}
	if cfg.ARMRateLimit != 5 {
		t.Fatalf("expected rate limit 5, got %d", cfg.ARMRateLimit)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("expected concurrency 4, got %d", cfg.Concurrency)
	}
	if cfg.OutputDir != "./out" {
		t.Fatalf("expected output ./out, got %q", cfg.OutputDir)
	}
}

func TestApplyBadDuration(t *testing.T) {
	fc := &FileConfig{CallTimeout: "soon"}
	if err := fc.Apply(DefaultConfig()); err == nil {
		t.Fatal("expected error for unparseable call_timeout")
	}
}

func TestLoadFirstExistingFileSkipsMissing(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.yaml")
	present := filepath.Join(dir, DefaultConfigFileYML)
	if err := os.WriteFile(present, []byte("concurrency: 2\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	fc, path, err := LoadFirstExistingFile([]string{missing, present})
	if err != nil {
		t.Fatalf("LoadFirstExistingFile failed: %v", err)
	}
	if path != present {
		t.Fatalf("expected %q, got %q", present, path)
	}
	if fc.Concurrency == nil || *fc.Concurrency != 2 {
		t.Fatalf("unexpected concurrency: %v", fc.Concurrency)
	}
}

func TestLoadFirstExistingFileNoneFound(t *testing.T) {
	fc, path, err := LoadFirstExistingFile([]string{filepath.Join(t.TempDir(), "absent.yaml")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc != nil || path != "" {
		t.Fatalf("expected no config, got %v at %q", fc, path)
	}
}
