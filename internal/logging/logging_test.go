package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitDefaultLevel(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(original)
	})

	Init(false)
	logger := slog.Default()
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be disabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("expected warn to be enabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected error to be enabled by default")
	}
}

func TestInitVerbose(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(original)
	})

	Init(true)
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be enabled with verbose")
	}
}
