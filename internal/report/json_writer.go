// Package report renders run results for operators: a text summary on
// stdout and, when an output directory is configured, a JSON document.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ppiankov/tuscaler/internal/models"
)

// WriteJSON writes the run report to run-report.json in dir.
func WriteJSON(report *models.RunReport, dir string) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if dir == "" {
		return fmt.Errorf("output directory is empty")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run report: %w", err)
	}

	outputPath := filepath.Join(dir, "run-report.json")
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write run-report.json: %w", err)
	}

	slog.Debug("run report written", slog.String("path", outputPath))
	return nil
}
