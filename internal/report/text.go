package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/tuscaler/internal/models"
)

// WriteText writes a human-readable run summary to stdout.
func WriteText(report *models.RunReport) error {
	return writeText(report, os.Stdout)
}

func writeText(report *models.RunReport, out io.Writer) error {
	if report == nil {
		return fmt.Errorf("report is nil")
	}
	if out == nil {
		return fmt.Errorf("writer is nil")
	}

	var b strings.Builder

	b.WriteString("tuscaler run summary\n")
	b.WriteString(fmt.Sprintf("  started:       %s\n", report.Metadata.StartedAt.Format("2006-01-02 15:04:05 MST")))
	b.WriteString(fmt.Sprintf("  duration:      %s\n", report.Metadata.Duration))
	b.WriteString(fmt.Sprintf("  subscriptions: %d\n", report.Metadata.Subscriptions))
	if report.Metadata.DryRun {
		b.WriteString("  mode:          dry run (no updates issued)\n")
	}
	b.WriteString("\n")

	updated, noop, skipped, failed := report.Counts()
	b.WriteString(fmt.Sprintf("namespaces: %d updated, %d at target, %d skipped, %d failed\n",
		updated, noop, skipped, failed))

	for _, res := range report.Results {
		switch {
		case res.Failed():
			b.WriteString(fmt.Sprintf("\n%s: scan failed: %s\n", subscriptionLabel(res.Subscription), res.Err))
			continue
		case res.SkipReason != "":
			b.WriteString(fmt.Sprintf("\n%s: skipped (%s)\n", subscriptionLabel(res.Subscription), res.SkipReason))
			continue
		case len(res.Outcomes) == 0:
			continue
		}

		b.WriteString(fmt.Sprintf("\n%s:\n", subscriptionLabel(res.Subscription)))
		for _, o := range res.Outcomes {
			switch o.Action {
			case models.ActionUpdated:
				b.WriteString(fmt.Sprintf("  %-40s scaled down %d -> %d\n", o.Namespace, o.FromUnits, o.ToUnits))
			case models.ActionNoop:
				if o.Reason != "" {
					b.WriteString(fmt.Sprintf("  %-40s unchanged at %d (%s)\n", o.Namespace, o.FromUnits, o.Reason))
				} else {
					b.WriteString(fmt.Sprintf("  %-40s unchanged at %d\n", o.Namespace, o.FromUnits))
				}
			case models.ActionSkipped:
				b.WriteString(fmt.Sprintf("  %-40s skipped: %s\n", o.Namespace, o.Reason))
			case models.ActionFailed:
				b.WriteString(fmt.Sprintf("  %-40s FAILED: %s\n", o.Namespace, o.Reason))
			}
		}
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func subscriptionLabel(sub models.Subscription) string {
	if sub.DisplayName != "" {
		return fmt.Sprintf("%s (%s)", sub.DisplayName, sub.ID)
	}
	return sub.ID
}
