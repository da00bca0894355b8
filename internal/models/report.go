package models

import "time"

// Metadata describes one run for reporting.
type Metadata struct {
	StartedAt     time.Time `json:"started_at"`
	Duration      string    `json:"duration"`
	Version       string    `json:"version"`
	DryRun        bool      `json:"dry_run"`
	Concurrency   int       `json:"concurrency"`
	Subscriptions int       `json:"subscriptions"`
}

// RunReport is the full result of one reconciliation pass.
type RunReport struct {
	Metadata Metadata             `json:"metadata"`
	Results  []SubscriptionResult `json:"results"`
}

// Counts tallies outcomes across all subscriptions.
func (r *RunReport) Counts() (updated, noop, skipped, failed int) {
	for _, res := range r.Results {
		for _, o := range res.Outcomes {
			switch o.Action {
			case ActionUpdated:
				updated++
			case ActionNoop:
				noop++
			case ActionSkipped:
				skipped++
			case ActionFailed:
				failed++
			}
		}
	}
	return updated, noop, skipped, failed
}

// FailedSubscriptions returns the subscriptions whose scan failed outright.
func (r *RunReport) FailedSubscriptions() []SubscriptionResult {
	var out []SubscriptionResult
	for _, res := range r.Results {
		if res.Failed() {
			out = append(out, res)
		}
	}
	return out
}
