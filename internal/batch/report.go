package batch

import (
	"time"

	"mkvnorm/internal/outcome"
	"mkvnorm/internal/profile"
	"mkvnorm/internal/tracks"
)

// Item is the result of processing one container.
type Item struct {
	outcome.Outcome

	// Args is the mkvmerge argument list, set once a remux was attempted or planned.
	Args []string
	// Tracks is the mutated track inventory, set once mutation ran.
	Tracks []tracks.Track
	// Warnings collects non-fatal problems such as stale removals.
	Warnings []error
}

// Report describes one run over a media tree.
type Report struct {
	RunID      string
	Root       string
	Profile    profile.Profile
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Items      []Item
}

// Outcomes returns the per-file outcomes in discovery order.
func (r Report) Outcomes() []outcome.Outcome {
	out := make([]outcome.Outcome, len(r.Items))
	for i, item := range r.Items {
		out[i] = item.Outcome
	}
	return out
}

// Summary tallies the report's outcomes.
func (r Report) Summary() outcome.Summary {
	return outcome.Summarize(r.Outcomes())
}

// Duration is the wall time of the run.
func (r Report) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
