package mutation

import (
	"fmt"
	"log/slog"

	"mkvnorm/internal/logging"
	"mkvnorm/internal/outcome"
	"mkvnorm/internal/tracks"
)

// Apply replays plan against c in place and returns the non-fatal warnings
// raised along the way. Every warning wraps outcome.ErrStaleTrack.
func Apply(c *tracks.Container, plan Plan, logger *slog.Logger) []error {
	if logger == nil {
		logger = logging.NewNop()
	}

	// Removal ids refer to the container as it was when the plan was built.
	// Resolve them to source identities first so a repeated or stale id can
	// never remove a different track after renumbering.
	targets := make(map[int]int, len(plan.Remove))
	for _, id := range plan.Remove {
		if t, ok := c.Get(id); ok && !t.IsSidecar() {
			targets[id] = t.SourceID
		}
	}

	var warnings []error
	for _, id := range plan.Remove {
		err := removeTarget(c, id, targets)
		if err == nil {
			continue
		}
		warnings = append(warnings, err)
		logging.WarnWithContext(logger, "track removal skipped", "track_remove_stale",
			logging.Int("track_id", id),
			logging.Error(err),
			logging.String(logging.FieldImpact, "remaining mutations continue"),
		)
	}

	for _, t := range plan.Add {
		c.Add(t)
	}

	for _, t := range c.Sources() {
		md, ok := plan.Relabel[t.SourceID]
		if !ok {
			continue
		}
		t.Language = md.Language
		t.Name = md.Name
		t.Default = md.Default
		if err := c.Update(t); err != nil {
			warnings = append(warnings, err)
		}
	}

	c.SetTitle(plan.Title)
	return warnings
}

func removeTarget(c *tracks.Container, id int, targets map[int]int) error {
	sourceID, ok := targets[id]
	if !ok {
		return fmt.Errorf("%w: track %d does not exist or has already been removed", outcome.ErrStaleTrack, id)
	}
	delete(targets, id)
	return c.RemoveSource(sourceID)
}
