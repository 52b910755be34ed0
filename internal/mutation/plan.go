package mutation

import (
	"sort"

	"mkvnorm/internal/policy"
	"mkvnorm/internal/tracks"
)

// Options toggles container-level cleanup carried in every plan.
type Options struct {
	StripAttachments bool
	StripChapters    bool
	StripGlobalTags  bool
}

// Plan is the complete set of changes for one container.
type Plan struct {
	// Remove lists positional ids in descending order.
	Remove []int
	// Add holds sidecar tracks with resolved metadata, in discovery order.
	Add []tracks.Track
	// Relabel is keyed by SourceID because positional ids shift on removal.
	Relabel map[int]policy.Metadata
	Title   string

	StripAttachments bool
	StripChapters    bool
	StripGlobalTags  bool
}

// Build computes the plan for job. The job's container is not modified.
func Build(job tracks.MediaJob, title string, opts Options) Plan {
	original := job.Container.Tracks()

	replaceAudio := job.HasSidecar(tracks.KindAudio)

	// Superseded tracks are left out of resolution so they cannot claim a
	// default that belongs to the sidecars replacing them.
	merged := job.Container.Clone()
	for _, sc := range job.Sidecars {
		merged.Add(sc.Track())
	}
	all := merged.Tracks()
	inputs := make([]tracks.Track, 0, len(all))
	for i, t := range all {
		if i < len(original) && superseded(t, replaceAudio) {
			continue
		}
		inputs = append(inputs, t)
	}
	resolution := policy.Resolve(inputs, job.Profile)

	plan := Plan{
		Relabel:          make(map[int]policy.Metadata),
		Title:            title,
		StripAttachments: opts.StripAttachments,
		StripChapters:    opts.StripChapters,
		StripGlobalTags:  opts.StripGlobalTags,
	}

	for _, t := range original {
		if superseded(t, replaceAudio) {
			plan.Remove = append(plan.Remove, t.ID)
			continue
		}
		plan.Relabel[t.SourceID] = resolution[t.ID]
	}
	sort.Sort(sort.Reverse(sort.IntSlice(plan.Remove)))

	for _, t := range all[len(original):] {
		added := resolution.Apply(t)
		added.ID = 0
		plan.Add = append(plan.Add, added)
	}
	return plan
}

func superseded(t tracks.Track, replaceAudio bool) bool {
	switch t.Kind {
	case tracks.KindSubtitles:
		return true
	case tracks.KindAudio:
		return replaceAudio
	default:
		return false
	}
}

// Changed reports whether applying the plan alters anything besides the title.
func (p Plan) Changed() bool {
	return len(p.Remove) > 0 || len(p.Add) > 0
}
