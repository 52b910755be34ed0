package policy

import (
	"sort"

	"mkvnorm/internal/language"
	"mkvnorm/internal/profile"
	"mkvnorm/internal/tracks"
)

// Metadata is the resolved state for one track.
type Metadata struct {
	Language string
	Name     string
	Default  bool
	// Rule names the table entry that produced the metadata; empty when the
	// track was left unmodified.
	Rule string
}

// Resolution maps positional track ids to resolved metadata.
type Resolution map[int]Metadata

// Apply returns t with its resolved metadata, or t unchanged when the
// resolution has no entry for it.
func (r Resolution) Apply(t tracks.Track) tracks.Track {
	md, ok := r[t.ID]
	if !ok {
		return t
	}
	t.Language = md.Language
	t.Name = md.Name
	t.Default = md.Default
	return t
}

// facts are cross-track conditions evaluated once per job.
type facts struct {
	hasSpanishAudio   bool
	hasForcedSubtitle bool
}

func gather(all []tracks.Track) facts {
	var f facts
	for _, t := range all {
		switch {
		case t.Kind == tracks.KindAudio && t.Lang() == "spa":
			f.hasSpanishAudio = true
		case t.Kind == tracks.KindSubtitles && t.Forced:
			f.hasForcedSubtitle = true
		}
	}
	return f
}

// Resolve computes metadata for every track in all: the container tracks that
// survive the plan plus the pending sidecars, before any mutation.
func Resolve(all []tracks.Track, p profile.Profile) Resolution {
	f := gather(all)
	res := make(Resolution, len(all))
	for _, t := range all {
		md := Metadata{Language: t.Lang(), Name: t.Name, Default: t.Default}
		if r, ok := lookup(p.Name, t.Kind, t.Lang()); ok {
			md = r.apply(t, f)
			md.Rule = r.name
		}
		res[t.ID] = md
	}
	clearCompetingDefaults(all, res)
	return res
}

// clearCompetingDefaults keeps a single default per kind. Tracks set by a rule
// outrank tracks left unmodified, forced subtitles outrank everything else of
// their kind, and lower ids break remaining ties.
func clearCompetingDefaults(all []tracks.Track, res Resolution) {
	byKind := make(map[tracks.Kind][]tracks.Track)
	for _, t := range all {
		if res[t.ID].Default {
			byKind[t.Kind] = append(byKind[t.Kind], t)
		}
	}
	for _, candidates := range byKind {
		if len(candidates) < 2 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			a, b := candidates[i], candidates[j]
			if a.Forced != b.Forced {
				return a.Forced
			}
			ra, rb := res[a.ID].Rule != "", res[b.ID].Rule != ""
			if ra != rb {
				return ra
			}
			return a.ID < b.ID
		})
		for _, loser := range candidates[1:] {
			md := res[loser.ID]
			md.Default = false
			res[loser.ID] = md
		}
	}
}

func label(code string) string {
	return language.NativeName(code)
}
