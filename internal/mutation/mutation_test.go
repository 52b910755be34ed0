package mutation

import (
	"errors"
	"testing"

	"mkvnorm/internal/outcome"
	"mkvnorm/internal/profile"
	"mkvnorm/internal/tracks"
)

var (
	spaSub    = tracks.SidecarFile{Path: "/d/spa.srt", MediaKind: tracks.KindSubtitles, Language: "spa", Role: tracks.RolePrimary, Name: "Español"}
	forcedSub = tracks.SidecarFile{Path: "/d/forced.srt", MediaKind: tracks.KindSubtitles, Language: "spa", Role: tracks.RoleForced, Name: "Forced", Default: true}
	spaAudio  = tracks.SidecarFile{Path: "/d/spa.aac", MediaKind: tracks.KindAudio, Language: "spa", Role: tracks.RolePrimary, Name: "Español", Default: true}
)

func seriesJob() tracks.MediaJob {
	probed := []tracks.Track{
		{SourceID: 0, Kind: tracks.KindVideo, Language: "und", Codec: "AVC/H.264"},
		{SourceID: 1, Kind: tracks.KindAudio, Language: "jpn", Codec: "AAC"},
		{SourceID: 2, Kind: tracks.KindSubtitles, Language: "eng", Codec: "SubRip/SRT"},
		{SourceID: 3, Kind: tracks.KindSubtitles, Language: "eng", Codec: "SubRip/SRT", Name: "Signs"},
	}
	return tracks.MediaJob{
		ContainerPath: "/d/Show - 01.mkv",
		Container:     tracks.NewContainer("/d/Show - 01.mkv", probed),
		Sidecars:      []tracks.SidecarFile{spaSub, forcedSub},
		Profile:       profile.MustParse("series"),
	}
}

func TestBuildRemovesEmbeddedSubtitlesHighestFirst(t *testing.T) {
	plan := Build(seriesJob(), "Show - 01", Options{})
	if len(plan.Remove) != 2 || plan.Remove[0] != 3 || plan.Remove[1] != 2 {
		t.Fatalf("expected removals [3 2], got %v", plan.Remove)
	}
	if len(plan.Add) != 2 {
		t.Fatalf("expected two sidecar additions, got %d", len(plan.Add))
	}
	if _, ok := plan.Relabel[1]; !ok {
		t.Fatalf("expected relabel entry for source audio track, got %v", plan.Relabel)
	}
	if _, ok := plan.Relabel[2]; ok {
		t.Fatalf("removed tracks must not be relabeled")
	}
}

func TestBuildKeepsAudioWithoutAudioSidecar(t *testing.T) {
	plan := Build(seriesJob(), "Show - 01", Options{})
	for _, id := range plan.Remove {
		if id == 1 {
			t.Fatalf("audio track removed without replacement: %v", plan.Remove)
		}
	}

	job := seriesJob()
	job.Sidecars = append(job.Sidecars, spaAudio)
	plan = Build(job, "Show - 01", Options{})
	if len(plan.Remove) != 3 || plan.Remove[2] != 1 {
		t.Fatalf("expected audio removal alongside subtitles, got %v", plan.Remove)
	}
}

func addedDefaults(plan Plan, kind tracks.Kind) []tracks.Track {
	var out []tracks.Track
	for _, a := range plan.Add {
		if a.Kind == kind && a.Default {
			out = append(out, a)
		}
	}
	return out
}

func TestBuildRemovedSubtitleDoesNotStealDefault(t *testing.T) {
	job := tracks.MediaJob{
		ContainerPath: "/d/Show - 02.mkv",
		Container: tracks.NewContainer("/d/Show - 02.mkv", []tracks.Track{
			{SourceID: 0, Kind: tracks.KindVideo, Language: "jpn"},
			{SourceID: 1, Kind: tracks.KindAudio, Language: "jpn"},
			{SourceID: 2, Kind: tracks.KindSubtitles, Language: "spa", Default: true},
		}),
		Sidecars: []tracks.SidecarFile{spaSub},
		Profile:  profile.MustParse("series"),
	}
	plan := Build(job, "Show - 02", Options{})
	if len(plan.Remove) != 1 || plan.Remove[0] != 2 {
		t.Fatalf("expected embedded subtitle removal, got %v", plan.Remove)
	}
	defaults := addedDefaults(plan, tracks.KindSubtitles)
	if len(defaults) != 1 || defaults[0].SourcePath != spaSub.Path {
		t.Fatalf("expected spa.srt to be the default subtitle, got %v", plan.Add)
	}
}

func TestBuildRemovedForcedSubtitleLeavesOneDefault(t *testing.T) {
	job := tracks.MediaJob{
		ContainerPath: "/d/Show - 03.mkv",
		Container: tracks.NewContainer("/d/Show - 03.mkv", []tracks.Track{
			{SourceID: 0, Kind: tracks.KindVideo, Language: "jpn"},
			{SourceID: 1, Kind: tracks.KindSubtitles, Language: "spa", Forced: true, Default: true},
		}),
		Sidecars: []tracks.SidecarFile{forcedSub, spaSub},
		Profile:  profile.MustParse("series"),
	}
	plan := Build(job, "Show - 03", Options{})
	defaults := addedDefaults(plan, tracks.KindSubtitles)
	if len(defaults) != 1 || defaults[0].SourcePath != forcedSub.Path {
		t.Fatalf("expected forced.srt as the only default subtitle, got %v", plan.Add)
	}
	for sourceID, md := range plan.Relabel {
		if sourceID == 1 {
			t.Fatalf("removed subtitle relabeled: %+v", md)
		}
	}
}

func TestBuildReplacedSpanishAudioDoesNotCount(t *testing.T) {
	jpnAudio := tracks.SidecarFile{Path: "/d/jpn.aac", MediaKind: tracks.KindAudio, Language: "jpn", Role: tracks.RolePrimary, Name: "日本語", Default: true}
	job := tracks.MediaJob{
		ContainerPath: "/d/Show - 04.mkv",
		Container: tracks.NewContainer("/d/Show - 04.mkv", []tracks.Track{
			{SourceID: 0, Kind: tracks.KindVideo, Language: "jpn"},
			{SourceID: 1, Kind: tracks.KindAudio, Language: "spa", Default: true},
		}),
		Sidecars: []tracks.SidecarFile{jpnAudio},
		Profile:  profile.MustParse("series"),
	}
	plan := Build(job, "Show - 04", Options{})
	if len(plan.Remove) != 1 || plan.Remove[0] != 1 {
		t.Fatalf("expected embedded audio removal, got %v", plan.Remove)
	}
	defaults := addedDefaults(plan, tracks.KindAudio)
	if len(defaults) != 1 || defaults[0].Language != "jpn" {
		t.Fatalf("expected jpn sidecar audio as default, got %v", plan.Add)
	}
}

func TestApplySeriesScenario(t *testing.T) {
	job := seriesJob()
	res := NewEngine(Options{}, nil).Mutate(job, "Show - 01")
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if job.Container.Len() != 4 {
		t.Fatalf("job container must stay untouched, got %d tracks", job.Container.Len())
	}

	out := res.Container
	if out.Title != "Show - 01" {
		t.Fatalf("unexpected title %q", out.Title)
	}
	got := out.Tracks()
	if len(got) != 4 {
		t.Fatalf("expected 4 tracks, got %v", got)
	}

	video := got[0]
	if video.Language != "jpn" || video.Name != "日本語" || !video.Default {
		t.Fatalf("unexpected video metadata %s", video)
	}
	audio := got[1]
	if audio.Language != "jpn" || !audio.Default {
		t.Fatalf("japanese audio should stay default without spanish audio: %s", audio)
	}

	subs := out.ByKind(tracks.KindSubtitles)
	if len(subs) != 2 {
		t.Fatalf("expected two sidecar subtitles, got %v", subs)
	}
	defaults := 0
	for _, s := range subs {
		if !s.IsSidecar() {
			t.Fatalf("embedded subtitle survived: %s", s)
		}
		if s.Default {
			defaults++
			if !s.Forced || s.Name != "Forced" {
				t.Fatalf("only the forced subtitle may be default: %s", s)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default subtitle, got %d", defaults)
	}
}

func TestApplyDuplicateRemovalWarnsOnce(t *testing.T) {
	c := seriesJob().Container.Clone()
	plan := Plan{Remove: []int{3, 3, 2}, Title: "x"}
	warnings := Apply(c, plan, nil)

	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if !errors.Is(warnings[0], outcome.ErrStaleTrack) {
		t.Fatalf("expected stale track warning, got %v", warnings[0])
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 remaining tracks, got %v", c.Tracks())
	}
	for _, tr := range c.Tracks() {
		if tr.Kind == tracks.KindSubtitles {
			t.Fatalf("subtitle survived duplicate removal: %s", tr)
		}
	}
	if c.Title != "x" {
		t.Fatalf("title step skipped after warning")
	}
}

func TestApplyUnknownIDContinues(t *testing.T) {
	c := seriesJob().Container.Clone()
	plan := Plan{Remove: []int{9, 2}, Add: []tracks.Track{spaSub.Track()}}
	warnings := Apply(c, plan, nil)
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
	if c.Len() != 4 {
		t.Fatalf("expected removal and addition to proceed, got %v", c.Tracks())
	}
}
