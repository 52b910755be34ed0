package policy

import (
	"testing"

	"mkvnorm/internal/profile"
	"mkvnorm/internal/tracks"
)

var (
	series = profile.MustParse("series")
	movies = profile.MustParse("movies")
)

func merged(probed []tracks.Track, sidecars ...tracks.SidecarFile) []tracks.Track {
	c := tracks.NewContainer("/d/file.mkv", probed)
	for _, sc := range sidecars {
		c.Add(sc.Track())
	}
	return c.Tracks()
}

var (
	spaSub    = tracks.SidecarFile{Path: "/d/spa.srt", MediaKind: tracks.KindSubtitles, Language: "spa", Role: tracks.RolePrimary, Name: "Español"}
	forcedSub = tracks.SidecarFile{Path: "/d/forced.srt", MediaKind: tracks.KindSubtitles, Language: "spa", Role: tracks.RoleForced, Name: "Forced", Default: true}
)

func TestJapaneseAudioDefaultDependsOnSpanishAudio(t *testing.T) {
	jpn := tracks.Track{SourceID: 1, Kind: tracks.KindAudio, Language: "jpn", Codec: "AAC"}
	spa := tracks.Track{SourceID: 2, Kind: tracks.KindAudio, Language: "spa", Codec: "AAC"}

	for _, p := range []profile.Profile{series, movies} {
		alone := merged([]tracks.Track{jpn})
		res := Resolve(alone, p)
		if md := res[0]; !md.Default || md.Name != "日本語" {
			t.Fatalf("%s: expected jpn audio default without spanish sibling, got %+v", p, md)
		}

		forward := merged([]tracks.Track{jpn, spa})
		reverse := merged([]tracks.Track{spa, jpn})
		resF := Resolve(forward, p)
		resR := Resolve(reverse, p)
		if resF[0].Default || resR[1].Default {
			t.Fatalf("%s: jpn audio must not be default with spanish sibling (forward=%+v reverse=%+v)", p, resF[0], resR[1])
		}
		if !resF[1].Default || !resR[0].Default || resF[1].Name != "Español" {
			t.Fatalf("%s: spanish audio should be default (forward=%+v reverse=%+v)", p, resF[1], resR[0])
		}
	}
}

func TestForcedSubtitleWinsDefault(t *testing.T) {
	for _, order := range [][]tracks.SidecarFile{{spaSub, forcedSub}, {forcedSub, spaSub}} {
		all := merged(nil, order...)
		res := Resolve(all, series)
		defaults := 0
		for _, tr := range all {
			md := res[tr.ID]
			if md.Default {
				defaults++
				if !tr.Forced || md.Name != "Forced" {
					t.Fatalf("expected forced subtitle as the default, got %+v (%+v)", tr, md)
				}
			}
		}
		if defaults != 1 {
			t.Fatalf("expected exactly one default subtitle, got %d", defaults)
		}
	}
}

func TestSpanishSubtitleDefaultWithoutForced(t *testing.T) {
	all := merged(nil, spaSub)
	res := Resolve(all, movies)
	if md := res[0]; !md.Default || md.Name != "Español" || md.Language != "spa" {
		t.Fatalf("expected plain spanish subtitle default, got %+v", md)
	}
}

func TestVideoRules(t *testing.T) {
	tests := []struct {
		name     string
		profile  profile.Profile
		language string
		spanish  bool
		wantLang string
		wantName string
		wantDef  bool
	}{
		{"series und", series, "und", false, "jpn", "日本語", true},
		{"series jpn", series, "jpn", true, "jpn", "日本語", true},
		{"series eng", series, "eng", false, "eng", "English", true},
		{"movies und", movies, "und", false, "eng", "English", true},
		{"movies jpn", movies, "jpn", false, "jpn", "日本語", true},
		{"movies jpn with spanish", movies, "jpn", true, "jpn", "日本語", false},
		{"movies eng", movies, "eng", false, "eng", "English", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probed := []tracks.Track{{SourceID: 0, Kind: tracks.KindVideo, Language: tt.language}}
			if tt.spanish {
				probed = append(probed, tracks.Track{SourceID: 1, Kind: tracks.KindAudio, Language: "spa", Codec: "AC-3"})
			}
			md := Resolve(merged(probed), tt.profile)[0]
			if md.Language != tt.wantLang || md.Name != tt.wantName || md.Default != tt.wantDef {
				t.Fatalf("got %+v, want lang=%s name=%s default=%t", md, tt.wantLang, tt.wantName, tt.wantDef)
			}
		})
	}
}

func TestUnmatchedTracksAreIdentity(t *testing.T) {
	probed := []tracks.Track{{SourceID: 0, Kind: tracks.KindAudio, Language: "fra", Name: "Français 5.1", Default: true, Codec: "AC-3"}}
	md := Resolve(merged(probed), series)[0]
	if md.Rule != "" || md.Language != "fra" || md.Name != "Français 5.1" || !md.Default {
		t.Fatalf("expected identity metadata, got %+v", md)
	}
}

func TestRuledDefaultOutranksInheritedDefault(t *testing.T) {
	probed := []tracks.Track{
		{SourceID: 0, Kind: tracks.KindAudio, Language: "eng", Default: true, Codec: "AC-3"},
		{SourceID: 1, Kind: tracks.KindAudio, Language: "spa", Codec: "AC-3"},
	}
	res := Resolve(merged(probed), movies)
	if res[0].Default {
		t.Fatalf("inherited default should be cleared, got %+v", res[0])
	}
	if !res[1].Default {
		t.Fatalf("spanish audio should keep default, got %+v", res[1])
	}
}

func TestResolutionApply(t *testing.T) {
	all := merged([]tracks.Track{{SourceID: 0, Kind: tracks.KindVideo, Language: "und"}})
	res := Resolve(all, series)
	applied := res.Apply(all[0])
	if applied.Language != "jpn" || applied.Name != "日本語" || !applied.Default {
		t.Fatalf("unexpected applied track %+v", applied)
	}
	stranger := tracks.Track{ID: 42, Language: "kor"}
	if got := res.Apply(stranger); got != stranger {
		t.Fatalf("expected unchanged track, got %+v", got)
	}
}
