package verify

import (
	"errors"
	"testing"

	"mkvnorm/internal/outcome"
	"mkvnorm/internal/profile"
	"mkvnorm/internal/tracks"
)

var subtitleSidecars = []tracks.SidecarFile{
	{Path: "/d/spa.srt", MediaKind: tracks.KindSubtitles, Language: "spa", Role: tracks.RolePrimary},
}

func job(p string, sidecars []tracks.SidecarFile, probed ...tracks.Track) tracks.MediaJob {
	return tracks.MediaJob{
		ContainerPath: "/d/file.mkv",
		Container:     tracks.NewContainer("/d/file.mkv", probed),
		Sidecars:      sidecars,
		Profile:       profile.MustParse(p),
	}
}

func audio(lang, codec string) tracks.Track {
	return tracks.Track{Kind: tracks.KindAudio, Language: lang, Codec: codec}
}

func TestNoSubtitleSidecarsSkips(t *testing.T) {
	audioOnly := []tracks.SidecarFile{{Path: "/d/jpn.aac", MediaKind: tracks.KindAudio, Language: "jpn"}}
	d := Evaluate(job("series", audioOnly, audio("jpn", "AAC")))
	if d.Accepted || d.Reason != "no subtitles found" {
		t.Fatalf("unexpected decision %+v", d)
	}
	if !errors.Is(d.Err(), outcome.ErrSkipped) {
		t.Fatalf("expected ErrSkipped, got %v", d.Err())
	}
}

func TestDuplicateAudioLanguageSkipsForEveryProfile(t *testing.T) {
	for _, p := range profile.Names() {
		t.Run(p, func(t *testing.T) {
			d := Evaluate(job(p, subtitleSidecars, audio("jpn", "AC-3"), audio("jpn", "AC-3")))
			if d.Accepted || d.Code != CodeDuplicateLanguage {
				t.Fatalf("expected duplicate skip, got %+v", d)
			}
			if d.Reason != "duplicate audio language jpn" {
				t.Fatalf("unexpected reason %q", d.Reason)
			}
		})
	}
}

func TestMoviesRequireAC3(t *testing.T) {
	d := Evaluate(job("movies", subtitleSidecars, audio("eng", "AAC")))
	if d.Accepted || d.Reason != "unexpected codec AAC" {
		t.Fatalf("expected codec skip, got %+v", d)
	}

	d = Evaluate(job("movies", subtitleSidecars, audio("eng", "AC-3"), audio("spa", "AC-3")))
	if !d.Accepted {
		t.Fatalf("expected accept for AC-3 audio, got %+v", d)
	}
}

func TestSeriesAcceptsAnyCodec(t *testing.T) {
	d := Evaluate(job("series", subtitleSidecars, audio("jpn", "FLAC")))
	if !d.Accepted {
		t.Fatalf("expected accept, got %+v", d)
	}
	if d.Err() != nil {
		t.Fatalf("accepted decision must not carry an error")
	}
}

func TestFirstMatchWins(t *testing.T) {
	// Missing subtitles is reported even though the codec and duplicate rules
	// would also reject this job.
	d := Evaluate(job("movies", nil, audio("eng", "AAC"), audio("eng", "AAC")))
	if d.Code != CodeNoSubtitles {
		t.Fatalf("expected no-subtitles to win, got %+v", d)
	}

	d = Evaluate(job("movies", subtitleSidecars, audio("eng", "AAC"), audio("eng", "AAC")))
	if d.Code != CodeDuplicateLanguage {
		t.Fatalf("expected duplicate language to win over codec, got %+v", d)
	}
}

func TestUndeterminedLanguagesCountAsDuplicates(t *testing.T) {
	d := Evaluate(job("series", subtitleSidecars, audio("", "AAC"), audio("und", "AAC")))
	if d.Code != CodeDuplicateLanguage {
		t.Fatalf("expected duplicate und audio to skip, got %+v", d)
	}
}
