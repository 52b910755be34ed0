package sidecar

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"mkvnorm/internal/outcome"
	"mkvnorm/internal/tracks"
)

func writeFiles(t *testing.T, fs afero.Fs, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := afero.WriteFile(fs, filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestDiscoverRecognizedVocabulary(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := "/library/Show (2020)"
	writeFiles(t, fs, dir, "Show - 01.mkv", "spa.srt", "forced.srt", "jpn.aac", "notes.txt", "Spa.srt", "spa.SRT")

	got, err := NewDiscoverer(fs, nil).Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sidecars, got %d: %+v", len(got), got)
	}

	byName := map[string]tracks.SidecarFile{}
	for _, sc := range got {
		byName[filepath.Base(sc.Path)] = sc
	}

	spa := byName["spa.srt"]
	if spa.MediaKind != tracks.KindSubtitles || spa.Language != "spa" || spa.Role != tracks.RolePrimary || spa.Default {
		t.Fatalf("unexpected spa.srt classification %+v", spa)
	}
	if spa.Name != "Español" {
		t.Fatalf("unexpected spa.srt name %q", spa.Name)
	}

	forced := byName["forced.srt"]
	if forced.Language != "spa" || forced.Role != tracks.RoleForced || !forced.Default || forced.Name != "Forced" {
		t.Fatalf("unexpected forced.srt classification %+v", forced)
	}

	jpn := byName["jpn.aac"]
	if jpn.MediaKind != tracks.KindAudio || jpn.Language != "jpn" || !jpn.Default || jpn.Name != "日本語" {
		t.Fatalf("unexpected jpn.aac classification %+v", jpn)
	}
}

func TestDiscoverSortedByName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/d", "spa.srt", "forced.srt", "jpn.aac")
	got, err := NewDiscoverer(fs, nil).Discover("/d")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"forced.srt", "jpn.aac", "spa.srt"}
	for i, sc := range got {
		if filepath.Base(sc.Path) != want[i] {
			t.Fatalf("position %d: got %s want %s", i, filepath.Base(sc.Path), want[i])
		}
	}
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/d", "movie.mkv")
	got, err := NewDiscoverer(fs, nil).Discover("/d")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no sidecars, got %+v", got)
	}
}

func TestDiscoverUnreadableDirectory(t *testing.T) {
	_, err := NewDiscoverer(afero.NewMemMapFs(), nil).Discover("/missing")
	if !errors.Is(err, outcome.ErrDiscoveryIO) {
		t.Fatalf("expected ErrDiscoveryIO, got %v", err)
	}
}

func TestDiscoverConfiguredLanguages(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, "/d", "eng.srt", "spa.srt")
	got, err := NewDiscoverer(fs, []string{"en"}).Discover("/d")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Language != "eng" || got[0].Name != "English" {
		t.Fatalf("expected only eng.srt, got %+v", got)
	}
}
