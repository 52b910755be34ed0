// Package sidecar finds companion subtitle and audio files stored beside a
// container and classifies them by filename.
package sidecar

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"mkvnorm/internal/language"
	"mkvnorm/internal/outcome"
	"mkvnorm/internal/tracks"
)

const (
	subtitleExt   = ".srt"
	audioExt      = ".aac"
	forcedName    = "forced.srt"
	forcedLang    = "spa"
	forcedLabel   = "Forced"
	defaultLabel  = "Subtitle"
	componentName = "sidecar"
)

// DefaultLanguages is the sidecar vocabulary used when none is configured.
var DefaultLanguages = []string{"spa", "jpn", "eng"}

// Discoverer lists sidecars through an afero filesystem.
type Discoverer struct {
	fs        afero.Fs
	languages map[string]struct{}
}

// NewDiscoverer builds a discoverer over fs. A nil fs uses the OS filesystem.
// languages lists the ISO 639-2 codes recognized as "<code>.srt" and
// "<code>.aac"; empty uses DefaultLanguages.
func NewDiscoverer(fs afero.Fs, languages []string) *Discoverer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	codes := language.NormalizeList(languages)
	if len(codes) == 0 {
		codes = DefaultLanguages
	}
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return &Discoverer{fs: fs, languages: set}
}

// Discover lists dir (non-recursively) and returns the recognized sidecars
// sorted by filename. An empty result is not an error.
func (d *Discoverer) Discover(dir string) ([]tracks.SidecarFile, error) {
	entries, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		return nil, outcome.Wrap(outcome.ErrDiscoveryIO, componentName, "read dir", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var found []tracks.SidecarFile
	for _, name := range names {
		if sc, ok := d.Classify(name); ok {
			sc.Path = filepath.Join(dir, name)
			found = append(found, sc)
		}
	}
	return found, nil
}

// Classify maps an exact filename to a sidecar description. Matching is
// case-sensitive; unrecognized names return false.
func (d *Discoverer) Classify(name string) (tracks.SidecarFile, bool) {
	if name == forcedName {
		return tracks.SidecarFile{
			MediaKind: tracks.KindSubtitles,
			Language:  forcedLang,
			Role:      tracks.RoleForced,
			Name:      forcedLabel,
			Default:   true,
		}, true
	}

	ext := filepath.Ext(name)
	code := strings.TrimSuffix(name, ext)
	if _, ok := d.languages[code]; !ok {
		return tracks.SidecarFile{}, false
	}

	switch ext {
	case subtitleExt:
		return tracks.SidecarFile{
			MediaKind: tracks.KindSubtitles,
			Language:  code,
			Role:      tracks.RolePrimary,
			Name:      label(code),
			Default:   false,
		}, true
	case audioExt:
		return tracks.SidecarFile{
			MediaKind: tracks.KindAudio,
			Language:  code,
			Role:      tracks.RolePrimary,
			Name:      label(code),
			Default:   true,
		}, true
	}
	return tracks.SidecarFile{}, false
}

func label(code string) string {
	if name := language.NativeName(code); name != "" {
		return name
	}
	return defaultLabel
}
