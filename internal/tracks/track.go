package tracks

import (
	"fmt"
	"strings"
)

// Kind is the media type of a track, spelled the way mkvmerge reports it.
type Kind string

const (
	KindVideo     Kind = "video"
	KindAudio     Kind = "audio"
	KindSubtitles Kind = "subtitles"
)

// ParseKind normalizes a track type string.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "video":
		return KindVideo, nil
	case "audio":
		return KindAudio, nil
	case "subtitles", "subtitle":
		return KindSubtitles, nil
	default:
		return "", fmt.Errorf("unknown track kind %q", value)
	}
}

// UndeterminedLanguage is the ISO 639-2 code for an unknown language.
const UndeterminedLanguage = "und"

// NoSource marks a track that does not exist in the source container yet.
const NoSource = -1

// Track is one media stream inside, or destined for, a container.
type Track struct {
	ID         int
	SourceID   int
	Kind       Kind
	Language   string
	Codec      string
	Name       string
	Default    bool
	Forced     bool
	SourcePath string
}

// IsSidecar reports whether the track is pending addition from a sidecar file.
func (t Track) IsSidecar() bool {
	return t.SourceID == NoSource && t.SourcePath != ""
}

// Lang returns the track language, defaulting to "und".
func (t Track) Lang() string {
	lang := strings.ToLower(strings.TrimSpace(t.Language))
	if lang == "" {
		return UndeterminedLanguage
	}
	return lang
}

func (t Track) String() string {
	name := t.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("#%d %s %s %s %q default=%t", t.ID, t.Kind, t.Lang(), t.Codec, name, t.Default)
}
