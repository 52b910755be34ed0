package mkvinfo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"mkvnorm/internal/tracks"
)

// Result is the probed state of one container.
type Result struct {
	Path   string
	Title  string
	Tracks []tracks.Track
	raw    []byte
}

// Container converts the result into an in-memory container.
func (r Result) Container() *tracks.Container {
	c := tracks.NewContainer(r.Path, r.Tracks)
	c.SetTitle(r.Title)
	return c
}

// RawJSON returns the mkvmerge payload when the result came from Identify.
func (r Result) RawJSON() []byte {
	return append([]byte(nil), r.raw...)
}

type identification struct {
	Container struct {
		Recognized bool `json:"recognized"`
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"container"`
	Errors []string `json:"errors"`
	Tracks []struct {
		ID         int    `json:"id"`
		Type       string `json:"type"`
		Codec      string `json:"codec"`
		Properties struct {
			Language     string `json:"language"`
			TrackName    string `json:"track_name"`
			DefaultTrack *bool  `json:"default_track"`
			ForcedTrack  bool   `json:"forced_track"`
		} `json:"properties"`
	} `json:"tracks"`
}

// Identify runs `mkvmerge -J` against path and decodes the response.
func Identify(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "mkvmerge"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("mkvmerge identify: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-J", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("mkvmerge identify: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("mkvmerge identify: %w", err)
	}
	return Decode(path, output)
}

// Decode parses an mkvmerge JSON identification report.
func Decode(path string, payload []byte) (Result, error) {
	var ident identification
	if err := json.Unmarshal(payload, &ident); err != nil {
		return Result{}, fmt.Errorf("mkvmerge parse: %w", err)
	}
	if len(ident.Errors) > 0 {
		return Result{}, fmt.Errorf("mkvmerge identify: %s", strings.Join(ident.Errors, "; "))
	}
	if !ident.Container.Recognized {
		return Result{}, fmt.Errorf("mkvmerge identify: %s is not a recognized container", path)
	}

	result := Result{
		Path:  path,
		Title: ident.Container.Properties.Title,
		raw:   append([]byte(nil), payload...),
	}
	for _, t := range ident.Tracks {
		kind, err := tracks.ParseKind(t.Type)
		if err != nil {
			// Buttons and other exotic track types are carried through untouched
			// by mkvmerge; the pipeline never edits them.
			continue
		}
		def := true
		if t.Properties.DefaultTrack != nil {
			def = *t.Properties.DefaultTrack
		}
		result.Tracks = append(result.Tracks, tracks.Track{
			SourceID: t.ID,
			Kind:     kind,
			Language: normalizeLanguage(t.Properties.Language),
			Codec:    t.Codec,
			Name:     t.Properties.TrackName,
			Default:  def,
			Forced:   t.Properties.ForcedTrack,
		})
	}
	return result, nil
}

func normalizeLanguage(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return tracks.UndeterminedLanguage
	}
	return value
}
