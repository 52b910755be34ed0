package remux

import (
	"strconv"
	"strings"

	"mkvnorm/internal/tracks"
)

// BuildArgs constructs the mkvmerge argument list writing to outputPath.
func BuildArgs(req Request, outputPath string) []string {
	c := req.Container
	args := []string{"-o", outputPath, "--title", c.Title}

	if req.StripAttachments {
		args = append(args, "--no-attachments")
	}
	if req.StripChapters {
		args = append(args, "--no-chapters")
	}
	if req.StripGlobalTags {
		args = append(args, "--no-global-tags")
	}

	sources := c.Sources()
	args = append(args, selection(sources, tracks.KindAudio, "--audio-tracks", "-A")...)
	args = append(args, selection(sources, tracks.KindSubtitles, "--subtitle-tracks", "-S")...)
	for _, t := range sources {
		args = append(args, trackFlags(strconv.Itoa(t.SourceID), t)...)
	}
	args = append(args, req.SourcePath)

	for _, t := range c.Sidecars() {
		args = append(args, trackFlags("0", t)...)
		if t.Forced {
			args = append(args, "--forced-display-flag", "0:1")
		}
		args = append(args, t.SourcePath)
	}
	return args
}

func selection(sources []tracks.Track, kind tracks.Kind, keepFlag, dropFlag string) []string {
	var ids []string
	for _, t := range sources {
		if t.Kind == kind {
			ids = append(ids, strconv.Itoa(t.SourceID))
		}
	}
	if len(ids) == 0 {
		return []string{dropFlag}
	}
	return []string{keepFlag, strings.Join(ids, ",")}
}

func trackFlags(id string, t tracks.Track) []string {
	return []string{
		"--language", id + ":" + t.Lang(),
		"--track-name", id + ":" + t.Name,
		"--default-track-flag", id + ":" + flag(t.Default),
	}
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
