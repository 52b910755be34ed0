// Package remux writes a mutated container back to disk with mkvmerge.
//
// The executor translates a tracks.Container into one mkvmerge invocation:
// surviving source tracks are selected by their source id and relabeled,
// sidecar files are appended with their resolved metadata, and the container
// title is set. Output goes to a hidden temporary file beside the source and
// is renamed to "<stem> (1).mkv" only after mkvmerge succeeds, so the source
// file is never modified and a failed run leaves nothing behind.
package remux
