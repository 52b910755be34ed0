// Package mkvinfo reads the track inventory of a Matroska container.
//
// Two backends are provided:
//   - Identify: runs `mkvmerge -J` and decodes its JSON report
//   - ReadNative: walks the EBML header with go-mkvparse, no subprocess
//
// Both produce a Result whose Container method yields the in-memory
// tracks.Container consumed by the rest of the pipeline. Codec names from the
// native backend are mapped onto the strings mkvmerge prints so profile codec
// checks behave the same regardless of backend.
package mkvinfo
