// Package title derives container titles from library folder naming.
//
// Folders follow "<Title>[_ <Subtitle>] (<year>)". Series episodes carry
// "- <episode>" in the filename.
package title

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"mkvnorm/internal/outcome"
	"mkvnorm/internal/profile"
)

var (
	yearPattern    = regexp.MustCompile(` \(\d{4}\)`)
	episodePattern = regexp.MustCompile(`- (\d{2,4})(?:\D|$)`)
)

// Generate builds the title for a container in folder with the given
// filename. For series profiles the episode number parsed from filename is
// appended; a filename without one returns an error wrapping
// outcome.ErrMalformedName.
func Generate(folder string, p profile.Profile, filename string) (string, error) {
	title := Clean(folder)
	if !p.EpisodeTitles {
		return title, nil
	}
	episode, ok := Episode(filename)
	if !ok {
		return "", outcome.Wrap(outcome.ErrMalformedName, "title", "episode", fmt.Sprintf("no episode number in %q", filename), nil)
	}
	return fmt.Sprintf("%s - %s", title, episode), nil
}

// FromPath generates the title for the container at path using its parent
// folder name and base filename.
func FromPath(path string, p profile.Profile) (string, error) {
	folder := filepath.Base(filepath.Dir(path))
	return Generate(folder, p, filepath.Base(path))
}

// Clean strips the year suffix and expands the "_ " subtitle separator.
func Clean(folder string) string {
	cleaned := norm.NFC.String(folder)
	cleaned = yearPattern.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "_ ", ": ")
	return strings.TrimSpace(cleaned)
}

// Episode returns the first episode number found in filename.
func Episode(filename string) (string, bool) {
	m := episodePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return m[1], true
}
