// Package profile names the content rulesets the engine understands.
//
// A Profile is passed explicitly into every stage; nothing in the pipeline
// reads the active profile from package state.
package profile

import (
	"fmt"
	"strings"
)

// Name identifies a content ruleset.
type Name string

const (
	Series Name = "series"
	Movies Name = "movies"
)

// Profile carries the per-ruleset knobs consulted by the gate, the title
// generator and the policy resolver.
type Profile struct {
	Name Name
	// RequiredAudioCodec rejects containers whose audio tracks use any other
	// codec. Empty disables the check.
	RequiredAudioCodec string
	// EpisodeTitles appends the episode number parsed from the filename.
	EpisodeTitles bool
}

var profiles = map[Name]Profile{
	Series: {Name: Series, EpisodeTitles: true},
	Movies: {Name: Movies, RequiredAudioCodec: "AC-3"},
}

// Parse resolves a profile by name (case-insensitive).
func Parse(value string) (Profile, error) {
	name := Name(strings.ToLower(strings.TrimSpace(value)))
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (expected %q or %q)", value, Series, Movies)
	}
	return p, nil
}

// MustParse is Parse for constant inputs.
func MustParse(value string) Profile {
	p, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return p
}

// Names lists the supported profile names.
func Names() []string {
	return []string{string(Series), string(Movies)}
}

func (p Profile) String() string { return string(p.Name) }

// IsSeries reports whether p is the series ruleset.
func (p Profile) IsSeries() bool { return p.Name == Series }

// IsMovies reports whether p is the movies ruleset.
func (p Profile) IsMovies() bool { return p.Name == Movies }
