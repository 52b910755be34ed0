package tracks

import (
	"fmt"

	"mkvnorm/internal/outcome"
)

// Container is an in-memory view of a container's track list and title.
type Container struct {
	Path   string
	Title  string
	tracks []Track
}

// NewContainer builds a container from probed tracks. Positional ids are
// assigned in input order; SourceID is preserved as given.
func NewContainer(path string, probed []Track) *Container {
	c := &Container{Path: path, tracks: make([]Track, len(probed))}
	copy(c.tracks, probed)
	c.renumber()
	return c
}

// Tracks returns a copy of the current track list.
func (c *Container) Tracks() []Track {
	out := make([]Track, len(c.tracks))
	copy(out, c.tracks)
	return out
}

// Len returns the number of tracks.
func (c *Container) Len() int { return len(c.tracks) }

// ByKind returns copies of the tracks of the requested kind in id order.
func (c *Container) ByKind(kind Kind) []Track {
	var out []Track
	for _, t := range c.tracks {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

// Get returns the track with the positional id.
func (c *Container) Get(id int) (Track, bool) {
	if id < 0 || id >= len(c.tracks) {
		return Track{}, false
	}
	return c.tracks[id], true
}

// RemoveSource deletes the source track with sourceID and renumbers the rest.
// Removal is keyed on the stable source identity, so repeating it never
// removes a second track: a source that is absent, or a sidecar's NoSource,
// returns an error wrapping outcome.ErrStaleTrack.
func (c *Container) RemoveSource(sourceID int) error {
	idx, ok := c.IndexOfSource(sourceID)
	if !ok {
		return fmt.Errorf("%w: source track %d does not exist or has already been removed", outcome.ErrStaleTrack, sourceID)
	}
	c.tracks = append(c.tracks[:idx], c.tracks[idx+1:]...)
	c.renumber()
	return nil
}

// Add appends a track and returns its assigned positional id.
func (c *Container) Add(t Track) int {
	c.tracks = append(c.tracks, t)
	c.renumber()
	return len(c.tracks) - 1
}

// IndexOfSource returns the current positional id of the source track with
// sourceID.
func (c *Container) IndexOfSource(sourceID int) (int, bool) {
	if sourceID == NoSource {
		return 0, false
	}
	for i, t := range c.tracks {
		if t.SourceID == sourceID {
			return i, true
		}
	}
	return 0, false
}

// Update replaces the track stored at t.ID.
func (c *Container) Update(t Track) error {
	if t.ID < 0 || t.ID >= len(c.tracks) {
		return fmt.Errorf("%w: track %d does not exist", outcome.ErrStaleTrack, t.ID)
	}
	c.tracks[t.ID] = t
	return nil
}

// Clone returns an independent copy.
func (c *Container) Clone() *Container {
	return &Container{Path: c.Path, Title: c.Title, tracks: c.Tracks()}
}

// SetTitle sets the container-level title attribute.
func (c *Container) SetTitle(title string) { c.Title = title }

// Sources returns the kept source tracks (excluding pending sidecars).
func (c *Container) Sources() []Track {
	var out []Track
	for _, t := range c.tracks {
		if !t.IsSidecar() {
			out = append(out, t)
		}
	}
	return out
}

// Sidecars returns the pending sidecar tracks.
func (c *Container) Sidecars() []Track {
	var out []Track
	for _, t := range c.tracks {
		if t.IsSidecar() {
			out = append(out, t)
		}
	}
	return out
}

func (c *Container) renumber() {
	for i := range c.tracks {
		c.tracks[i].ID = i
	}
}
