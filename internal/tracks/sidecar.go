package tracks

import "mkvnorm/internal/profile"

// Role distinguishes sidecars that share a language.
type Role string

const (
	RolePrimary Role = "primary"
	RoleForced  Role = "forced"
)

// SidecarFile is a companion subtitle or audio file found beside a container.
type SidecarFile struct {
	Path      string
	MediaKind Kind
	Language  string
	Role      Role
	Name      string
	Default   bool
}

// IsForced reports whether the sidecar carries forced subtitles.
func (s SidecarFile) IsForced() bool { return s.Role == RoleForced }

// Track converts the sidecar into a pending track.
func (s SidecarFile) Track() Track {
	return Track{
		SourceID:   NoSource,
		Kind:       s.MediaKind,
		Language:   s.Language,
		Name:       s.Name,
		Default:    s.Default,
		Forced:     s.IsForced(),
		SourcePath: s.Path,
	}
}

// MediaJob is one unit of work: a container plus its sidecars and profile.
type MediaJob struct {
	ContainerPath string
	Container     *Container
	Sidecars      []SidecarFile
	Profile       profile.Profile
}

// SidecarsOf returns the sidecars of the requested kind.
func (j MediaJob) SidecarsOf(kind Kind) []SidecarFile {
	var out []SidecarFile
	for _, s := range j.Sidecars {
		if s.MediaKind == kind {
			out = append(out, s)
		}
	}
	return out
}

// HasSidecar reports whether any sidecar of kind was discovered.
func (j MediaJob) HasSidecar(kind Kind) bool {
	return len(j.SidecarsOf(kind)) > 0
}
