// Package policy computes the language, display name and default flag every
// track should carry after normalization.
//
// Decisions come from a rule table keyed by (profile, kind, language). Facts
// that span tracks, such as whether any Spanish audio exists, are computed
// once from the unmodified input before a single rule runs, so results never
// depend on track order or on earlier decisions. After the table pass, a
// second pass clears competing defaults so each kind ends with at most one
// default track.
package policy
