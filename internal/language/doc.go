// Package language provides language code normalization and the track labels
// players show for each language.
//
// All conversions (ISO 639-1, ISO 639-2, English display names, native
// labels) are consolidated here so sidecar discovery, the policy resolver and
// the CLI agree on spelling.
package language
