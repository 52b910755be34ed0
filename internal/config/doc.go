// Package config loads, normalizes, and validates mkvnorm configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MKVNORM_MKVMERGE. The Config type centralizes every knob the CLI needs:
// library and state directories, the mkvmerge invocation, batch concurrency,
// sidecar languages, run history, and log output.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
