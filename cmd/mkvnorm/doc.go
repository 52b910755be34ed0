// Package main hosts the mkvnorm CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the logger and
// optional run history, and hands work to internal/batch. Commands:
//
//	run      normalize every container under a directory
//	plan     show what run would do without writing anything
//	history  list recorded runs and their per-file outcomes
//	check    verify mkvmerge and directory access
//	config   scaffold or validate the configuration file
//
// Keep this package lean: behavior belongs in the internal packages and is
// only surfaced here.
package main
