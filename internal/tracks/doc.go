// Package tracks models the in-memory track inventory of a Matroska container.
//
// Container is an ordered arena of Track values. Positional ids are
// reassigned after every removal or addition the way a container binding
// would, while SourceID keeps the id mkvmerge reported for the source file so
// the final mux command can still address the original streams.
//
// SidecarFile and MediaJob describe companion files discovered beside a
// container and the unit of work the pipeline processes.
package tracks
