// Package batch walks a media tree and normalizes every container it finds.
//
// A Runner holds the batch lock for the duration of a run, tags every log
// line with a run id, and drives each container through probe, sidecar
// discovery, the verification gate, title generation, mutation and remux.
// Files are independent: a failure is recorded as that file's outcome and
// the walk continues. Only a missing root, an unreadable tree, or a held
// lock end a run early.
package batch
