// Package history persists per-file outcomes of batch runs in SQLite.
//
// Every processed container produces one row keyed by the run id, so a later
// `mkvnorm history` can show what was remuxed, skipped, or failed and why.
// Schema changes ship as numbered files under migrations/ and are applied in
// order on Open.
package history
