// Package outcome defines the error markers and per-file result records shared
// by every stage of the normalization pipeline.
//
// Stage code wraps failures with one of the exported markers through Wrap so
// the batch runner can classify them with errors.Is. None of the markers is
// fatal to a batch; they decide how a single container is reported.
package outcome
