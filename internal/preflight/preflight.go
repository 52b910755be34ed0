package preflight

import (
	"context"

	"mkvnorm/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional results are shown but never block a run.
	Optional bool
}

// minFreeBytes is the free space required on the volume receiving outputs.
const minFreeBytes = 1 << 30

// RunAll executes the preflight checks for a run rooted at root. An empty root
// checks the configured library directory.
func RunAll(ctx context.Context, cfg *config.Config, root string) []Result {
	if cfg == nil {
		return nil
	}
	if root == "" {
		root = cfg.Paths.LibraryDir
	}

	var results []Result
	results = append(results, CheckMKVMerge(ctx, cfg.MKVMergeBinary()))
	results = append(results, CheckDirectoryAccess("Media directory", root))
	results = append(results, CheckFreeSpace("Output volume", root, minFreeBytes))
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			failed = append(failed, r)
		}
	}
	return failed
}
