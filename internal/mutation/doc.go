// Package mutation turns a verified job into the final track layout.
//
// Build collects every intended change into a Plan (removals, additions,
// relabels, title) using metadata from the policy resolver. Apply replays the
// plan against a container in a fixed order: remove superseded tracks from the
// highest id down, add sidecars, relabel the surviving originals, then set the
// title. Removing a track that is already gone is reported as a warning and
// never aborts the remaining steps.
package mutation
