package mutation

import (
	"log/slog"

	"mkvnorm/internal/logging"
	"mkvnorm/internal/tracks"
)

// Result is the outcome of mutating one job.
type Result struct {
	Plan      Plan
	Container *tracks.Container
	Warnings  []error
}

// Engine builds and applies plans with fixed cleanup options.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine constructs an engine.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	return &Engine{opts: opts, logger: logging.NewComponentLogger(logger, "mutation")}
}

// Mutate plans the job and applies the plan to a copy of its container.
// The job's container is left untouched.
func (e *Engine) Mutate(job tracks.MediaJob, title string) Result {
	plan := Build(job, title, e.opts)
	logger := e.logger.With(logging.String("file", job.ContainerPath))
	logger.Debug("mutation plan built",
		logging.Int("remove", len(plan.Remove)),
		logging.Int("add", len(plan.Add)),
		logging.Int("relabel", len(plan.Relabel)),
		logging.String("title", plan.Title),
	)

	out := job.Container.Clone()
	warnings := Apply(out, plan, logger)
	return Result{Plan: plan, Container: out, Warnings: warnings}
}
