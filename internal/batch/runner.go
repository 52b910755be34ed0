package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"mkvnorm/internal/history"
	"mkvnorm/internal/logging"
	"mkvnorm/internal/media/mkvinfo"
	"mkvnorm/internal/mutation"
	"mkvnorm/internal/outcome"
	"mkvnorm/internal/profile"
	"mkvnorm/internal/remux"
	"mkvnorm/internal/sidecar"
	"mkvnorm/internal/title"
	"mkvnorm/internal/tracks"
	"mkvnorm/internal/verify"
)

// ErrLocked is returned when another run holds the batch lock.
var ErrLocked = errors.New("another mkvnorm run is already in progress")

// Remuxer writes a mutated container to disk.
type Remuxer interface {
	Remux(ctx context.Context, req remux.Request) (remux.Result, error)
}

// Recorder persists run history. *history.Store satisfies it.
type Recorder interface {
	BeginRun(ctx context.Context, run history.Run) error
	Record(ctx context.Context, runID string, o outcome.Outcome) error
	FinishRun(ctx context.Context, runID string, finishedAt time.Time) error
}

// Dependencies are the pipeline components a Runner drives.
type Dependencies struct {
	FS       afero.Fs
	Prober   mkvinfo.Prober
	Sidecars *sidecar.Discoverer
	Engine   *mutation.Engine
	Remuxer  Remuxer
	// History is optional.
	History Recorder
}

// Options control how a tree is walked and scheduled.
type Options struct {
	Workers    int
	Extensions []string
	// Suffix marks outputs of earlier runs; such files are not reprocessed.
	Suffix string
	// LockPath is the batch lock file. Empty disables locking.
	LockPath string
	DryRun   bool
}

// Runner processes every container under a root directory.
type Runner struct {
	deps   Dependencies
	opts   Options
	logger *slog.Logger
}

// NewRunner validates deps and returns a runner.
func NewRunner(deps Dependencies, opts Options, logger *slog.Logger) (*Runner, error) {
	if deps.Prober == nil || deps.Engine == nil || deps.Remuxer == nil {
		return nil, errors.New("batch runner requires prober, mutation engine, and remuxer")
	}
	if deps.FS == nil {
		deps.FS = afero.NewOsFs()
	}
	if deps.Sidecars == nil {
		deps.Sidecars = sidecar.NewDiscoverer(deps.FS, nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Suffix == "" {
		opts.Suffix = remux.DefaultSuffix
	}
	return &Runner{
		deps:   deps,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "batch"),
	}, nil
}

// Run normalizes every container under root with profile p.
//
// Per-file problems are reported in the returned Report and never stop the
// run. An error is returned when the lock is held, the tree cannot be listed,
// or ctx is cancelled; in the last case the report holds what finished.
func (r *Runner) Run(ctx context.Context, root string, p profile.Profile) (Report, error) {
	unlock, err := r.acquireLock()
	if err != nil {
		return Report{}, err
	}
	defer unlock()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithRunIDLogger(r.logger, runID)

	report := Report{
		RunID:     runID,
		Root:      root,
		Profile:   p,
		DryRun:    r.opts.DryRun,
		StartedAt: time.Now(),
	}

	files, err := Containers(r.deps.FS, root, r.opts.Extensions, r.opts.Suffix, logger)
	if err != nil {
		logging.ErrorWithContext(logger, "media discovery failed", "discovery_failed",
			logging.String("root", root),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the library path exists and is readable"),
		)
		return report, err
	}
	if len(files) == 0 {
		logging.ErrorWithContext(logger, "no supported files found", "discovery_empty",
			logging.String("root", root),
			logging.String(logging.FieldErrorHint, "check the library path and batch.extensions"),
		)
	}

	r.beginHistory(ctx, logger, report)
	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_start"),
		logging.String("root", root),
		logging.String("profile", p.String()),
		logging.Int("files", len(files)),
		logging.Int("workers", r.opts.Workers),
		logging.Bool("dry_run", r.opts.DryRun),
	)

	report.Items = make([]Item, len(files))
	var g errgroup.Group
	g.SetLimit(r.opts.Workers)
	for i, path := range files {
		if ctx.Err() != nil {
			report.Items[i] = Item{Outcome: outcome.FromError(path, fmt.Errorf("not started: %w", ctx.Err()))}
			continue
		}
		g.Go(func() error {
			item := r.Process(ctx, path, p)
			report.Items[i] = item
			r.recordHistory(ctx, logger, runID, item.Outcome)
			return nil
		})
	}
	_ = g.Wait()

	report.FinishedAt = time.Now()
	r.finishHistory(ctx, logger, runID, report.FinishedAt)

	summary := report.Summary()
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("total", summary.Total),
		logging.Int("remuxed", summary.Remuxed),
		logging.Int("planned", summary.Planned),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("duration_ms", report.Duration()),
	)
	return report, ctx.Err()
}

// Process runs the full pipeline for a single container.
func (r *Runner) Process(ctx context.Context, path string, p profile.Profile) Item {
	start := time.Now()
	ctx = logging.WithFile(ctx, path)
	logger := logging.WithContext(ctx, r.logger)

	item, err := r.process(ctx, path, p)
	item.Path = path
	item.Duration = time.Since(start)
	if err != nil {
		item.Status = outcome.Classify(err)
		item.Reason = err.Error()
		item.Err = err
	} else if r.opts.DryRun {
		item.Status = outcome.StatusPlanned
	} else {
		item.Status = outcome.StatusRemuxed
	}
	r.logOutcome(logger, item)
	return item
}

// stage tags ctx with a pipeline step and returns a logger carrying it.
func (r *Runner) stage(ctx context.Context, name string) (context.Context, *slog.Logger) {
	ctx = logging.WithStage(ctx, name)
	return ctx, logging.WithContext(ctx, r.logger)
}

func (r *Runner) process(ctx context.Context, path string, p profile.Profile) (Item, error) {
	var item Item

	stageCtx, logger := r.stage(ctx, "probe")
	probed, err := r.deps.Prober.Probe(stageCtx, path)
	if err != nil {
		if errors.Is(err, outcome.ErrProbe) {
			return item, err
		}
		return item, outcome.Wrap(outcome.ErrProbe, "batch", "probe", "", err)
	}
	sidecars, err := r.deps.Sidecars.Discover(filepath.Dir(path))
	if err != nil {
		return item, err
	}
	logger.Debug("inputs discovered",
		logging.Int("track_count", len(probed.Tracks)),
		logging.Int("sidecar_count", len(sidecars)),
	)

	_, logger = r.stage(ctx, "verify")
	job := tracks.MediaJob{
		ContainerPath: path,
		Container:     probed.Container(),
		Sidecars:      sidecars,
		Profile:       p,
	}
	decision := verify.Evaluate(job)
	if !decision.Accepted {
		logger.Info("container skipped",
			logging.Args(logging.DecisionAttrs("verify", "skip", decision.Reason)...)...,
		)
		return item, decision.Err()
	}
	name, err := title.FromPath(path, p)
	if err != nil {
		return item, err
	}

	_, logger = r.stage(ctx, "mutate")
	mutated := r.deps.Engine.Mutate(job, name)
	item.Title = name
	item.Tracks = mutated.Container.Tracks()
	item.Warnings = mutated.Warnings
	logger.Debug("tracks planned",
		logging.String("title", name),
		logging.Int("track_count", len(item.Tracks)),
		logging.Int("warnings", len(item.Warnings)),
	)

	stageCtx, _ = r.stage(ctx, "remux")
	result, err := r.deps.Remuxer.Remux(stageCtx, remux.NewRequest(path, mutated))
	item.Args = result.Args
	item.Output = result.Output
	if err != nil {
		return item, err
	}
	return item, nil
}

func (r *Runner) logOutcome(logger *slog.Logger, item Item) {
	attrs := []logging.Attr{
		logging.String("status", string(item.Status)),
		logging.Duration("duration_ms", item.Duration),
	}
	if item.Output != "" {
		attrs = append(attrs, logging.String("output", item.Output))
	}
	switch item.Status {
	case outcome.StatusFailed:
		logging.ErrorWithContext(logger, "container failed", "file_failed",
			append(attrs, logging.Error(item.Err))...,
		)
	case outcome.StatusSkipped:
		logger.Info("container not normalized",
			logging.Args(append(attrs,
				logging.String(logging.FieldEventType, "file_skipped"),
				logging.String("reason", item.Reason),
			)...)...,
		)
	default:
		logger.Info("container normalized",
			logging.Args(append(attrs,
				logging.String(logging.FieldEventType, "file_complete"),
				logging.String("title", item.Title),
				logging.Int("warnings", len(item.Warnings)),
			)...)...,
		)
	}
}

func (r *Runner) acquireLock() (func(), error) {
	if r.opts.LockPath == "" {
		return func() {}, nil
	}
	lock := flock.New(r.opts.LockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLocked
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release batch lock",
				logging.String("lock", r.opts.LockPath),
				logging.Error(err),
			)
		}
	}, nil
}

func (r *Runner) beginHistory(ctx context.Context, logger *slog.Logger, report Report) {
	if r.deps.History == nil {
		return
	}
	err := r.deps.History.BeginRun(ctx, history.Run{
		ID:        report.RunID,
		Root:      report.Root,
		Profile:   report.Profile.String(),
		DryRun:    report.DryRun,
		StartedAt: report.StartedAt,
	})
	if err != nil {
		r.historyWarning(logger, "begin run", err)
	}
}

func (r *Runner) recordHistory(ctx context.Context, logger *slog.Logger, runID string, o outcome.Outcome) {
	if r.deps.History == nil {
		return
	}
	if err := r.deps.History.Record(context.WithoutCancel(ctx), runID, o); err != nil {
		r.historyWarning(logger, "record outcome", err)
	}
}

func (r *Runner) finishHistory(ctx context.Context, logger *slog.Logger, runID string, finishedAt time.Time) {
	if r.deps.History == nil {
		return
	}
	if err := r.deps.History.FinishRun(context.WithoutCancel(ctx), runID, finishedAt); err != nil {
		r.historyWarning(logger, "finish run", err)
	}
}

func (r *Runner) historyWarning(logger *slog.Logger, op string, err error) {
	logging.WarnWithContext(logger, "history update failed", "history_write_failed",
		logging.String("operation", op),
		logging.Error(err),
		logging.String(logging.FieldImpact, "run results are missing from history"),
		logging.String(logging.FieldErrorHint, "check history.path permissions"),
	)
}
