package remux

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mkvnorm/internal/logging"
	"mkvnorm/internal/mutation"
	"mkvnorm/internal/outcome"
	"mkvnorm/internal/tracks"
)

// DefaultSuffix is appended to the source stem to name the output file.
const DefaultSuffix = " (1)"

// DefaultTimeout bounds a single mkvmerge invocation.
const DefaultTimeout = 30 * time.Minute

// Options configures an Executor.
type Options struct {
	Binary    string
	Timeout   time.Duration
	Suffix    string
	Overwrite bool
	DryRun    bool
}

// Request is one remux job: the source file plus its final track layout.
type Request struct {
	SourcePath       string
	Container        *tracks.Container
	StripAttachments bool
	StripChapters    bool
	StripGlobalTags  bool
}

// NewRequest builds a request from a mutation result.
func NewRequest(source string, res mutation.Result) Request {
	return Request{
		SourcePath:       source,
		Container:        res.Container,
		StripAttachments: res.Plan.StripAttachments,
		StripChapters:    res.Plan.StripChapters,
		StripGlobalTags:  res.Plan.StripGlobalTags,
	}
}

// Result reports what the executor did.
type Result struct {
	Output   string
	Args     []string
	DryRun   bool
	Warnings string
	Duration time.Duration
}

// CommandLine renders the invocation for display.
func (r Result) CommandLine(binary string) string {
	parts := make([]string, 0, len(r.Args)+1)
	parts = append(parts, binary)
	for _, arg := range r.Args {
		if strings.ContainsAny(arg, " \t'\"()") {
			arg = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Executor runs mkvmerge.
type Executor struct {
	opts   Options
	logger *slog.Logger
	run    commandRunner
}

// NewExecutor constructs an executor, filling unset options with defaults.
func NewExecutor(opts Options, logger *slog.Logger) *Executor {
	if strings.TrimSpace(opts.Binary) == "" {
		opts.Binary = "mkvmerge"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Suffix == "" {
		opts.Suffix = DefaultSuffix
	}
	return &Executor{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "remux"),
		run:    defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (e *Executor) WithCommandRunner(r commandRunner) {
	if e != nil && r != nil {
		e.run = r
	}
}

// Binary returns the mkvmerge executable in use.
func (e *Executor) Binary() string { return e.opts.Binary }

// OutputPath returns the destination for source: "<stem><suffix><ext>" in the
// same directory.
func OutputPath(source, suffix string) string {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	ext := filepath.Ext(source)
	return strings.TrimSuffix(source, ext) + suffix + ext
}

// Remux writes req.Container to the output path for req.SourcePath.
func (e *Executor) Remux(ctx context.Context, req Request) (Result, error) {
	if e == nil {
		return Result{}, errors.New("remux executor not initialized")
	}
	if strings.TrimSpace(req.SourcePath) == "" || req.Container == nil {
		return Result{}, outcome.Wrap(outcome.ErrExternalTool, "remux", "validate", "source path and container are required", nil)
	}

	output := OutputPath(req.SourcePath, e.opts.Suffix)
	tmpPath := filepath.Join(filepath.Dir(output), ".remux-"+filepath.Base(output)+".tmp")
	args := BuildArgs(req, tmpPath)
	result := Result{Output: output, Args: args, DryRun: e.opts.DryRun}

	logger := e.logger.With(logging.String("file", req.SourcePath))
	if e.opts.DryRun {
		logger.Info("dry run: remux skipped",
			logging.String(logging.FieldEventType, "remux_dry_run"),
			logging.String("output", output),
		)
		return result, nil
	}

	if _, err := os.Stat(req.SourcePath); err != nil {
		return result, outcome.Wrap(outcome.ErrExternalTool, "remux", "stat source", "", err)
	}
	for _, sc := range req.Container.Sidecars() {
		if _, err := os.Stat(sc.SourcePath); err != nil {
			return result, outcome.Wrap(outcome.ErrExternalTool, "remux", "stat sidecar", sc.SourcePath, err)
		}
	}
	if !e.opts.Overwrite {
		if _, err := os.Stat(output); err == nil {
			return result, outcome.Wrap(outcome.ErrSkipped, "remux", "check output", "output already exists: "+filepath.Base(output), nil)
		}
	}

	logger.Debug("executing mkvmerge",
		logging.String("output", output),
		logging.Int("track_count", req.Container.Len()),
		logging.Int("sidecar_count", len(req.Container.Sidecars())),
	)

	runCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	start := time.Now()
	err := e.run(runCtx, e.opts.Binary, args...)
	result.Duration = time.Since(start)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) && exitErr.Code == 1 {
			result.Warnings = exitErr.Output
			logging.WarnWithContext(logger, "mkvmerge reported warnings", "remux_warnings",
				logging.String("output", output),
				logging.String("mkvmerge_output", exitErr.Output),
				logging.String(logging.FieldImpact, "output written; review warnings"),
			)
		} else {
			_ = os.Remove(tmpPath)
			if ctxErr := runCtx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) && ctx.Err() == nil {
				err = fmt.Errorf("timed out after %s: %w", e.opts.Timeout, err)
			}
			return result, outcome.Wrap(outcome.ErrExternalTool, "remux", "mkvmerge", "", err)
		}
	}

	if _, err := os.Stat(tmpPath); err != nil {
		return result, outcome.Wrap(outcome.ErrExternalTool, "remux", "verify output", "mkvmerge did not produce output file", err)
	}
	if err := os.Rename(tmpPath, output); err != nil {
		_ = os.Remove(tmpPath)
		return result, outcome.Wrap(outcome.ErrExternalTool, "remux", "rename output", "", err)
	}

	logger.Info("container remuxed",
		logging.String(logging.FieldEventType, "remux_complete"),
		logging.String("output", output),
		logging.String("title", req.Container.Title),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}
