package batch

import (
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"mkvnorm/internal/config"
	"mkvnorm/internal/media/mkvinfo"
	"mkvnorm/internal/mutation"
	"mkvnorm/internal/remux"
	"mkvnorm/internal/sidecar"
)

// FromConfig assembles a runner backed by the OS filesystem and mkvmerge.
// history may be nil. Dry runs do not take the batch lock.
func FromConfig(cfg *config.Config, history Recorder, dryRun bool, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("batch runner requires config")
	}
	prober, err := mkvinfo.NewProber(cfg.Probe.Backend, cfg.MKVMergeBinary())
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	engine := mutation.NewEngine(mutation.Options{
		StripAttachments: cfg.Remux.StripAttachments,
		StripChapters:    cfg.Remux.StripChapters,
		StripGlobalTags:  cfg.Remux.StripGlobalTags,
	}, logger)
	executor := remux.NewExecutor(remux.Options{
		Binary:    cfg.MKVMergeBinary(),
		Timeout:   cfg.RemuxTimeout(),
		Suffix:    cfg.Remux.OutputSuffix,
		Overwrite: cfg.Remux.Overwrite,
		DryRun:    dryRun,
	}, logger)

	opts := Options{
		Workers:    cfg.Batch.Workers,
		Extensions: cfg.Batch.Extensions,
		Suffix:     cfg.Remux.OutputSuffix,
		DryRun:     dryRun,
	}
	if !dryRun {
		opts.LockPath = cfg.LockPath()
	}

	return NewRunner(Dependencies{
		FS:       fs,
		Prober:   prober,
		Sidecars: sidecar.NewDiscoverer(fs, cfg.Sidecars.Languages),
		Engine:   engine,
		Remuxer:  executor,
		History:  history,
	}, opts, logger)
}
