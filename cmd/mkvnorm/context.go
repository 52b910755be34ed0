package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mkvnorm/internal/batch"
	"mkvnorm/internal/config"
	"mkvnorm/internal/history"
	"mkvnorm/internal/logging"
	"mkvnorm/internal/profile"
)

type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		if c.verboseFlag != nil && *c.verboseFlag {
			cfg.Logging.Level = "debug"
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the command logger. Console output goes to the command's
// stderr so tables on stdout stay clean.
func (c *commandContext) newLogger(cmd *cobra.Command) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, closer, nil
}

// openHistory opens the run history when enabled. The returned store is nil
// when history is disabled.
func (c *commandContext) openHistory() (*history.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, nil
	}
	store, err := history.Open(cfg.HistoryPath())
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

// resolveRoot returns args[0] or the configured library directory.
func (c *commandContext) resolveRoot(args []string) (string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return "", err
	}
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		if cfg.Paths.LibraryDir == "" {
			return "", errors.New("no directory given and paths.library_dir is not set")
		}
		return cfg.Paths.LibraryDir, nil
	}
	return config.ExpandPath(args[0])
}

// resolveProfile returns the --profile value or the configured default.
func (c *commandContext) resolveProfile(flag string) (profile.Profile, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return profile.Profile{}, err
	}
	value := strings.TrimSpace(flag)
	if value == "" {
		value = cfg.Batch.Profile
	}
	return profile.Parse(value)
}

// recorder converts a possibly nil store into a batch recorder without
// producing a non-nil interface around a nil pointer.
func recorder(store *history.Store) batch.Recorder {
	if store == nil {
		return nil
	}
	return store
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
