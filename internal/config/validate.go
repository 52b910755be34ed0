package config

import (
	"errors"
	"fmt"
	"strings"

	"mkvnorm/internal/profile"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRemux(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRemux() error {
	if c.Remux.TimeoutSeconds < 0 {
		return errors.New("remux.timeout_seconds must be positive")
	}
	if strings.ContainsAny(c.Remux.OutputSuffix, `/\`) {
		return fmt.Errorf("remux.output_suffix must not contain path separators, got %q", c.Remux.OutputSuffix)
	}
	switch c.Probe.Backend {
	case "mkvmerge", "native":
	default:
		return fmt.Errorf("probe.backend: unsupported value %q (expected mkvmerge or native)", c.Probe.Backend)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.Workers < 1 || c.Batch.Workers > maxBatchWorkers {
		return fmt.Errorf("batch.workers must be between 1 and %d, got %d", maxBatchWorkers, c.Batch.Workers)
	}
	if _, err := profile.Parse(c.Batch.Profile); err != nil {
		return fmt.Errorf("batch.profile: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 || c.Logging.MaxAgeDays < 0 {
		return errors.New("logging rotation limits must not be negative")
	}
	return nil
}
