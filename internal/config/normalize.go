package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mkvnorm/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRemux(); err != nil {
		return err
	}
	c.normalizeBatch()
	c.normalizeSidecars()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.LibraryDir, err = expandPath(strings.TrimSpace(c.Paths.LibraryDir)); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRemux() error {
	if value, ok := os.LookupEnv(mkvmergeBinaryEnv); ok && strings.TrimSpace(value) != "" {
		c.Remux.MKVMergeBinary = strings.TrimSpace(value)
	}
	c.Remux.MKVMergeBinary = strings.TrimSpace(c.Remux.MKVMergeBinary)
	if c.Remux.MKVMergeBinary == "" {
		c.Remux.MKVMergeBinary = defaultMKVMergeBinary
	}
	if strings.ContainsRune(c.Remux.MKVMergeBinary, os.PathSeparator) {
		expanded, err := expandPath(c.Remux.MKVMergeBinary)
		if err != nil {
			return fmt.Errorf("remux.mkvmerge_binary: %w", err)
		}
		c.Remux.MKVMergeBinary = expanded
	}
	if c.Remux.TimeoutSeconds == 0 {
		c.Remux.TimeoutSeconds = defaultRemuxTimeout
	}
	if c.Remux.OutputSuffix == "" {
		c.Remux.OutputSuffix = defaultOutputSuffix
	}
	c.Probe.Backend = strings.ToLower(strings.TrimSpace(c.Probe.Backend))
	if c.Probe.Backend == "" {
		c.Probe.Backend = defaultProbeBackend
	}
	return nil
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers == 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	c.Batch.Profile = strings.ToLower(strings.TrimSpace(c.Batch.Profile))
	if c.Batch.Profile == "" {
		c.Batch.Profile = defaultBatchProfile
	}
	exts := make([]string, 0, len(c.Batch.Extensions))
	seen := make(map[string]struct{}, len(c.Batch.Extensions))
	for _, ext := range c.Batch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Batch.Extensions = exts
}

func (c *Config) normalizeSidecars() {
	langs := language.NormalizeList(c.Sidecars.Languages)
	if len(langs) == 0 {
		langs = append([]string(nil), defaultSidecarLanguages...)
	}
	c.Sidecars.Languages = langs
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = ""
		return nil
	}
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		if !strings.ContainsRune(file, filepath.Separator) {
			file = filepath.Join(c.Paths.LogDir, file)
		}
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	return nil
}
