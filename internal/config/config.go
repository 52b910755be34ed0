package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LibraryDir string `toml:"library_dir"`
	StateDir   string `toml:"state_dir"`
	LogDir     string `toml:"log_dir"`
}

// Remux contains configuration for the mkvmerge invocation.
type Remux struct {
	MKVMergeBinary   string `toml:"mkvmerge_binary"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
	OutputSuffix     string `toml:"output_suffix"`
	Overwrite        bool   `toml:"overwrite"`
	StripAttachments bool   `toml:"strip_attachments"`
	StripChapters    bool   `toml:"strip_chapters"`
	StripGlobalTags  bool   `toml:"strip_global_tags"`
}

// Probe selects how track inventories are read.
type Probe struct {
	// Backend is "mkvmerge" (mkvmerge -J) or "native" (in-process EBML parse).
	Backend string `toml:"backend"`
}

// Batch contains configuration for directory runs.
type Batch struct {
	Workers    int      `toml:"workers"`
	Profile    string   `toml:"profile"`
	Extensions []string `toml:"extensions"`
}

// Sidecars contains configuration for companion file discovery.
type Sidecars struct {
	// Languages lists the ISO 639 codes recognized as "<code>.srt" and
	// "<code>.aac" sidecars.
	Languages []string `toml:"languages"`
}

// History contains configuration for the run history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format     string `toml:"format"`
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Config encapsulates all configuration values for mkvnorm.
//
// Configuration sections by subsystem:
//   - Paths: library root, state (lock and history) and log directories
//   - Remux: mkvmerge binary, timeout, output naming and container cleanup
//   - Probe: track inventory backend
//   - Batch: worker count, default profile, container extensions
//   - Sidecars: recognized sidecar languages
//   - History: SQLite run history
//   - Logging: log format, level, and rotated file output
type Config struct {
	Paths    Paths    `toml:"paths"`
	Remux    Remux    `toml:"remux"`
	Probe    Probe    `toml:"probe"`
	Batch    Batch    `toml:"batch"`
	Sidecars Sidecars `toml:"sidecars"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mkvnorm.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath returns the batch lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "mkvnorm.lock")
}

// HistoryPath returns the run history database location.
func (c *Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// RemuxTimeout returns the per-file mkvmerge timeout.
func (c *Config) RemuxTimeout() time.Duration {
	return time.Duration(c.Remux.TimeoutSeconds) * time.Second
}

// MKVMergeBinary returns the mkvmerge executable name or path.
func (c *Config) MKVMergeBinary() string {
	if c.Remux.MKVMergeBinary == "" {
		return defaultMKVMergeBinary
	}
	return c.Remux.MKVMergeBinary
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
