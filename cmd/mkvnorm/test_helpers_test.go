package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"mkvnorm/internal/config"
	"mkvnorm/internal/testsupport"
)

// stubMKVMerge answers --version and -J, and writes the output file named by
// -o. Containers named broken.mkv fail identification.
const stubMKVMerge = `#!/bin/sh
case "$1" in
  --version)
    echo "mkvmerge v82.0 ('Stub') 64-bit"
    exit 0
    ;;
  -J)
    case "$2" in
      *broken.mkv)
        echo "not a matroska file" >&2
        exit 2
        ;;
    esac
    cat <<'JSON'
{
  "container": {"recognized": true, "properties": {"title": "old"}},
  "errors": [],
  "tracks": [
    {"id": 0, "type": "video", "codec": "AVC/H.264/MPEG-4p10", "properties": {"language": "und"}},
    {"id": 1, "type": "audio", "codec": "AAC", "properties": {"language": "jpn", "default_track": true}},
    {"id": 2, "type": "subtitles", "codec": "SubRip/SRT", "properties": {"language": "eng", "default_track": false}}
  ]
}
JSON
    exit 0
    ;;
  -o)
    : > "$2"
    exit 0
    ;;
esac
exit 2
`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	library    string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("MKVNORM_MKVMERGE", "")

	binary := filepath.Join(base, "bin", "mkvmerge")
	if err := os.MkdirAll(filepath.Dir(binary), 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	if err := os.WriteFile(binary, []byte(stubMKVMerge), 0o755); err != nil {
		t.Fatalf("write mkvmerge stub: %v", err)
	}
	cfg.Remux.MKVMergeBinary = binary
	cfg.Logging.Level = "error"
	if err := os.MkdirAll(cfg.Paths.LibraryDir, 0o755); err != nil {
		t.Fatalf("mkdir library: %v", err)
	}

	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, library: cfg.Paths.LibraryDir}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
