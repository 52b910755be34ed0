package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mkvnorm/internal/history"
	"mkvnorm/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, env.library)

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting an existing file")
	}
}

func TestCheckReportsMKVMergeVersion(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "mkvmerge v82.0")
	requireContains(t, out, "== Preflight ==")
	requireContains(t, out, "[OK]")
}

func TestCheckFailsWithoutMKVMerge(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Remux.MKVMergeBinary = filepath.Join(t.TempDir(), "missing-mkvmerge")
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"check"}, env.configPath)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	requireContains(t, out, "[ERROR]")
}

func TestPlanShowsChangesWithoutWriting(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.library, "Show_ Part Two (2019)")
	source := testsupport.MediaDir(t, dir, "Show - 07.mkv", "spa.srt", "forced.srt")

	out, _, err := runCLI(t, []string{"plan", "--tracks", "--commands"}, env.configPath)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	requireContains(t, out, "planned")
	requireContains(t, out, "Show: Part Two - 07")
	requireContains(t, out, "Forced")
	requireContains(t, out, "--default-track-flag")

	if _, err := os.Stat(strings.TrimSuffix(source, ".mkv") + " (1).mkv"); !os.IsNotExist(err) {
		t.Fatalf("plan must not write output, stat err=%v", err)
	}
}

func TestPlanJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.MediaDir(t, filepath.Join(env.library, "Show (2020)"), "Show - 01.mkv", "spa.srt")

	out, _, err := runCLI(t, []string{"plan", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("plan --json: %v", err)
	}
	var payload planReportJSON
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode plan json: %v\n%s", err, out)
	}
	if payload.Summary.Planned != 1 || len(payload.Items) != 1 {
		t.Fatalf("unexpected plan %+v", payload)
	}
	item := payload.Items[0]
	if item.Title != "Show - 01" || len(item.Tracks) == 0 {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestRunRemuxesAndRecordsHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.library, "Show (2020)")
	source := testsupport.MediaDir(t, dir, "Show - 01.mkv", "spa.srt", "forced.srt")
	testsupport.MediaDir(t, filepath.Join(env.library, "Bare (2020)"), "Bare - 01.mkv")

	out, _, err := runCLI(t, []string{"run", "--profile", "series"}, env.configPath)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	requireContains(t, out, "1 remuxed")
	requireContains(t, out, "1 skipped")

	if _, err := os.Stat(strings.TrimSuffix(source, ".mkv") + " (1).mkv"); err != nil {
		t.Fatalf("expected remuxed output: %v", err)
	}

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	var runs []history.Run
	if err := json.Unmarshal([]byte(out), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 1 || runs[0].Profile != "series" {
		t.Fatalf("unexpected runs %+v", runs)
	}

	out, _, err = runCLI(t, []string{"history", runs[0].ID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history run: %v", err)
	}
	requireContains(t, out, "remuxed")
	requireContains(t, out, "no subtitles found")
}

func TestRunFailsWhenAContainerFails(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.MediaDir(t, filepath.Join(env.library, "Show (2020)"), "broken.mkv", "spa.srt")

	out, _, err := runCLI(t, []string{"run"}, env.configPath)
	if err == nil {
		t.Fatalf("expected run to report failure\n%s", out)
	}
	requireContains(t, err.Error(), "1 file(s) failed")
	requireContains(t, out, "failed")
}

func TestRunRejectsUnknownProfile(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"run", "--profile", "anime"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestHistoryDisabled(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.History.Enabled = false
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Fatalf("expected disabled error, got %v", err)
	}
}
