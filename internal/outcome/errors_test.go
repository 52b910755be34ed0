package outcome_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"mkvnorm/internal/outcome"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("exit status 2")
	err := outcome.Wrap(outcome.ErrExternalTool, "remux", "mkvmerge", "failed", base)
	if !errors.Is(err, outcome.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"remux", "mkvmerge", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := outcome.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, outcome.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want outcome.Status
	}{
		{"nil", nil, outcome.StatusRemuxed},
		{"skip", outcome.Wrap(outcome.ErrSkipped, "verify", "", "no subtitles found", nil), outcome.StatusSkipped},
		{"malformed", fmt.Errorf("title: %w", outcome.ErrMalformedName), outcome.StatusSkipped},
		{"tool", outcome.Wrap(outcome.ErrExternalTool, "remux", "", "", errors.New("x")), outcome.StatusFailed},
		{"discovery", outcome.Wrap(outcome.ErrDiscoveryIO, "sidecar", "", "", nil), outcome.StatusFailed},
		{"plain", errors.New("boom"), outcome.StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcome.Classify(tt.err); got != tt.want {
				t.Fatalf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	summary := outcome.Summarize([]outcome.Outcome{
		{Status: outcome.StatusRemuxed},
		{Status: outcome.StatusSkipped},
		{Status: outcome.StatusSkipped},
		{Status: outcome.StatusFailed},
	})
	if summary.Total != 4 || summary.Remuxed != 1 || summary.Skipped != 2 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
