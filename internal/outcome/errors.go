package outcome

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSkipped       = errors.New("skipped")
	ErrStaleTrack    = errors.New("stale track reference")
	ErrMalformedName = errors.New("malformed name")
	ErrExternalTool  = errors.New("external tool error")
	ErrDiscoveryIO   = errors.New("discovery io error")
	ErrProbe         = errors.New("probe error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Classify maps a per-file error to the status reported for that file.
// Skip conditions and malformed names are reported as skips; everything else
// is a failure.
func Classify(err error) Status {
	switch {
	case err == nil:
		return StatusRemuxed
	case errors.Is(err, ErrSkipped), errors.Is(err, ErrMalformedName):
		return StatusSkipped
	default:
		return StatusFailed
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
