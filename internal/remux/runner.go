package remux

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// ExitError carries a non-zero mkvmerge exit status. mkvmerge exits 1 when the
// output was written with warnings and 2 on failure.
type ExitError struct {
	Code   int
	Output string
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return fmt.Sprintf("exit status %d: %s", e.Code, e.Output)
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && ctx.Err() == nil {
		return &ExitError{Code: exitErr.ExitCode(), Output: strings.TrimSpace(string(output))}
	}
	return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
}
