package outcome

import (
	"fmt"
	"time"
)

// Status is the terminal state of one container within a batch.
type Status string

const (
	StatusRemuxed Status = "remuxed"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
	StatusPlanned Status = "planned"
)

// Outcome records what happened to a single container.
type Outcome struct {
	Path     string
	Status   Status
	Reason   string
	Output   string
	Title    string
	Duration time.Duration
	Err      error
}

// FromError builds an outcome for path from a stage error.
func FromError(path string, err error) Outcome {
	out := Outcome{Path: path, Status: Classify(err), Err: err}
	if err != nil {
		out.Reason = err.Error()
	}
	return out
}

func (o Outcome) String() string {
	if o.Reason == "" {
		return fmt.Sprintf("%s: %s", o.Status, o.Path)
	}
	return fmt.Sprintf("%s: %s (%s)", o.Status, o.Path, o.Reason)
}

// Summary counts outcomes by status.
type Summary struct {
	Total   int `json:"total"`
	Remuxed int `json:"remuxed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Planned int `json:"planned"`
}

// Summarize tallies a batch of outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		switch o.Status {
		case StatusRemuxed:
			s.Remuxed++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		case StatusPlanned:
			s.Planned++
		}
	}
	return s
}
