// Package report runs the full Entra validation workflow: every protocol
// step executes in a fixed order, records a PASS/SKIP/FAIL outcome, and the
// run is summarized at the end. A single failing step never aborts the run.
package report

import (
	"errors"
	"fmt"
)

// Status is the outcome of one validation step.
type Status string

const (
	// StatusPass means the step completed successfully.
	StatusPass Status = "PASS"
	// StatusSkip means a precondition was not met; this is not an error.
	StatusSkip Status = "SKIP"
	// StatusFail means the step errored.
	StatusFail Status = "FAIL"
)

// Entry is one recorded step outcome. Entries are append-only and immutable
// once recorded.
type Entry struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail"`
}

// Skip is returned by a step whose precondition is unmet. It is recorded as
// SKIP rather than FAIL and does not affect the exit status.
type Skip struct {
	Reason string
}

func (s *Skip) Error() string {
	return s.Reason
}

func skipf(format string, args ...any) error {
	return &Skip{Reason: fmt.Sprintf(format, args...)}
}

// IsSkip reports whether err signals an intentional skip.
func IsSkip(err error) bool {
	var s *Skip
	return errors.As(err, &s)
}

// Failed reports whether any entry ended FAIL. Skips do not count.
func Failed(entries []Entry) bool {
	for _, e := range entries {
		if e.Status == StatusFail {
			return true
		}
	}
	return false
}
