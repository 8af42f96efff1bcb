// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/adaudit/internal/task"
)

// =============================================================================
// STEP STATUS
// =============================================================================

// StepStatus is the state of one dispatch step.
type StepStatus string

const (
	// StepQueued: selected and waiting for earlier steps
	StepQueued StepStatus = "Queued"

	// StepRunning: the engine entry point is executing
	StepRunning StepStatus = "Running"

	// StepComplete: the entry point reported success
	StepComplete StepStatus = "Complete"

	// StepFailed: the entry point reported failure
	StepFailed StepStatus = "Failed"

	// StepSkipped: never started because an earlier step failed
	StepSkipped StepStatus = "Skipped"
)

func (s StepStatus) String() string {
	return string(s)
}

// =============================================================================
// STEP
// =============================================================================

// Step is one engine invocation of a dispatch plan.
type Step struct {
	ID    string
	Entry task.Intent

	Status    StepStatus
	StartTime time.Time
	EndTime   time.Time
}

func newStep(entry task.Intent) *Step {
	return &Step{
		ID:     uuid.New().String(),
		Entry:  entry,
		Status: StepQueued,
	}
}

// setStatus moves the step along Queued -> Running -> Complete/Failed, or
// Queued -> Skipped.
func (s *Step) setStatus(status StepStatus, now time.Time) error {
	if !validTransition(s.Status, status) {
		return fmt.Errorf("invalid step transition from %s to %s", s.Status, status)
	}
	switch status {
	case StepRunning:
		s.StartTime = now
	case StepComplete, StepFailed:
		s.EndTime = now
	}
	s.Status = status
	return nil
}

func validTransition(from, to StepStatus) bool {
	switch from {
	case StepQueued:
		return to == StepRunning || to == StepSkipped
	case StepRunning:
		return to == StepComplete || to == StepFailed
	default:
		return false
	}
}

// Duration is how long the entry point ran.
func (s *Step) Duration() time.Duration {
	if s.StartTime.IsZero() || s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// Summary returns a one-line summary of the step.
func (s *Step) Summary() string {
	summary := fmt.Sprintf("[%s] %s - %s", s.ID[:8], s.Entry, s.Status)
	if d := s.Duration(); d > 0 {
		summary += fmt.Sprintf(" (%.1fs)", d.Seconds())
	}
	return summary
}
