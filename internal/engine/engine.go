// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"

	"github.com/jeranaias/adaudit/internal/task"
)

// Job is what an engine receives for every entry point: the resolved task
// configuration and the collaborator settings, both by reference.
type Job struct {
	Config *task.Config
	Shared *task.Shared

	// DemoReports asks the cartography entry point to also produce the
	// demonstration reports.
	DemoReports bool

	// RunID correlates engine output with the run trace.
	RunID string
}

// Engine executes the tasks selected by a job. Each entry point is named by
// the intent it serves and reports success as a boolean; the cause of a
// failure belongs to the engine.
type Engine interface {
	Run(ctx context.Context, entry task.Intent, job *Job) bool

	// Complete is called once after every selected task succeeded.
	Complete(ctx context.Context, job *Job)
}
