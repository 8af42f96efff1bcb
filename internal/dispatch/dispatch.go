// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

// order is the fixed precedence of engine entry points.
var order = [...]task.Intent{
	task.IntentGenerateKey,
	task.IntentScanner,
	task.IntentCarto,
	task.IntentHealthCheck,
	task.IntentGraph,
	task.IntentHealthCheckConsolidation,
	task.IntentGraphConsolidation,
	task.IntentRegenerateReport,
	task.IntentReloadReport,
	task.IntentDemoReports,
	task.IntentUploadAll,
}

// selected reports whether entry runs for cfg.
func selected(cfg *task.Config, entry task.Intent) bool {
	intents := cfg.Intents
	// A wildcard analysis started from the menu is followed by its consolidation.
	wildcardMenu := cfg.WildcardTarget() && cfg.InteractiveMode

	switch entry {
	case task.IntentHealthCheckConsolidation:
		return intents.Has(entry) || (intents.Has(task.IntentHealthCheck) && wildcardMenu)
	case task.IntentGraphConsolidation:
		return intents.Has(entry) || (intents.Has(task.IntentGraph) && wildcardMenu)
	case task.IntentDemoReports:
		// Cartography produces them itself.
		return intents.Has(entry) && !intents.Has(task.IntentCarto)
	default:
		return intents.Has(entry)
	}
}

// Plan returns the steps selected by cfg in execution order, all queued.
func Plan(cfg *task.Config) []*Step {
	var steps []*Step
	for _, entry := range order {
		if selected(cfg, entry) {
			steps = append(steps, newStep(entry))
		}
	}
	return steps
}

// Dispatcher runs a plan against an engine.
type Dispatcher struct {
	Engine engine.Engine
	Now    func() time.Time

	// Steps is the plan of the last Run.
	Steps []*Step
}

// New returns a dispatcher for eng.
func New(eng engine.Engine) *Dispatcher {
	return &Dispatcher{Engine: eng, Now: time.Now}
}

// Run invokes every selected entry point in order. The first failure skips
// the remaining steps and Complete is not called.
func (d *Dispatcher) Run(ctx context.Context, job *engine.Job) bool {
	log := trace.FromContext(ctx)
	job.DemoReports = job.Config.Intents.Has(task.IntentDemoReports)
	d.Steps = Plan(job.Config)
	defer d.logSummary(log)

	for i, step := range d.Steps {
		_ = step.setStatus(StepRunning, d.Now())
		log.Info("task started", "task", step.Entry.String(), "step", step.ID)

		if !d.Engine.Run(ctx, step.Entry, job) {
			_ = step.setStatus(StepFailed, d.Now())
			log.Error("task failed", "task", step.Entry.String(), "step", step.ID, "duration", step.Duration())
			for _, rest := range d.Steps[i+1:] {
				_ = rest.setStatus(StepSkipped, d.Now())
			}
			return false
		}

		_ = step.setStatus(StepComplete, d.Now())
		log.Info("task completed", "task", step.Entry.String(), "duration", step.Duration())
	}

	d.Engine.Complete(ctx, job)
	return true
}

func (d *Dispatcher) logSummary(log *slog.Logger) {
	for _, step := range d.Steps {
		log.Info("task summary", "step", step.Summary())
	}
}

// Run dispatches job on eng with a fresh dispatcher.
func Run(ctx context.Context, eng engine.Engine, job *engine.Job) bool {
	return New(eng).Run(ctx, job)
}
