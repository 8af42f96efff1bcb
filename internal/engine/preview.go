// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

// Preview reports the planned tasks instead of executing them. It is the
// engine used when no external command is configured.
type Preview struct {
	out io.Writer
}

// NewPreview writes its report to out.
func NewPreview(out io.Writer) *Preview {
	return &Preview{out: out}
}

// Run implements Engine.
func (p *Preview) Run(ctx context.Context, entry task.Intent, job *Job) bool {
	cfg := job.Config
	trace.FromContext(ctx).Info("preview task", "task", entry.String())

	fmt.Fprintf(p.out, "Task %s\n", entry)
	var details []string
	if cfg.Server != "" {
		details = append(details, "server="+cfg.Server)
	}
	if cfg.Port != 0 {
		details = append(details, fmt.Sprintf("port=%d", cfg.Port))
	}
	details = append(details, "protocol="+job.Shared.Protocol.String())
	if cfg.Credential != nil {
		details = append(details, "user="+cfg.Credential.String())
	}
	switch entry {
	case task.IntentScanner:
		details = append(details, "scanner="+cfg.Scanner, "mode="+job.Shared.ScanMode.String())
	case task.IntentCarto:
		details = append(details, fmt.Sprintf("demo-reports=%t", job.DemoReports))
	case task.IntentHealthCheck:
		details = append(details, "level="+cfg.ExportLevel.String())
	case task.IntentGraph:
		details = append(details, "level="+cfg.ExportLevel.String())
		if len(cfg.NodesToInvestigate) > 0 {
			details = append(details, "nodes="+strings.Join(cfg.NodesToInvestigate, ","))
		}
	case task.IntentHealthCheckConsolidation, task.IntentGraphConsolidation,
		task.IntentRegenerateReport, task.IntentReloadReport:
		details = append(details, "path="+cfg.FileOrDirectory)
	}
	fmt.Fprintf(p.out, "  %s\n", strings.Join(details, " "))
	return true
}

// Complete implements Engine.
func (p *Preview) Complete(ctx context.Context, job *Job) {
	trace.FromContext(ctx).Info("preview complete")
	fmt.Fprintln(p.out, "Task completed (preview: no engine command configured)")
}
