// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package trace provides the run trace of adaudit.
//
// Tracing starts silent. The --log switch adds a file sink (trace.log in the
// working directory by default) and --log-console adds the console; sinks can
// be enabled at any point of the run and receive every later record. Every
// record carries the run ID.
package trace

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

// DefaultFile is the trace file created by --log.
const DefaultFile = "trace.log"

// Tracer fans slog records out to the sinks enabled so far.
type Tracer struct {
	mu        sync.Mutex
	file      *os.File
	filePath  string
	console   io.Writer
	consoleOn bool
	sinks     []io.Writer

	runID  string
	logger *slog.Logger
}

// New creates a silent tracer. console is the writer used by EnableConsole
// and filePath the file opened by EnableFile (DefaultFile when empty).
func New(console io.Writer, filePath string) *Tracer {
	if filePath == "" {
		filePath = DefaultFile
	}
	t := &Tracer{
		console:  console,
		filePath: filePath,
		runID:    uuid.NewString(),
	}
	handler := slog.NewTextHandler(fanout{t}, &slog.HandlerOptions{Level: slog.LevelDebug})
	t.logger = slog.New(handler).With("run", t.runID)
	return t
}

// Logger returns the run logger.
func (t *Tracer) Logger() *slog.Logger {
	return t.logger
}

// RunID identifies this process invocation in every record.
func (t *Tracer) RunID() string {
	return t.runID
}

// EnableFile appends records to the trace file. Calling it twice is a no-op.
func (t *Tracer) EnableFile() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file != nil {
		return nil
	}
	f, err := os.OpenFile(t.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("failed to open trace file %s: %w", t.filePath, err)
	}
	t.file = f
	t.sinks = append(t.sinks, f)
	return nil
}

// EnableConsole copies records to the console writer.
func (t *Tracer) EnableConsole() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.consoleOn || t.console == nil {
		return
	}
	t.consoleOn = true
	t.sinks = append(t.sinks, t.console)
}

// Enabled reports whether at least one sink receives records.
func (t *Tracer) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sinks) > 0
}

// FileEnabled reports whether the trace file is open.
func (t *Tracer) FileEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.file != nil
}

// FilePath is the trace file location.
func (t *Tracer) FilePath() string {
	return t.filePath
}

// Close releases the trace file.
func (t *Tracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	t.sinks = nil
	if t.consoleOn {
		t.sinks = append(t.sinks, t.console)
	}
	return err
}

// fanout writes each formatted record to every enabled sink.
type fanout struct {
	t *Tracer
}

func (f fanout) Write(p []byte) (int, error) {
	f.t.mu.Lock()
	defer f.t.mu.Unlock()
	for _, w := range f.t.sinks {
		// A failing sink must not stop the run.
		_, _ = w.Write(p)
	}
	return len(p), nil
}
