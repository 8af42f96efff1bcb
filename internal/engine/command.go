// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
	"github.com/jeranaias/adaudit/internal/util"
)

// Command runs every task through an external executable:
//
//	<path> <task-name> --job <manifest.yaml>
//
// Exit status 0 is success. The manifest is written with 0600 permissions
// since it may carry credentials, and removed once the task ends.
type Command struct {
	Path string

	// WorkDir is the working directory of the engine and the directory of
	// the manifests. Empty means the current directory and os.TempDir().
	WorkDir string

	Stdout io.Writer
	Stderr io.Writer
}

// NewCommand creates a command engine writing its output to stdout/stderr.
// A nil writer discards the corresponding stream.
func NewCommand(path, workDir string, stdout, stderr io.Writer) *Command {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &Command{Path: path, WorkDir: workDir, Stdout: stdout, Stderr: stderr}
}

// Run implements Engine.
func (c *Command) Run(ctx context.Context, entry task.Intent, job *Job) bool {
	logger := trace.FromContext(ctx).With("task", entry.String(), "engine", c.Path)

	manifestPath, err := c.writeManifest(entry, job)
	if err != nil {
		logger.Error("job manifest", "error", err)
		fmt.Fprintln(c.Stderr, err)
		return false
	}
	defer os.Remove(manifestPath)

	if err := c.execute(ctx, entry.String(), manifestPath); err != nil {
		logger.Error("engine task failed", "error", err)
		fmt.Fprintf(c.Stderr, "task %s failed: %v\n", entry, err)
		return false
	}
	logger.Info("engine task succeeded")
	return true
}

// Complete implements Engine.
func (c *Command) Complete(ctx context.Context, job *Job) {
	trace.FromContext(ctx).Info("engine tasks completed", "engine", c.Path)
	fmt.Fprintln(c.Stdout, "Task completed")
}

func (c *Command) writeManifest(entry task.Intent, job *Job) (string, error) {
	data, err := NewManifest(entry, job).Marshal()
	if err != nil {
		return "", err
	}
	dir := c.WorkDir
	if dir == "" {
		dir = os.TempDir()
	}
	runID := job.RunID
	if runID == "" {
		runID = "run"
	}
	name := filepath.Join(dir, fmt.Sprintf("adaudit-job-%s-%s.yaml", runID, entry))
	if err := util.WriteFileAtomic(name, data, 0600, 0700); err != nil {
		return "", fmt.Errorf("failed to write job manifest: %w", err)
	}
	return name, nil
}

// execute runs the engine and streams its output line by line.
func (c *Command) execute(ctx context.Context, taskName, manifestPath string) error {
	cmd := exec.CommandContext(ctx, c.Path, taskName, "--job", manifestPath)
	cmd.Dir = c.WorkDir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start engine: %w", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		streamOutput(stdout, c.Stdout)
	}()
	go func() {
		defer wg.Done()
		streamOutput(stderr, c.Stderr)
	}()
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("engine exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("engine failed: %w", err)
	}
	return nil
}

// streamOutput copies a pipe to w line by line.
func streamOutput(pipe io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(pipe)
	for scanner.Scan() {
		fmt.Fprintln(w, scanner.Text())
	}
}
