// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// app.go - One adaudit run: license checks, resolution, dispatch.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jeranaias/adaudit/internal/config"
	"github.com/jeranaias/adaudit/internal/console"
	"github.com/jeranaias/adaudit/internal/dispatch"
	"github.com/jeranaias/adaudit/internal/engine"
	"github.com/jeranaias/adaudit/internal/task"
	"github.com/jeranaias/adaudit/internal/trace"
)

// App wires the collaborators of a run. Zero fields get working defaults
// except Engine and Console, which are required.
type App struct {
	Defaults *config.Config
	License  engine.License

	Tracer  *trace.Tracer
	Catalog *engine.Catalog
	Engine  engine.Engine
	Console console.Console
	Out     io.Writer

	DetectDomain func() string
	FileExists   func(path string) bool
	DirExists    func(path string) bool
	Now          func() time.Time

	Version string

	// WaitForEnter blocks until the operator acknowledges the end of an
	// interactive run. Nil skips the wait.
	WaitForEnter func()
}

// LicenseFromConfig builds the license terms of the configuration file.
func LicenseFromConfig(cfg *config.Config) (engine.License, error) {
	end, err := cfg.License.EndTime()
	if err != nil {
		return engine.License{}, err
	}
	return engine.License{
		Serial:           cfg.License.Serial,
		EndTime:          end,
		DomainLimitation: cfg.License.DomainLimitation,
		CustomerNotice:   cfg.License.CustomerNotice,
	}, nil
}

// Banner is the header shown above every interactive screen.
func Banner(version string, license engine.License) string {
	var b strings.Builder
	b.WriteString(console.RenderConditional(console.TitleStyle, "adaudit (Version "+version+")"))
	b.WriteString("\nActive Directory security audit")
	if !license.EndTime.IsZero() {
		b.WriteString("\nEnd of support: " + license.EndTime.Format("2006-01-02"))
	}
	return b.String()
}

// Run executes one invocation and reports whether every selected task
// succeeded.
func (a *App) Run(ctx context.Context, args []string) bool {
	a.setDefaults()
	log := a.Tracer.Logger()
	ctx = trace.WithLogger(ctx, log)

	cfg := task.NewConfig()
	shared := task.NewShared()
	if a.Defaults != nil {
		if err := a.Defaults.Apply(cfg, shared); err != nil {
			a.red(fmt.Sprintf("invalid configuration: %v", err))
			return false
		}
	}

	a.prescan(args, shared)
	log.Debug("starting the license checking")
	if a.License.Expired(a.Now()) {
		a.red("The program is unsupported since: " + a.License.EndTime.Format("2006-01-02 15:04:05Z07:00") + ")")
		if len(args) == 0 {
			a.waitForEnter()
		}
		return false
	}
	log.Debug("license checked")

	defer func() {
		if cfg.InteractiveMode {
			a.waitForEnter()
		}
	}()

	env := &Env{
		Shared:       shared,
		Tracer:       a.Tracer,
		Catalog:      a.Catalog,
		Console:      a.Console,
		Out:          a.Out,
		DetectDomain: a.DetectDomain,
		FileExists:   a.FileExists,
		DirExists:    a.DirExists,
	}
	if err := Resolve(ctx, args, cfg, env); err != nil {
		a.reportError(err)
		return false
	}

	log.Info("[New run]", "time", a.Now().Format(time.RFC3339), "version", a.Version)
	log.Info("configuration resolved", "intents", cfg.Intents.String(), "server", cfg.Server,
		"user", cfg.Credential.String(), "protocol", shared.Protocol.String())

	if !a.License.AllowsServer(cfg.Server) {
		a.red("Limitations applies to the --server argument (" + a.License.DomainLimitation + ")")
		return false
	}
	if a.License.CustomerNotice != "" {
		fmt.Fprintln(a.Out, a.License.CustomerNotice)
	}

	job := &engine.Job{Config: cfg, Shared: shared, RunID: a.Tracer.RunID()}
	return dispatch.Run(ctx, a.Engine, job)
}

func (a *App) setDefaults() {
	if a.Out == nil {
		a.Out = io.Discard
	}
	if a.Tracer == nil {
		a.Tracer = trace.New(a.Out, "")
	}
	if a.Catalog == nil {
		a.Catalog = engine.DefaultCatalog()
	}
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Version == "" {
		a.Version = "dev"
	}
}

// prescan applies the license switches before anything else runs.
func (a *App) prescan(args []string, shared *task.Shared) {
	for i := 0; i < len(args); i++ {
		switch {
		case strings.EqualFold(args[i], "--debug-license"):
			a.Tracer.EnableConsole()
			shared.LogConsole = true
		case strings.EqualFold(args[i], "--license") && i+1 < len(args):
			i++
			a.License.Serial = args[i]
		}
	}
}

// reportError prints a resolution failure in red, followed by the help
// text when the failure calls for it.
func (a *App) reportError(err error) {
	log := a.Tracer.Logger()
	var re *ResolveError
	switch {
	case errors.Is(err, ErrHelpRequested):
		RenderHelp(a.Out, a.Catalog)
	case errors.Is(err, ErrAborted):
		log.Info("interactive mode left", "error", err)
	case errors.As(err, &re):
		for _, line := range strings.Split(re.Error(), "\n") {
			a.red(line)
		}
		if re.ShowHelp() {
			RenderHelp(a.Out, a.Catalog)
		}
	default:
		a.red(err.Error())
	}
}

// red writes an error line and traces it.
func (a *App) red(text string) {
	fmt.Fprintln(a.Out, console.Red(text))
	a.Tracer.Logger().Warn("[Red]" + text)
}

func (a *App) waitForEnter() {
	sep := strings.Repeat("=", 77)
	fmt.Fprintln(a.Out, sep)
	fmt.Fprintln(a.Out, "Program launched in interactive mode - press Enter to terminate the program")
	fmt.Fprintln(a.Out, sep)
	if a.WaitForEnter != nil {
		a.WaitForEnter()
	}
}
