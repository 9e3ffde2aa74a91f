// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lars-sh/jarrunner/internal/classpath"
	"github.com/lars-sh/jarrunner/internal/entrypoint"
	"github.com/lars-sh/jarrunner/internal/launch"
	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/pkg/artifact"
	"github.com/lars-sh/jarrunner/pkg/types"
)

type (
	// DependencyResolver resolves the runtime dependency tree of an artifact.
	DependencyResolver interface {
		Resolve(ctx context.Context, root artifact.Coordinate, repositories []repository.Descriptor) (*resolve.Result, error)
	}

	// Launcher starts a built command.
	Launcher interface {
		Launch(cmd *launch.Command, mode launch.Mode) (launch.Outcome, error)
	}

	// Interpreter provides the default Java executable.
	Interpreter interface {
		JavaExecutable() string
	}

	// Dependencies are the collaborators of a Runner.
	Dependencies struct {
		Resolver            DependencyResolver
		Manifests           entrypoint.ManifestReader
		Launcher            Launcher
		Interpreter         Interpreter
		AmbientRepositories []repository.Descriptor
		// Logger defaults to slog.Default().
		Logger *slog.Logger
	}

	// Plan is everything needed to start the application.
	Plan struct {
		Repositories []repository.Descriptor
		Result       *resolve.Result
		Classpath    string
		MainClass    string
		Command      *launch.Command
	}

	// ExitError reports a non-zero exit code of a waited-for application.
	ExitError struct {
		Code types.ExitCode
	}

	// Runner runs applications.
	Runner struct {
		deps   Dependencies
		logger *slog.Logger
	}
)

// Error implements the error interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("application stopped with exit value %d", e.Code)
}

// New creates a Runner.
func New(deps Dependencies) *Runner {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{deps: deps, logger: logger}
}

// Repositories returns the repository list used for p: the user repositories
// followed by the ambient ones unless p ignores them, first id winning.
func (r *Runner) Repositories(p *Parameters) []repository.Descriptor {
	return repository.Merge(p.Repositories(), r.deps.AmbientRepositories, p.IgnoreSystemRepositories())
}

// Resolve resolves the dependency tree of the artifact of p.
func (r *Runner) Resolve(ctx context.Context, p *Parameters) (*resolve.Result, []repository.Descriptor, error) {
	repos := r.Repositories(p)
	for _, repo := range repos {
		r.logger.Debug("using repository", "repository", repo.String())
	}

	r.logger.Debug("resolving dependencies", "artifact", p.Artifact().String())
	result, err := r.deps.Resolver.Resolve(ctx, p.Artifact(), repos)
	if err != nil {
		return nil, nil, err
	}
	return result, repos, nil
}

// Prepare resolves the artifact of p and builds the command without starting it.
func (r *Runner) Prepare(ctx context.Context, p *Parameters) (*Plan, error) {
	result, repos, err := r.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	cp, err := classpath.Assemble(result.Root, p.ClasspathFormat())
	if err != nil {
		return nil, err
	}
	r.logger.Debug("assembled classpath", "entries", len(result.Root.Nodes()))

	mainClass, err := entrypoint.Resolve(p.MainClass(), result.RootFile(), r.deps.Manifests)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("using main class", "main_class", mainClass)

	executable := p.JavaPath()
	if executable == "" {
		executable = r.deps.Interpreter.JavaExecutable()
	}

	cmd, err := launch.NewCommand(launch.Spec{
		Executable: executable,
		VMOptions:  p.VMOptions(),
		Classpath:  cp,
		MainClass:  mainClass,
		Arguments:  p.Arguments(),
		Dir:        p.WorkingDirectory(),
	})
	if err != nil {
		return nil, err
	}

	return &Plan{
		Repositories: repos,
		Result:       result,
		Classpath:    cp,
		MainClass:    mainClass,
		Command:      cmd,
	}, nil
}

// Run prepares and starts the application. When waiting, a non-zero exit code
// of the application is returned as *ExitError.
func (r *Runner) Run(ctx context.Context, p *Parameters) (launch.Outcome, error) {
	plan, err := r.Prepare(ctx, p)
	if err != nil {
		return launch.Outcome{}, err
	}

	mode := launch.ModeWait
	if p.Detach() {
		mode = launch.ModeDetach
	}

	r.logger.Info("starting application", "command", plan.Command.String())
	if dir := plan.Command.Dir(); dir != "" {
		r.logger.Debug("using working directory", "dir", dir)
	}

	outcome, err := r.deps.Launcher.Launch(plan.Command, mode)
	if err != nil {
		return outcome, err
	}
	if outcome.State == launch.StateExited && !outcome.ExitCode.IsSuccess() {
		return outcome, &ExitError{Code: outcome.ExitCode}
	}
	return outcome, nil
}
