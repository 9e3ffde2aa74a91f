// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/lars-sh/jarrunner/internal/config"
	"github.com/lars-sh/jarrunner/internal/entrypoint"
	"github.com/lars-sh/jarrunner/internal/issue"
	"github.com/lars-sh/jarrunner/internal/jarfile"
	"github.com/lars-sh/jarrunner/internal/launch"
	"github.com/lars-sh/jarrunner/internal/maven"
	"github.com/lars-sh/jarrunner/internal/platform"
	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/internal/runner"
)

type (
	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ServiceFactory creates the resolution service for one invocation.
	ServiceFactory func(opts maven.Options) (resolve.Service, error)

	// LauncherFactory creates the launcher for one invocation. The returned
	// function releases resources held by the launcher.
	LauncherFactory func(logger *slog.Logger) (runner.Launcher, func())

	// App wires CLI services and shared dependencies.
	App struct {
		Config      ConfigProvider
		NewService  ServiceFactory
		NewLauncher LauncherFactory
		Interpreter runner.Interpreter
		Manifests   entrypoint.ManifestReader
		stdout      io.Writer
		stderr      io.Writer

		globals globalOptions
		// colorScheme is the scheme of the last successfully loaded
		// configuration, empty before.
		colorScheme config.ColorScheme
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config      ConfigProvider
		NewService  ServiceFactory
		NewLauncher LauncherFactory
		Interpreter runner.Interpreter
		Manifests   entrypoint.ManifestReader
		Stdout      io.Writer
		Stderr      io.Writer
	}

	// globalOptions are the persistent flags of the root command.
	globalOptions struct {
		verbose         bool
		configPath      string
		offline         bool
		localRepository string
	}

	// session is the per-invocation state derived from flags and configuration.
	session struct {
		cfg     *config.Config
		logger  *slog.Logger
		runner  *runner.Runner
		release func()
	}

	// fixedInterpreter is a Java executable configured explicitly.
	fixedInterpreter string
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.NewService == nil {
		deps.NewService = newMavenService
	}
	if deps.NewLauncher == nil {
		deps.NewLauncher = newProcessLauncher
	}
	if deps.Interpreter == nil {
		deps.Interpreter = platform.NewJavaLocator()
	}
	if deps.Manifests == nil {
		deps.Manifests = jarfile.NewReader()
	}

	return &App{
		Config:      deps.Config,
		NewService:  deps.NewService,
		NewLauncher: deps.NewLauncher,
		Interpreter: deps.Interpreter,
		Manifests:   deps.Manifests,
		stdout:      deps.Stdout,
		stderr:      deps.Stderr,
	}
}

func newMavenService(opts maven.Options) (resolve.Service, error) {
	return maven.New(opts)
}

func newProcessLauncher(logger *slog.Logger) (runner.Launcher, func()) {
	// Signals are relayed only while a child is waited for.
	l := launch.NewLauncher(launch.WithInterruptSource(launch.NotifyInterrupts), launch.WithLogger(logger))
	return l, func() {}
}

// JavaExecutable implements runner.Interpreter.
func (f fixedInterpreter) JavaExecutable() string { return string(f) }

// loadOptions returns the configuration lookup selected by the global flags.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: a.globals.configPath}
}

// loadConfig loads the configuration named by the global flags.
func (a *App) loadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId)
	}
	a.colorScheme = cfg.UI.ColorScheme
	return cfg, nil
}

// verbose reports whether debug output is enabled by flag or configuration.
func (a *App) verbose(cfg *config.Config) bool {
	return a.globals.verbose || (cfg != nil && cfg.UI.Verbose)
}

// newSession loads the configuration and builds the runner. Global flags take
// precedence over configuration values.
func (a *App) newSession(ctx context.Context) (*session, error) {
	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return nil, err
	}

	logger := newLogger(a.stderr, a.verbose(cfg))

	localRepository := cfg.LocalRepository
	if a.globals.localRepository != "" {
		localRepository = a.globals.localRepository
	}

	svc, err := a.NewService(maven.Options{
		LocalRepository: localRepository,
		Offline:         a.globals.offline || cfg.Offline,
		ChecksumPolicy:  maven.ChecksumPolicy(cfg.ChecksumPolicy),
		HTTPTimeout:     cfg.HTTP.Timeout,
		Retries:         cfg.HTTP.Retries,
		UserAgent:       cfg.HTTP.UserAgent,
		Logger:          logger,
	})
	if err != nil {
		return nil, newServiceError(err, issue.ConfigLoadFailedId)
	}

	interpreter := a.Interpreter
	if cfg.Java.Path != "" {
		interpreter = fixedInterpreter(cfg.Java.Path)
	}

	launcher, release := a.NewLauncher(logger)

	return &session{
		cfg:    cfg,
		logger: logger,
		runner: runner.New(runner.Dependencies{
			Resolver:            resolve.NewResolver(svc),
			Manifests:           a.Manifests,
			Launcher:            launcher,
			Interpreter:         interpreter,
			AmbientRepositories: cfg.Descriptors(),
			Logger:              logger,
		}),
		release: release,
	}, nil
}

// Close releases the resources of the session.
func (s *session) Close() {
	if s.release != nil {
		s.release()
	}
}
