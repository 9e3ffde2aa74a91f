// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"mvdan.cc/sh/v3/shell"

	"github.com/lars-sh/jarrunner/internal/classpath"
	"github.com/lars-sh/jarrunner/internal/config"
	"github.com/lars-sh/jarrunner/internal/issue"
	"github.com/lars-sh/jarrunner/internal/launch"
	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/internal/runner"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

type (
	// repositoryFlags select the repositories used to resolve an artifact.
	repositoryFlags struct {
		repositories             []string
		ignoreSystemRepositories bool
	}

	// runFlags are the flags of `jarrunner run`.
	runFlags struct {
		repositoryFlags

		mainClass        string
		detach           bool
		classpathFormat  string
		javaPath         string
		javaOpt          []string
		javaOpts         string
		workingDirectory string
		dryRun           bool
	}
)

func (f *repositoryFlags) register(flags *pflag.FlagSet) {
	flags.StringArrayVarP(&f.repositories, "repository", "r", nil,
		"repository URI scheme://[user[:converter:password]@]host[:port]/path[#id] (repeatable)")
	flags.BoolVar(&f.ignoreSystemRepositories, "ignore-system-repositories", false,
		"do not use the repositories from the configuration")
}

func newRunCommand(app *App) *cobra.Command {
	flags := &runFlags{}

	runCmd := &cobra.Command{
		Use:   "run <groupId:artifactId[:extension[:classifier]]:version> [flags] [-- arguments...]",
		Short: "Resolve an artifact and run it",
		Long: `Resolve an artifact and its runtime dependencies, then start it with Java.

Arguments after the coordinate are passed to the application unchanged.
Separate them with -- when they start with a dash.
jarrunner waits for the application and exits with its exit value unless
--detach is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArtifact(cmd, app, flags, args[0], args[1:])
		},
	}

	f := runCmd.Flags()
	f.StringVarP(&flags.mainClass, "main-class", "m", "", "main class (default: Main-Class of the artifact's manifest)")
	f.BoolVarP(&flags.detach, "detach", "d", false, "start the application and return immediately")
	f.StringVar(&flags.classpathFormat, "classpath-format", "", "template with one %s replaced by the classpath, %% for a literal %")
	f.StringVar(&flags.javaPath, "java-path", "", "Java executable (default: java.path, JAVA_HOME or PATH)")
	f.StringArrayVar(&flags.javaOpt, "java-opt", nil, "JVM option (repeatable, order kept)")
	f.StringVar(&flags.javaOpts, "java-opts", "", "JVM options as one shell-quoted string")
	f.StringVarP(&flags.workingDirectory, "working-directory", "w", "", "working directory for the application")
	f.BoolVar(&flags.dryRun, "dry-run", false, "print the command line instead of starting it")
	flags.register(f)

	return runCmd
}

// vmOptions joins the configured JVM options, then --java-opt values, then the
// words of --java-opts.
func (f *runFlags) vmOptions(cfg *config.Config) ([]string, error) {
	options := append([]string{}, cfg.Java.Options...)
	options = append(options, f.javaOpt...)
	if f.javaOpts != "" {
		words, err := shell.Fields(f.javaOpts, nil)
		if err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("parse --java-opts").
				WithResource(f.javaOpts).
				WithSuggestion("Quote options containing spaces, e.g. --java-opts \"-Dname='a b'\"").
				Wrap(err).
				BuildError()
		}
		options = append(options, words...)
	}
	return options, nil
}

func (f *runFlags) parameters(cfg *config.Config, coordinate string, arguments []string) (*runner.Parameters, error) {
	vmOptions, err := f.vmOptions(cfg)
	if err != nil {
		return nil, err
	}
	return newParameters(runner.Options{
		Artifact:                 coordinate,
		MainClass:                f.mainClass,
		Arguments:                arguments,
		Detach:                   f.detach,
		ClasspathFormat:          f.classpathFormat,
		JavaPath:                 f.javaPath,
		VMOptions:                vmOptions,
		Repositories:             f.repositories,
		IgnoreSystemRepositories: f.ignoreSystemRepositories,
		WorkingDirectory:         f.workingDirectory,
	})
}

// newParameters validates opts and attaches usage hints to configuration errors.
func newParameters(opts runner.Options) (*runner.Parameters, error) {
	params, err := runner.NewParameters(opts)
	if err == nil {
		return params, nil
	}

	ec := issue.NewErrorContext().Wrap(err)
	switch {
	case errors.Is(err, artifact.ErrInvalidCoordinate):
		ec.WithOperation("parse artifact coordinate").
			WithSuggestion("Use groupId:artifactId[:extension[:classifier]]:version, e.g. org.example:app:1.0.0")
	case errors.Is(err, repository.ErrInvalidRepository):
		ec.WithOperation("parse repository").
			WithSuggestions(
				"Use scheme://[user[:converter:password]@]host[:port]/path[#id]",
				"Supported password converters are plain and base64",
			)
	case errors.Is(err, classpath.ErrInvalidFormat):
		ec.WithOperation("apply classpath format").
			WithSuggestion("Use exactly one %s, e.g. --classpath-format 'lib/extra.jar:%s'")
	default:
		return nil, err
	}
	return nil, ec.BuildError()
}

func runArtifact(cmd *cobra.Command, app *App, flags *runFlags, coordinate string, arguments []string) error {
	s, err := app.newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.Close()

	params, err := flags.parameters(s.cfg, coordinate, arguments)
	if err != nil {
		return err
	}

	if flags.dryRun {
		plan, err := s.runner.Prepare(cmd.Context(), params)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), plan.Command.String())
		return nil
	}

	outcome, err := s.runner.Run(cmd.Context(), params)
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Code: exitErr.Code, Err: err}
	}
	if err != nil {
		return err
	}

	if outcome.State == launch.StateDetached {
		s.logger.Info("application started in the background")
	}
	return nil
}
