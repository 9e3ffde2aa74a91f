// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/lars-sh/jarrunner/internal/config"
	"github.com/lars-sh/jarrunner/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// NewRootCommand builds the command tree of app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jarrunner",
		Short: "Run Java applications straight from Maven repositories",
		Long: TitleStyle.Render("jarrunner") + SubtitleStyle.Render(" - Run Java applications straight from Maven repositories") + `

jarrunner resolves an artifact and its runtime dependencies from Maven
repositories, assembles the classpath and starts the application with
the Java executable of your choice.

` + SubtitleStyle.Render("Examples:") + `
  jarrunner run org.example:app:1.0.0                   Run the Main-Class of the artifact
  jarrunner run -m org.example.Tool org.example:app:1.0 Run a specific class
  jarrunner run org.example:app:1.0 -- --port 8080      Pass arguments to the application
  jarrunner classpath org.example:app:1.0.0             Print the classpath
  jarrunner deps org.example:app:1.0.0                  Show the dependency tree`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&app.globals.verbose, "verbose", "v", false, "enable verbose output")
	flags.StringVar(&app.globals.configPath, "config", "", "config file (default is "+defaultConfigHint()+")")
	flags.BoolVar(&app.globals.offline, "offline", false, "never access remote repositories")
	flags.StringVar(&app.globals.localRepository, "local-repository", "", "local repository directory (default ~/.m2/repository)")

	rootCmd.AddCommand(newRunCommand(app))
	rootCmd.AddCommand(newClasspathCommand(app))
	rootCmd.AddCommand(newDepsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())

	return rootCmd
}

func defaultConfigHint() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return "config.cue in the user configuration directory"
	}
	return dir + string(os.PathSeparator) + config.ConfigFileName + "." + config.ConfigFileExt
}

// Execute runs the command line given by args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	rootCmd := NewRootCommand(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, a.globals.verbose, a.glamourStyle())
		}),
	)
	return int(exitCode(err))
}

// glamourStyle selects the issue rendering style from the configuration the
// failed command loaded. The configuration is not loaded again.
func (a *App) glamourStyle() string {
	if !isTerminal(a.stderr) {
		return "notty"
	}
	if a.colorScheme == "" || a.colorScheme == config.ColorSchemeAuto {
		return "auto"
	}
	return string(a.colorScheme)
}

// exitCode maps the result of a command to the process exit code.
func exitCode(err error) types.ExitCode {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

// Main runs jarrunner with the process arguments and returns the exit code.
func Main() int {
	return NewApp(Dependencies{}).Execute(context.Background(), os.Args[1:])
}

// Execute runs jarrunner and exits the process. This is called by main.main().
func Execute() {
	os.Exit(Main())
}
