// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lars-sh/jarrunner/internal/classpath"
	"github.com/lars-sh/jarrunner/internal/runner"
)

// classpathFlags are the flags of `jarrunner classpath`.
type classpathFlags struct {
	repositoryFlags

	classpathFormat string
}

func newClasspathCommand(app *App) *cobra.Command {
	flags := &classpathFlags{}

	classpathCmd := &cobra.Command{
		Use:   "classpath <coordinate>",
		Short: "Print the classpath of an artifact",
		Long: `Resolve an artifact and its runtime dependencies and print the classpath
jarrunner would pass to Java. The artifact itself comes first, followed by its
dependencies in resolution order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			params, err := newParameters(runner.Options{
				Artifact:                 args[0],
				ClasspathFormat:          flags.classpathFormat,
				Repositories:             flags.repositories,
				IgnoreSystemRepositories: flags.ignoreSystemRepositories,
			})
			if err != nil {
				return err
			}

			result, _, err := s.runner.Resolve(cmd.Context(), params)
			if err != nil {
				return err
			}
			cp, err := classpath.Assemble(result.Root, params.ClasspathFormat())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cp)
			return nil
		},
	}

	classpathCmd.Flags().StringVar(&flags.classpathFormat, "classpath-format", "", "template with one %s replaced by the classpath, %% for a literal %")
	flags.register(classpathCmd.Flags())

	return classpathCmd
}
