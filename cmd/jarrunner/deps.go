// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/internal/runner"
)

const (
	depsFormatTree = "tree"
	depsFormatTOML = "toml"
)

// ErrInvalidDepsFormat is returned for an unknown --format value of `jarrunner deps`.
var ErrInvalidDepsFormat = errors.New("invalid output format")

type (
	// depsFlags are the flags of `jarrunner deps`.
	depsFlags struct {
		repositoryFlags

		format string
	}

	// tomlNode is the TOML document shape of one resolved artifact.
	tomlNode struct {
		Coordinate   string     `toml:"coordinate"`
		Scope        string     `toml:"scope,omitempty"`
		File         string     `toml:"file"`
		Dependencies []tomlNode `toml:"dependencies,omitempty"`
	}
)

func newDepsCommand(app *App) *cobra.Command {
	flags := &depsFlags{}

	depsCmd := &cobra.Command{
		Use:   "deps <coordinate>",
		Short: "Print the resolved dependency tree of an artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.format != depsFormatTree && flags.format != depsFormatTOML {
				return fmt.Errorf("%w %q (valid: %s, %s)", ErrInvalidDepsFormat, flags.format, depsFormatTree, depsFormatTOML)
			}

			s, err := app.newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			params, err := newParameters(runner.Options{
				Artifact:                 args[0],
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

			if flags.format == depsFormatTOML {
				return writeDepsTOML(cmd.OutOrStdout(), result.Root)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderDepsTree(result.Root))
			return err
		},
	}

	depsCmd.Flags().StringVar(&flags.format, "format", depsFormatTree, "output format (tree, toml)")
	flags.register(depsCmd.Flags())

	_ = depsCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{depsFormatTree, depsFormatTOML}, cobra.ShellCompDirectiveNoFileComp
	})

	return depsCmd
}

// renderDepsTree renders root and its descendants as a lipgloss tree.
func renderDepsTree(root *resolve.Node) string {
	t := depsSubtree(root)
	return t.String()
}

func depsSubtree(n *resolve.Node) *tree.Tree {
	t := tree.Root(depsLabel(n)).EnumeratorStyle(treeEnumeratorStyle)
	for _, child := range n.Children {
		if len(child.Children) == 0 {
			t.Child(depsLabel(child))
			continue
		}
		t.Child(depsSubtree(child))
	}
	return t
}

func depsLabel(n *resolve.Node) string {
	label := CmdStyle.Render(n.Coordinate.String())
	if n.Scope != "" {
		label += " " + scopeStyle.Render("("+n.Scope.String()+")")
	}
	return label
}

func writeDepsTOML(w io.Writer, root *resolve.Node) error {
	return toml.NewEncoder(w).SetIndentTables(true).Encode(newTOMLNode(root))
}

func newTOMLNode(n *resolve.Node) tomlNode {
	node := tomlNode{
		Coordinate: n.Coordinate.String(),
		Scope:      n.Scope.String(),
		File:       n.File,
	}
	for _, child := range n.Children {
		node.Dependencies = append(node.Dependencies, newTOMLNode(child))
	}
	return node
}
