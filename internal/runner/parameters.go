// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"slices"
	"strings"

	"github.com/lars-sh/jarrunner/internal/classpath"
	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

type (
	// Options is the raw run configuration as supplied by the user.
	Options struct {
		// Artifact is groupId:artifactId[:extension[:classifier]]:version.
		Artifact        string
		MainClass       string
		Arguments       []string
		Detach          bool
		ClasspathFormat string
		JavaPath        string
		VMOptions       []string
		// Repositories are URIs of the form
		// scheme://[user[:converter:password]@]host[:port]/path[#id].
		Repositories             []string
		IgnoreSystemRepositories bool
		WorkingDirectory         string
	}

	// Parameters is the validated run configuration. It is built once by
	// NewParameters and never changes.
	Parameters struct {
		artifact                 artifact.Coordinate
		mainClass                string
		arguments                []string
		detach                   bool
		classpathFormat          string
		javaPath                 string
		vmOptions                []string
		repositories             []repository.Descriptor
		ignoreSystemRepositories bool
		workingDirectory         string
	}
)

// NewParameters validates opts. The artifact coordinate, the repository URIs and
// the classpath format are parsed here so that configuration errors surface
// before any resolution work. Blank strings are treated as absent.
func NewParameters(opts Options) (*Parameters, error) {
	coordinate, err := artifact.Parse(opts.Artifact)
	if err != nil {
		return nil, err
	}

	repos, err := repository.ParseAll(opts.Repositories)
	if err != nil {
		return nil, err
	}

	format := blankToAbsent(opts.ClasspathFormat)
	if err := classpath.ValidateFormat(format); err != nil {
		return nil, err
	}

	return &Parameters{
		artifact:                 coordinate,
		mainClass:                blankToAbsent(opts.MainClass),
		arguments:                slices.Clone(opts.Arguments),
		detach:                   opts.Detach,
		classpathFormat:          format,
		javaPath:                 blankToAbsent(opts.JavaPath),
		vmOptions:                slices.Clone(opts.VMOptions),
		repositories:             repos,
		ignoreSystemRepositories: opts.IgnoreSystemRepositories,
		workingDirectory:         blankToAbsent(opts.WorkingDirectory),
	}, nil
}

func blankToAbsent(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

// Artifact returns the coordinate of the application artifact.
func (p *Parameters) Artifact() artifact.Coordinate { return p.artifact }

// MainClass returns the main class override, or "".
func (p *Parameters) MainClass() string { return p.mainClass }

// Arguments returns a copy of the program arguments.
func (p *Parameters) Arguments() []string { return slices.Clone(p.arguments) }

// Detach reports whether the application is started without waiting for it.
func (p *Parameters) Detach() bool { return p.detach }

// ClasspathFormat returns the classpath template, or "".
func (p *Parameters) ClasspathFormat() string { return p.classpathFormat }

// JavaPath returns the Java executable override, or "".
func (p *Parameters) JavaPath() string { return p.javaPath }

// VMOptions returns a copy of the JVM options.
func (p *Parameters) VMOptions() []string { return slices.Clone(p.vmOptions) }

// Repositories returns a copy of the user repositories in the given order.
func (p *Parameters) Repositories() []repository.Descriptor { return slices.Clone(p.repositories) }

// IgnoreSystemRepositories reports whether configured repositories are skipped.
func (p *Parameters) IgnoreSystemRepositories() bool { return p.ignoreSystemRepositories }

// WorkingDirectory returns the working directory override, or "".
func (p *Parameters) WorkingDirectory() string { return p.workingDirectory }
