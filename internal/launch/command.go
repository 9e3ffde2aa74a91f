// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/lars-sh/jarrunner/internal/platform"
)

// ClasspathFlag precedes the classpath in every command.
const ClasspathFlag = "-classpath"

// ErrInvalidCommand is returned when a Spec lacks the executable or the main class.
var ErrInvalidCommand = errors.New("invalid launch command")

type (
	// Spec lists the parts of a JVM invocation.
	Spec struct {
		Executable string
		VMOptions  []string
		Classpath  string
		MainClass  string
		Arguments  []string
		// Dir is the working directory of the child; empty keeps the current one.
		Dir string
	}

	// Command is an immutable JVM invocation:
	// [executable, vmOptions..., -classpath, classpath, mainClass, arguments...].
	Command struct {
		args []string
		dir  string
	}
)

// NewCommand builds the command described by spec. VM options and arguments are
// kept verbatim and in order.
func NewCommand(spec Spec) (*Command, error) {
	if strings.TrimSpace(spec.Executable) == "" {
		return nil, fmt.Errorf("%w: no Java executable", ErrInvalidCommand)
	}
	if strings.TrimSpace(spec.MainClass) == "" {
		return nil, fmt.Errorf("%w: no main class", ErrInvalidCommand)
	}

	args := make([]string, 0, len(spec.VMOptions)+len(spec.Arguments)+4)
	args = append(args, spec.Executable)
	args = append(args, spec.VMOptions...)
	args = append(args, ClasspathFlag, spec.Classpath, spec.MainClass)
	args = append(args, spec.Arguments...)

	return &Command{args: args, dir: spec.Dir}, nil
}

// Path returns the executable.
func (c *Command) Path() string { return c.args[0] }

// Argv returns a copy of the full argument vector, executable included.
func (c *Command) Argv() []string { return slices.Clone(c.args) }

// Dir returns the working directory override, or "".
func (c *Command) Dir() string { return c.dir }

// String renders the command for the host operating system.
func (c *Command) String() string { return c.Render(runtime.GOOS) }

// Render renders the command quoted for the shell conventions of goos. The
// result is meant for display and is never executed.
func (c *Command) Render(goos string) string {
	quote := quotePOSIX
	if goos == platform.Windows {
		quote = quoteWindows
	}

	quoted := make([]string, len(c.args))
	for i, arg := range c.args {
		quoted[i] = quote(arg)
	}
	return strings.Join(quoted, " ")
}
