// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/lars-sh/jarrunner/pkg/types"
)

type (
	// Process is a started child process.
	Process interface {
		// Pid returns the operating system process id.
		Pid() int
		// Wait blocks until the process exits and returns its exit code. A
		// signal-terminated process reports 128+signal on POSIX systems.
		Wait() (types.ExitCode, error)
		// Terminate asks the process to stop.
		Terminate() error
		// Release gives up the handle so the process can outlive the launcher.
		Release() error
	}

	// Starter starts commands.
	Starter interface {
		Start(cmd *Command, mode Mode, streams Streams) (Process, error)
	}

	// StarterFunc adapts a function to the Starter interface.
	StarterFunc func(cmd *Command, mode Mode, streams Streams) (Process, error)

	// Streams are the standard streams of a waited-for child. Detached children
	// never inherit them.
	Streams struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	execStarter struct{}

	execProcess struct {
		cmd *exec.Cmd
	}
)

// Start calls f.
func (f StarterFunc) Start(cmd *Command, mode Mode, streams Streams) (Process, error) {
	return f(cmd, mode, streams)
}

// StandardStreams returns the streams of the current process.
func StandardStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// ExecStarter returns the Starter backed by os/exec.
func ExecStarter() Starter { return execStarter{} }

// Start starts cmd. The child is not bound to any context: cancelling the caller
// never kills it.
func (execStarter) Start(cmd *Command, mode Mode, streams Streams) (Process, error) {
	argv := cmd.Argv()
	c := exec.Command(argv[0], argv[1:]...)
	c.Dir = cmd.Dir()

	if mode == ModeDetach {
		// nil streams are connected to the null device.
		c.SysProcAttr = detachedAttributes()
	} else {
		c.Stdin = streams.Stdin
		c.Stdout = streams.Stdout
		c.Stderr = streams.Stderr
	}

	if err := c.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: c}, nil
}

func (p *execProcess) Pid() int { return p.cmd.Process.Pid }

func (p *execProcess) Wait() (types.ExitCode, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitCode(exitErr.ProcessState), nil
	}
	return types.ExitFailure, fmt.Errorf("wait for process %d: %w", p.Pid(), err)
}

func (p *execProcess) Terminate() error {
	if err := terminate(p.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

func (p *execProcess) Release() error { return p.cmd.Process.Release() }
