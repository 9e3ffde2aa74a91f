// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/lars-sh/jarrunner/pkg/types"
)

const (
	// ModeWait inherits the standard streams and waits for the child to exit.
	ModeWait Mode = iota
	// ModeDetach starts the child without streams and returns immediately.
	ModeDetach
)

// ErrAlreadyLaunched is returned by Launch on a launcher that was used before.
var ErrAlreadyLaunched = errors.New("launcher already used")

type (
	// Mode selects how Launch treats the child.
	Mode int

	// Outcome is the result of a successful Launch.
	Outcome struct {
		State State
		// ExitCode is the exit code of the child; always 0 for detached children.
		ExitCode types.ExitCode
	}

	// StartError is returned when the child process cannot be started.
	StartError struct {
		Executable string
		Cause      error
	}

	// Option configures a Launcher.
	Option func(*Launcher)

	// InterruptSource subscribes to interrupts. The returned function ends the
	// subscription.
	InterruptSource func() (ch <-chan os.Signal, stop func())

	// Launcher starts one Command.
	Launcher struct {
		starter    Starter
		streams    Streams
		interrupts InterruptSource
		logger     *slog.Logger

		mu       sync.Mutex
		state    State
		launched bool
	}

	waitResult struct {
		code types.ExitCode
		err  error
	}
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeDetach {
		return "detach"
	}
	return "wait"
}

// Error implements the error interface.
func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Executable, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StartError) Unwrap() error { return e.Cause }

// WithStarter replaces the os/exec based starter.
func WithStarter(s Starter) Option {
	return func(l *Launcher) { l.starter = s }
}

// WithStreams replaces the inherited standard streams.
func WithStreams(s Streams) Option {
	return func(l *Launcher) { l.streams = s }
}

// WithInterrupts sets the channel whose signals terminate a waited-for child.
func WithInterrupts(ch <-chan os.Signal) Option {
	return WithInterruptSource(func() (<-chan os.Signal, func()) { return ch, func() {} })
}

// WithInterruptSource sets the subscription used while waiting for a child. It
// is opened only after the child started in ModeWait and closed when Launch
// returns, so signals arriving earlier keep their default effect.
func WithInterruptSource(src InterruptSource) Option {
	return func(l *Launcher) { l.interrupts = src }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Launcher) { l.logger = logger }
}

// NotifyInterrupts relays SIGINT and SIGTERM (os.Interrupt on Windows) to the
// returned channel until stop is called.
func NotifyInterrupts() (ch <-chan os.Signal, stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, interruptSignals...)
	return c, func() { signal.Stop(c) }
}

// NewLauncher creates a launcher using os/exec and the standard streams of the
// current process.
func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{
		starter: ExecStarter(),
		streams: StandardStreams(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the current state.
func (l *Launcher) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Launcher) transition(next State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.canTransition(next) {
		l.state = next
	}
}

// Launch starts cmd. In ModeWait it blocks until the child exits; every
// interrupt received meanwhile terminates the child once and the wait goes on.
// There is no timeout. In ModeDetach the child is released right after it
// started.
func (l *Launcher) Launch(cmd *Command, mode Mode) (Outcome, error) {
	l.mu.Lock()
	if l.launched {
		l.mu.Unlock()
		return Outcome{State: l.State()}, ErrAlreadyLaunched
	}
	l.launched = true
	l.mu.Unlock()

	proc, err := l.starter.Start(cmd, mode, l.streams)
	if err != nil {
		return Outcome{State: StateNotStarted}, &StartError{Executable: cmd.Path(), Cause: err}
	}
	l.transition(StateRunning)
	l.logger.Debug("started application", "pid", proc.Pid(), "mode", mode)

	if mode == ModeDetach {
		if err := proc.Release(); err != nil {
			l.logger.Warn("failed to release application process", "pid", proc.Pid(), "error", err)
		}
		l.transition(StateDetached)
		return Outcome{State: StateDetached}, nil
	}

	return l.wait(proc)
}

func (l *Launcher) wait(proc Process) (Outcome, error) {
	var interrupts <-chan os.Signal
	if l.interrupts != nil {
		ch, stop := l.interrupts()
		defer stop()
		interrupts = ch
	}

	done := make(chan waitResult, 1)
	go func() {
		code, err := proc.Wait()
		done <- waitResult{code: code, err: err}
	}()

	for {
		select {
		case res := <-done:
			l.transition(StateExited)
			if res.err != nil {
				return Outcome{State: StateExited, ExitCode: res.code}, res.err
			}
			l.logger.Debug("application exited", "pid", proc.Pid(), "exit_code", res.code)
			return Outcome{State: StateExited, ExitCode: res.code}, nil
		case sig := <-interrupts:
			l.logger.Info("interrupted while waiting for the application, terminating it", "signal", sig, "pid", proc.Pid())
			if err := proc.Terminate(); err != nil {
				l.logger.Warn("failed to terminate application", "pid", proc.Pid(), "error", err)
			}
		}
	}
}
