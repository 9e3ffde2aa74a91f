// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"errors"
	"fmt"
)

const (
	// StateNotStarted indicates Launch has not started a child yet.
	StateNotStarted State = iota
	// StateRunning indicates the child runs and the launcher waits for it.
	StateRunning
	// StateExited is terminal: the child exited and its exit code is known.
	StateExited
	// StateDetached is terminal: the child was started and released.
	StateDetached
)

// ErrInvalidState is returned when a State value is not one of the defined launcher states.
var ErrInvalidState = errors.New("invalid state")

type (
	// State is the lifecycle state of a Launcher.
	State int32

	// InvalidStateError is returned when a State value is not recognized.
	// It wraps ErrInvalidState for errors.Is() compatibility.
	InvalidStateError struct {
		Value State
	}
)

// String returns a human-readable representation of the launcher state.
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not started"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateDetached:
		return "detached"
	default:
		return "unknown"
	}
}

// Error implements the error interface for InvalidStateError.
func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state %d (valid: 0=not started, 1=running, 2=exited, 3=detached)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// Validate returns nil if the State is one of the defined launcher states,
// or an error wrapping ErrInvalidState if it is not.
func (s State) Validate() error {
	switch s {
	case StateNotStarted, StateRunning, StateExited, StateDetached:
		return nil
	default:
		return &InvalidStateError{Value: s}
	}
}

// IsTerminal returns true if the state is a terminal state (Exited or Detached).
func (s State) IsTerminal() bool {
	return s == StateExited || s == StateDetached
}

// canTransition reports whether the launcher may move from s to next.
func (s State) canTransition(next State) bool {
	switch s {
	case StateNotStarted:
		return next == StateRunning
	case StateRunning:
		return next == StateExited || next == StateDetached
	default:
		return false
	}
}
