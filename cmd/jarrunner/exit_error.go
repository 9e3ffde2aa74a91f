// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strconv"

	"github.com/lars-sh/jarrunner/pkg/types"
)

// ExitError makes jarrunner exit with Code. renderError prints nothing for it:
// the application reported its own failure on the inherited streams.
type ExitError struct {
	Code types.ExitCode
	// Err is the runner error that carried Code. Optional.
	Err error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(int(e.Code))
	}
	return e.Err.Error()
}

// Unwrap returns Err.
func (e *ExitError) Unwrap() error { return e.Err }
