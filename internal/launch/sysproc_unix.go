// SPDX-License-Identifier: MPL-2.0

//go:build unix

package launch

import (
	"os"
	"syscall"

	"github.com/lars-sh/jarrunner/pkg/types"
)

var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// detachedAttributes puts the child into its own process group so that terminal
// signals aimed at jarrunner do not reach it.
func detachedAttributes() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}

func terminate(p *os.Process) error {
	return p.Signal(syscall.SIGTERM)
}

func exitCode(state *os.ProcessState) types.ExitCode {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return types.SignalExitCode(int(ws.Signal()))
	}
	return types.ExitCode(state.ExitCode())
}
