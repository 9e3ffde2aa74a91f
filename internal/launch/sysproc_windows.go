// SPDX-License-Identifier: MPL-2.0

//go:build windows

package launch

import (
	"os"
	"syscall"

	"github.com/lars-sh/jarrunner/pkg/types"
)

var interruptSignals = []os.Signal{os.Interrupt}

func detachedAttributes() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}

// terminate kills p; Windows has no catchable termination signal for console
// children.
func terminate(p *os.Process) error {
	return p.Kill()
}

func exitCode(state *os.ProcessState) types.ExitCode {
	return types.ExitCode(state.ExitCode())
}
