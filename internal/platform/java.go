// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	// JavaHomeEnv names the Java installation directory.
	JavaHomeEnv = "JAVA_HOME"

	javaCommand = "java"
)

// JavaLocator finds the Java executable of the host.
type JavaLocator struct {
	GOOS     string
	Getenv   func(string) string
	LookPath func(string) (string, error)
	Stat     func(string) (os.FileInfo, error)
}

// NewJavaLocator creates a locator for the current host.
func NewJavaLocator() *JavaLocator {
	return &JavaLocator{
		GOOS:     runtime.GOOS,
		Getenv:   os.Getenv,
		LookPath: exec.LookPath,
		Stat:     os.Stat,
	}
}

// JavaExecutable returns $JAVA_HOME/bin/java if it exists, then java resolved
// through PATH, and finally the bare command name so that starting it reports a
// meaningful error.
func (l *JavaLocator) JavaExecutable() string {
	name := ExecutableName(javaCommand, l.GOOS)

	if home := strings.TrimSpace(l.Getenv(JavaHomeEnv)); home != "" {
		candidate := filepath.Join(home, "bin", name)
		if info, err := l.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	if path, err := l.LookPath(name); err == nil {
		return path
	}
	return javaCommand
}
