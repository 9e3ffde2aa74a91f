// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestJavaExecutable(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	if err := os.MkdirAll(filepath.Join(home, "bin"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(home, "bin", "java"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	emptyHome := t.TempDir()

	notFound := func(string) (string, error) { return "", errors.New("not found") }
	onPath := func(name string) (string, error) { return "/usr/bin/" + name, nil }

	tests := []struct {
		name     string
		goos     string
		javaHome string
		lookPath func(string) (string, error)
		want     string
	}{
		{name: "JAVA_HOME wins", goos: Linux, javaHome: home, lookPath: onPath, want: filepath.Join(home, "bin", "java")},
		{name: "JAVA_HOME without java falls back to PATH", goos: Linux, javaHome: emptyHome, lookPath: onPath, want: "/usr/bin/java"},
		{name: "PATH", goos: Linux, lookPath: onPath, want: "/usr/bin/java"},
		{name: "PATH on windows", goos: Windows, lookPath: onPath, want: "/usr/bin/java.exe"},
		{name: "bare name", goos: Linux, lookPath: notFound, want: "java"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := &JavaLocator{
				GOOS: tt.goos,
				Getenv: func(key string) string {
					if key == JavaHomeEnv {
						return tt.javaHome
					}
					return ""
				},
				LookPath: tt.lookPath,
				Stat:     os.Stat,
			}
			if got := l.JavaExecutable(); got != tt.want {
				t.Errorf("JavaExecutable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExecutableName(t *testing.T) {
	t.Parallel()

	if got := ExecutableName("java", Windows); got != "java.exe" {
		t.Errorf("ExecutableName(windows) = %q", got)
	}
	if got := ExecutableName("java", Darwin); got != "java" {
		t.Errorf("ExecutableName(darwin) = %q", got)
	}
}
