// SPDX-License-Identifier: MPL-2.0

// Package entrypoint determines the main class of the launched application.
package entrypoint

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lars-sh/jarrunner/internal/jarfile"
)

// ErrMainClassNotFound is returned when no override is given and the root JAR
// manifest does not name a main class.
var ErrMainClassNotFound = errors.New("main class not found")

type (
	// ManifestReader reads main attributes from JAR manifests. A JAR without a
	// manifest reports every attribute as "".
	ManifestReader interface {
		MainAttribute(path, name string) (string, error)
	}

	// MainClassNotFoundError names the manifest that lacked the main class header.
	MainClassNotFoundError struct {
		Header string
		// Path is the absolute path of the root JAR.
		Path string
	}
)

// Error implements the error interface.
func (e *MainClassNotFoundError) Error() string {
	return fmt.Sprintf("could not find a %s entry inside the root JARs [%s] manifest; provide a main class yourself using --main-class", e.Header, e.Path)
}

// Unwrap returns ErrMainClassNotFound.
func (e *MainClassNotFoundError) Unwrap() error { return ErrMainClassNotFound }

// Resolve returns the main class to launch. A non-blank override wins without
// reading the manifest; otherwise the Main-Class header of the JAR at jarPath is
// used.
func Resolve(override, jarPath string, r ManifestReader) (string, error) {
	if name := strings.TrimSpace(override); name != "" {
		return name, nil
	}

	value, err := r.MainAttribute(jarPath, jarfile.MainClass)
	if err != nil {
		return "", fmt.Errorf("read manifest: %w", err)
	}
	if name := strings.TrimSpace(value); name != "" {
		return name, nil
	}

	abs, err := filepath.Abs(jarPath)
	if err != nil {
		abs = jarPath
	}
	return "", &MainClassNotFoundError{Header: jarfile.MainClass, Path: abs}
}
