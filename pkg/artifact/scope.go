// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ScopeCompile dependencies are available in all classpaths and are transitive.
	ScopeCompile Scope = "compile"
	// ScopeRuntime dependencies are needed for execution but not for compilation.
	ScopeRuntime Scope = "runtime"
	// ScopeProvided dependencies are expected to be supplied by the container.
	ScopeProvided Scope = "provided"
	// ScopeTest dependencies are only needed for tests.
	ScopeTest Scope = "test"
	// ScopeSystem dependencies point at a file on the local system.
	ScopeSystem Scope = "system"
	// ScopeImport is only valid inside dependencyManagement for BOM imports.
	ScopeImport Scope = "import"
)

// ErrInvalidScope is returned when a Scope value is not recognized.
var ErrInvalidScope = errors.New("invalid dependency scope")

type (
	// Scope tags a dependency edge with the build phases that need it.
	Scope string

	// InvalidScopeError is returned when a Scope value is not recognized.
	// It wraps ErrInvalidScope for errors.Is() compatibility.
	InvalidScopeError struct {
		Value Scope
	}
)

// Error implements the error interface.
func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("invalid dependency scope %q", e.Value)
}

// Unwrap returns ErrInvalidScope.
func (e *InvalidScopeError) Unwrap() error { return ErrInvalidScope }

// ParseScope normalizes s into a Scope. The empty string yields ScopeCompile, as in
// a POM without an explicit <scope>.
func ParseScope(s string) (Scope, error) {
	scope := Scope(strings.ToLower(strings.TrimSpace(s)))
	if scope == "" {
		return ScopeCompile, nil
	}
	if err := scope.Validate(); err != nil {
		return "", err
	}
	return scope, nil
}

// Validate returns an error if the scope is not one of the known scopes.
func (s Scope) Validate() error {
	switch s {
	case ScopeCompile, ScopeRuntime, ScopeProvided, ScopeTest, ScopeSystem, ScopeImport:
		return nil
	default:
		return &InvalidScopeError{Value: s}
	}
}

// IsTransitive reports whether dependencies with this scope are inherited by
// dependants.
func (s Scope) IsTransitive() bool {
	return s == ScopeCompile || s == ScopeRuntime
}

// Propagate returns the effective scope of a transitive dependency declared with
// scope child below a dependency with scope s.
func (s Scope) Propagate(child Scope) Scope {
	if s == ScopeRuntime && child == ScopeCompile {
		return ScopeRuntime
	}
	return child
}

// String returns the scope name.
func (s Scope) String() string { return string(s) }
