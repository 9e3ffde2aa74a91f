// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"testing"
)

func TestParseScope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{input: "", want: ScopeCompile},
		{input: "compile", want: ScopeCompile},
		{input: " Runtime ", want: ScopeRuntime},
		{input: "test", want: ScopeTest},
		{input: "provided", want: ScopeProvided},
		{input: "import", want: ScopeImport},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseScope(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidScope) {
				t.Errorf("ParseScope(%q) error = %v, want ErrInvalidScope", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseScope(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScope(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestScopePropagate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		parent, child, want Scope
	}{
		{ScopeCompile, ScopeCompile, ScopeCompile},
		{ScopeCompile, ScopeRuntime, ScopeRuntime},
		{ScopeRuntime, ScopeCompile, ScopeRuntime},
		{ScopeRuntime, ScopeRuntime, ScopeRuntime},
	}

	for _, tt := range tests {
		if got := tt.parent.Propagate(tt.child); got != tt.want {
			t.Errorf("%s.Propagate(%s) = %s, want %s", tt.parent, tt.child, got, tt.want)
		}
	}

	if ScopeTest.IsTransitive() || ScopeProvided.IsTransitive() {
		t.Error("test and provided scopes must not be transitive")
	}
}
