// SPDX-License-Identifier: MPL-2.0

package classpath

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/lars-sh/jarrunner/internal/resolve"
)

func sampleTree() *resolve.Node {
	// root -> {A -> {C}, B}
	return &resolve.Node{File: "/repo/root.jar", Children: []*resolve.Node{
		{File: "/repo/a.jar", Children: []*resolve.Node{{File: "/repo/c.jar"}}},
		{File: "/repo/b.jar"},
	}}
}

func TestAssembleOrdering(t *testing.T) {
	t.Parallel()

	got, err := Assemble(sampleTree(), "")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	sep := string(os.PathListSeparator)
	want := strings.Join([]string{"/repo/root.jar", "/repo/a.jar", "/repo/c.jar", "/repo/b.jar"}, sep)
	if got != want {
		t.Errorf("Assemble() = %q, want %q", got, want)
	}
}

func TestAssembleSingleNode(t *testing.T) {
	t.Parallel()

	got, err := Assemble(&resolve.Node{File: "/repo/only.jar"}, "")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if got != "/repo/only.jar" {
		t.Errorf("Assemble() = %q, want %q", got, "/repo/only.jar")
	}
}

func TestRenderWithTemplate(t *testing.T) {
	t.Parallel()

	root := &resolve.Node{File: "/a.jar", Children: []*resolve.Node{{File: "/b.jar"}}}
	rendered := Render(root, ":")
	if rendered != "/a.jar:/b.jar" {
		t.Fatalf("Render() = %q, want %q", rendered, "/a.jar:/b.jar")
	}

	got := Apply("-Dcp=%s", rendered)
	if got != "-Dcp=/a.jar:/b.jar" {
		t.Errorf("templated class path = %q, want %q", got, "-Dcp=/a.jar:/b.jar")
	}

	assembled, err := Assemble(root, "-Dcp=%s")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if want := "-Dcp=" + Render(root, string(os.PathListSeparator)); assembled != want {
		t.Errorf("Assemble() = %q, want %q", assembled, want)
	}
}

func TestApplyWithoutFormat(t *testing.T) {
	t.Parallel()

	if got := Apply("", "/a.jar"); got != "/a.jar" {
		t.Errorf("Apply(\"\", ...) = %q, want the class path verbatim", got)
	}
}

func TestAssembleInvalidFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"no placeholder", "%s and %s", "100%%s", "%%s%%"} {
		_, err := Assemble(sampleTree(), format)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Assemble(format %q) error = %v, want ErrInvalidFormat", format, err)
		}
	}
}

func TestApplyEscapedPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{format: "%s", want: "/a%%.jar"},
		{format: "100%% %s", want: "100% /a%%.jar"},
		{format: "%%%s%%", want: "%/a%%.jar%"},
		{format: "%%s=%s", want: "%s=/a%%.jar"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			if err := ValidateFormat(tt.format); err != nil {
				t.Fatalf("ValidateFormat(%q) returned error: %v", tt.format, err)
			}
			if got := Apply(tt.format, "/a%%.jar"); got != tt.want {
				t.Errorf("Apply(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}
