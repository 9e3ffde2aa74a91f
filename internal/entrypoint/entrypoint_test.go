// SPDX-License-Identifier: MPL-2.0

package entrypoint

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lars-sh/jarrunner/internal/jarfile"
	"github.com/lars-sh/jarrunner/internal/testutil"
)

type countingReader struct {
	value string
	err   error
	calls int
}

func (r *countingReader) MainAttribute(_, _ string) (string, error) {
	r.calls++
	return r.value, r.err
}

func writeJar(t *testing.T, manifest string, withManifest bool) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.jar")
	if !withManifest {
		return testutil.MustWriteJar(t, path, nil)
	}
	return testutil.MustWriteJar(t, path, &manifest)
}

func TestResolveOverrideSkipsManifest(t *testing.T) {
	t.Parallel()

	reader := &countingReader{value: "com.example.FromManifest"}
	got, err := Resolve("com.example.Override", "/does/not/exist.jar", reader)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "com.example.Override" {
		t.Errorf("Resolve() = %q, want %q", got, "com.example.Override")
	}
	if reader.calls != 0 {
		t.Errorf("manifest read %d times, want 0", reader.calls)
	}
}

func TestResolveFromManifest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		override string
		value    string
		want     string
	}{
		{name: "no override", value: "com.example.App", want: "com.example.App"},
		{name: "blank override", override: "   ", value: "com.example.App", want: "com.example.App"},
		{name: "trimmed value", value: " com.example.App ", want: "com.example.App"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader := &countingReader{value: tt.value}
			got, err := Resolve(tt.override, "app.jar", reader)
			if err != nil {
				t.Fatalf("Resolve returned error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
			if reader.calls != 1 {
				t.Errorf("manifest read %d times, want 1", reader.calls)
			}
		})
	}
}

func TestResolveMissingHeader(t *testing.T) {
	t.Parallel()

	_, err := Resolve("", "lib/app.jar", &countingReader{})
	if !errors.Is(err, ErrMainClassNotFound) {
		t.Fatalf("Resolve error = %v, want ErrMainClassNotFound", err)
	}

	var notFound *MainClassNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error %T is not a *MainClassNotFoundError", err)
	}
	if !filepath.IsAbs(notFound.Path) {
		t.Errorf("Path = %q, want an absolute path", notFound.Path)
	}
	if !strings.HasSuffix(notFound.Path, filepath.Join("lib", "app.jar")) {
		t.Errorf("Path = %q does not name the JAR", notFound.Path)
	}
	if !strings.Contains(err.Error(), "Main-Class") || !strings.Contains(err.Error(), "--main-class") {
		t.Errorf("message %q lacks the header or the hint", err.Error())
	}
}

func TestResolvePropagatesReaderErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")
	_, err := Resolve("", "app.jar", &countingReader{err: cause})
	if !errors.Is(err, cause) {
		t.Errorf("Resolve error = %v, want wrapped %v", err, cause)
	}
	if errors.Is(err, ErrMainClassNotFound) {
		t.Error("I/O failure reported as a missing main class")
	}
}

func TestResolveWithJarFiles(t *testing.T) {
	t.Parallel()

	reader := jarfile.NewReader()

	withHeader := writeJar(t, "Manifest-Version: 1.0\r\nMain-Class: com.example.Main\r\n", true)
	got, err := Resolve("", withHeader, reader)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got != "com.example.Main" {
		t.Errorf("Resolve() = %q, want %q", got, "com.example.Main")
	}

	withoutHeader := writeJar(t, "Manifest-Version: 1.0\r\n", true)
	if _, err := Resolve("", withoutHeader, reader); !errors.Is(err, ErrMainClassNotFound) {
		t.Errorf("manifest without header: error = %v, want ErrMainClassNotFound", err)
	}

	withoutManifest := writeJar(t, "", false)
	if _, err := Resolve("", withoutManifest, reader); !errors.Is(err, ErrMainClassNotFound) {
		t.Errorf("JAR without manifest: error = %v, want ErrMainClassNotFound", err)
	}
}
