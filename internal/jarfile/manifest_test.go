// SPDX-License-Identifier: MPL-2.0

package jarfile

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeJar creates a JAR at dir/name. A nil manifest produces an archive without
// META-INF/MANIFEST.MF.
func writeJar(t *testing.T, dir, name string, manifest *string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create jar: %v", err)
	}
	zw := zip.NewWriter(f)
	if manifest != nil {
		w, err := zw.Create(ManifestPath)
		if err != nil {
			t.Fatalf("create manifest entry: %v", err)
		}
		if _, err := w.Write([]byte(*manifest)); err != nil {
			t.Fatalf("write manifest: %v", err)
		}
	}
	w, err := zw.Create("com/example/App.class")
	if err != nil {
		t.Fatalf("create class entry: %v", err)
	}
	if _, err := w.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE}); err != nil {
		t.Fatalf("write class: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close jar: %v", err)
	}
	return path
}

func TestParseManifest(t *testing.T) {
	t.Parallel()

	input := "Manifest-Version: 1.0\r\n" +
		"Main-Class: com.example.VeryLongPackageName.AndAnEvenLongerClassNameThatI\r\n" +
		" sWrapped\r\n" +
		"Created-By: test\r\n" +
		"\r\n" +
		"Name: com/example/\r\n" +
		"Sealed: true\r\n"

	m, err := ParseManifest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseManifest returned error: %v", err)
	}

	if got, want := m.Main.Get("main-class"), "com.example.VeryLongPackageName.AndAnEvenLongerClassNameThatIsWrapped"; got != want {
		t.Errorf("Main-Class = %q, want %q", got, want)
	}
	if got := m.Main.Get("Created-By"); got != "test" {
		t.Errorf("Created-By = %q, want %q", got, "test")
	}
	entry, ok := m.Entries["com/example/"]
	if !ok {
		t.Fatalf("entry section missing: %v", m.Entries)
	}
	if got := entry.Get("Sealed"); got != "true" {
		t.Errorf("Sealed = %q, want %q", got, "true")
	}
	if got := m.Main.Get("Sealed"); got != "" {
		t.Errorf("entry attribute leaked into main section: %q", got)
	}
}

func TestParseManifestLineEndings(t *testing.T) {
	t.Parallel()

	for name, input := range map[string]string{
		"lf":          "Main-Class: a.B\nX: y\n",
		"cr":          "Main-Class: a.B\rX: y\r",
		"no trailing": "Main-Class: a.B\r\nX: y",
	} {
		m, err := ParseManifest(strings.NewReader(input))
		if err != nil {
			t.Errorf("%s: ParseManifest returned error: %v", name, err)
			continue
		}
		if m.Main.Get(MainClass) != "a.B" || m.Main.Get("X") != "y" {
			t.Errorf("%s: main attributes = %v", name, m.Main)
		}
	}
}

func TestParseManifestMalformed(t *testing.T) {
	t.Parallel()

	for _, input := range []string{" leading continuation\n", "no header here\n"} {
		if _, err := ParseManifest(strings.NewReader(input)); !errors.Is(err, ErrMalformedManifest) {
			t.Errorf("ParseManifest(%q) error = %v, want ErrMalformedManifest", input, err)
		}
	}
}

func TestReaderMainAttribute(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifest := "Manifest-Version: 1.0\nMain-Class: com.example.App\n"
	path := writeJar(t, dir, "app.jar", &manifest)

	got, err := NewReader().MainAttribute(path, MainClass)
	if err != nil {
		t.Fatalf("MainAttribute returned error: %v", err)
	}
	if got != "com.example.App" {
		t.Errorf("MainAttribute() = %q, want %q", got, "com.example.App")
	}
}

func TestReaderWithoutManifest(t *testing.T) {
	t.Parallel()

	path := writeJar(t, t.TempDir(), "plain.jar", nil)

	got, err := NewReader().MainAttribute(path, MainClass)
	if err != nil {
		t.Fatalf("MainAttribute returned error: %v", err)
	}
	if got != "" {
		t.Errorf("MainAttribute() = %q, want empty", got)
	}
}

func TestReaderPropagatesIOErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := NewReader().MainAttribute(filepath.Join(dir, "missing.jar"), MainClass); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}

	notZip := filepath.Join(dir, "broken.jar")
	if err := os.WriteFile(notZip, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader().MainAttribute(notZip, MainClass); err == nil {
		t.Error("expected error for a file that is not an archive")
	}
}
