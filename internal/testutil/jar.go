// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// manifestPath is the location of the manifest inside a JAR.
const manifestPath = "META-INF/MANIFEST.MF"

// MainClassManifest returns a manifest declaring mainClass as Main-Class.
func MainClassManifest(mainClass string) string {
	return fmt.Sprintf("Manifest-Version: 1.0\r\nMain-Class: %s\r\n\r\n", mainClass)
}

// JarBytes builds a JAR holding one class file and, unless manifest is nil,
// the given manifest text.
func JarBytes(manifest *string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if manifest != nil {
		w, err := zw.Create(manifestPath)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(*manifest)); err != nil {
			return nil, err
		}
	}

	w, err := zw.Create("com/example/App.class")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte{0xCA, 0xFE, 0xBA, 0xBE}); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJar writes a JAR built by JarBytes to path, creating parent directories.
func WriteJar(path string, manifest *string) error {
	data, err := JarBytes(manifest)
	if err != nil {
		return fmt.Errorf("build jar: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// MustWriteJar is WriteJar failing the test on error. It returns path.
func MustWriteJar(t testing.TB, path string, manifest *string) string {
	t.Helper()
	if err := WriteJar(path, manifest); err != nil {
		t.Fatalf("failed to write jar %s: %v", path, err)
	}
	return path
}
