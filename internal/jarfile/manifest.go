// SPDX-License-Identifier: MPL-2.0

// Package jarfile reads manifests of JAR archives.
package jarfile

import (
	"archive/zip"
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// ManifestPath is the location of the manifest inside a JAR.
	ManifestPath = "META-INF/MANIFEST.MF"

	// MainClass is the main attribute naming the application entry point.
	MainClass = "Main-Class"

	nameAttribute = "Name"
)

// ErrMalformedManifest is returned when a manifest line is not a header or a
// continuation line.
var ErrMalformedManifest = errors.New("malformed manifest")

type (
	// Attributes maps header names to values. Lookups are case-insensitive.
	Attributes map[string]string

	// Manifest is a parsed JAR manifest.
	Manifest struct {
		Main Attributes
		// Entries holds the per-entry sections keyed by their Name header.
		Entries map[string]Attributes
	}

	// Reader reads manifests from JAR files on disk.
	Reader struct{}
)

// Get returns the value of header name.
func (a Attributes) Get(name string) string {
	return a[strings.ToLower(name)]
}

func (a Attributes) set(name, value string) {
	a[strings.ToLower(name)] = value
}

// ParseManifest parses a manifest. Line endings may be CRLF, LF or CR; a line
// starting with a single space continues the previous header.
func ParseManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{Main: Attributes{}, Entries: map[string]Attributes{}}

	scanner := bufio.NewScanner(r)
	scanner.Split(scanManifestLines)

	section := m.Main
	inMain := true
	var name, value string
	lineNo := 0

	flush := func() {
		if name == "" {
			return
		}
		if !inMain && strings.EqualFold(name, nameAttribute) {
			section = Attributes{}
			m.Entries[value] = section
		}
		section.set(name, value)
		name, value = "", ""
	}

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case line == "":
			flush()
			inMain = false
			section = Attributes{}
		case line[0] == ' ':
			if name == "" {
				return nil, fmt.Errorf("%w: line %d: continuation without header", ErrMalformedManifest, lineNo)
			}
			value += line[1:]
		default:
			flush()
			idx := strings.IndexByte(line, ':')
			if idx <= 0 {
				return nil, fmt.Errorf("%w: line %d: %q is not a header", ErrMalformedManifest, lineNo, line)
			}
			name, value = line[:idx], strings.TrimPrefix(line[idx+1:], " ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	flush()

	return m, nil
}

// scanManifestLines splits on CRLF, LF or a lone CR.
func scanManifestLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	for i, b := range data {
		switch b {
		case '\n':
			return i + 1, data[:i], nil
		case '\r':
			if i+1 < len(data) {
				if data[i+1] == '\n' {
					return i + 2, data[:i], nil
				}
				return i + 1, data[:i], nil
			}
			if atEOF {
				return i + 1, data[:i], nil
			}
			// Need one more byte to tell CR from CRLF.
			return 0, nil, nil
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// NewReader creates a manifest reader for JAR files.
func NewReader() *Reader {
	return &Reader{}
}

// ReadManifest opens the JAR at path and parses its manifest. A JAR without a
// manifest yields an empty manifest.
func (r *Reader) ReadManifest(path string) (*Manifest, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if !strings.EqualFold(f.Name, ManifestPath) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open manifest of %s: %w", path, err)
		}
		defer rc.Close()

		m, err := ParseManifest(rc)
		if err != nil {
			return nil, fmt.Errorf("parse manifest of %s: %w", path, err)
		}
		return m, nil
	}

	return &Manifest{Main: Attributes{}, Entries: map[string]Attributes{}}, nil
}

// MainAttribute returns the value of main attribute name from the manifest of the
// JAR at path, or "" if the header is absent.
func (r *Reader) MainAttribute(path, name string) (string, error) {
	m, err := r.ReadManifest(path)
	if err != nil {
		return "", err
	}
	return m.Main.Get(name), nil
}
