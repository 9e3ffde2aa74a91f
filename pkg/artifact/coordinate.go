// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	// DefaultExtension is used when a coordinate does not name an extension.
	DefaultExtension = "jar"

	snapshotSuffix = "-SNAPSHOT"
)

// ErrInvalidCoordinate is the sentinel error wrapped by InvalidCoordinateError.
var ErrInvalidCoordinate = errors.New("invalid artifact coordinate")

type (
	// Coordinate identifies an artifact inside a repository.
	Coordinate struct {
		GroupID    string
		ArtifactID string
		Extension  string
		Classifier string
		Version    string
	}

	// InvalidCoordinateError is returned when a coordinate string cannot be parsed.
	InvalidCoordinateError struct {
		Value  string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid artifact coordinate %q: %s (expected <groupId>:<artifactId>[:<extension>[:<classifier>]]:<version>)", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidCoordinate for errors.Is compatibility.
func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// Parse parses a coordinate of the form
// <groupId>:<artifactId>[:<extension>[:<classifier>]]:<version>.
func Parse(s string) (Coordinate, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return Coordinate{}, &InvalidCoordinateError{Value: s, Reason: "coordinate is empty"}
	}

	parts := strings.Split(value, ":")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	c := Coordinate{Extension: DefaultExtension}
	switch len(parts) {
	case 3:
		c.GroupID, c.ArtifactID, c.Version = parts[0], parts[1], parts[2]
	case 4:
		c.GroupID, c.ArtifactID, c.Version = parts[0], parts[1], parts[3]
		if parts[2] != "" {
			c.Extension = parts[2]
		}
	case 5:
		c.GroupID, c.ArtifactID, c.Classifier, c.Version = parts[0], parts[1], parts[3], parts[4]
		if parts[2] != "" {
			c.Extension = parts[2]
		}
	default:
		return Coordinate{}, &InvalidCoordinateError{Value: s, Reason: fmt.Sprintf("found %d segments", len(parts))}
	}

	switch {
	case c.GroupID == "":
		return Coordinate{}, &InvalidCoordinateError{Value: s, Reason: "groupId is blank"}
	case c.ArtifactID == "":
		return Coordinate{}, &InvalidCoordinateError{Value: s, Reason: "artifactId is blank"}
	case c.Version == "":
		return Coordinate{}, &InvalidCoordinateError{Value: s, Reason: "version is blank"}
	}

	return c, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Coordinate {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the coordinate in its canonical textual form. The extension is
// omitted when it is the default one and no classifier is set.
func (c Coordinate) String() string {
	var sb strings.Builder
	sb.WriteString(c.GroupID)
	sb.WriteByte(':')
	sb.WriteString(c.ArtifactID)
	switch {
	case c.Classifier != "":
		sb.WriteByte(':')
		sb.WriteString(c.extension())
		sb.WriteByte(':')
		sb.WriteString(c.Classifier)
	case c.extension() != DefaultExtension:
		sb.WriteByte(':')
		sb.WriteString(c.extension())
	}
	sb.WriteByte(':')
	sb.WriteString(c.Version)
	return sb.String()
}

// Key identifies the artifact independently of its version. Two coordinates with
// the same key conflict with each other inside one dependency graph.
func (c Coordinate) Key() string {
	key := c.GroupID + ":" + c.ArtifactID
	if c.Classifier != "" {
		key += ":" + c.Classifier
	}
	return key + ":" + c.extension()
}

// ProjectKey identifies the Maven project (groupId:artifactId) of the coordinate.
func (c Coordinate) ProjectKey() string {
	return c.GroupID + ":" + c.ArtifactID
}

// WithVersion returns a copy of c using version v.
func (c Coordinate) WithVersion(v string) Coordinate {
	c.Version = v
	return c
}

// WithExtension returns a copy of c using extension ext and no classifier.
// It is used to address the POM of an artifact.
func (c Coordinate) WithExtension(ext string) Coordinate {
	c.Extension = ext
	c.Classifier = ""
	return c
}

// IsSnapshot reports whether the coordinate names a SNAPSHOT version.
func (c Coordinate) IsSnapshot() bool {
	return strings.HasSuffix(c.Version, snapshotSuffix)
}

// BaseVersion returns the version without the SNAPSHOT qualifier.
func (c Coordinate) BaseVersion() string {
	return strings.TrimSuffix(c.Version, snapshotSuffix)
}

// VersionDir returns the directory of this version inside a repository using the
// default Maven layout.
func (c Coordinate) VersionDir() string {
	return path.Join(c.ProjectDir(), c.Version)
}

// ProjectDir returns the artifact-level directory inside a repository using the
// default Maven layout.
func (c Coordinate) ProjectDir() string {
	return path.Join(strings.ReplaceAll(c.GroupID, ".", "/"), c.ArtifactID)
}

// FileName returns the file name of the artifact using fileVersion, which differs
// from Version only for timestamped SNAPSHOT files.
func (c Coordinate) FileName(fileVersion string) string {
	name := c.ArtifactID + "-" + fileVersion
	if c.Classifier != "" {
		name += "-" + c.Classifier
	}
	return name + "." + c.extension()
}

// RepositoryPath returns the slash separated path of the artifact inside a
// repository using the default Maven layout.
func (c Coordinate) RepositoryPath() string {
	return path.Join(c.VersionDir(), c.FileName(c.Version))
}

func (c Coordinate) extension() string {
	if c.Extension == "" {
		return DefaultExtension
	}
	return c.Extension
}
