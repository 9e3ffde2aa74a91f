// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

var (
	// ErrNoRepositories is returned when an artifact must be downloaded but the
	// request lists no repositories.
	ErrNoRepositories = errors.New("no repositories to resolve from")

	// ErrOffline is returned when a download is needed in offline mode.
	ErrOffline = errors.New("artifact is not in the local repository and offline mode is enabled")

	// ErrNotFound is the sentinel of ArtifactNotFoundError and of transports
	// reporting a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrChecksumMismatch is the sentinel of ChecksumError.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidModel is the sentinel of ModelError.
	ErrInvalidModel = errors.New("invalid project model")

	// ErrNoMatchingVersion is the sentinel of VersionRangeError.
	ErrNoMatchingVersion = errors.New("no version matches the range")
)

type (
	// ArtifactNotFoundError is returned when no repository has an artifact.
	ArtifactNotFoundError struct {
		Coordinate   artifact.Coordinate
		Repositories []repository.Descriptor
	}

	// TransferError is returned when downloading a resource fails for other
	// reasons than its absence.
	TransferError struct {
		URL   string
		Cause error
	}

	// ChecksumError is returned when a downloaded file does not match its
	// published checksum.
	ChecksumError struct {
		URL      string
		Expected string
		Actual   string
	}

	// ModelError is returned when a POM cannot be read or interpreted.
	ModelError struct {
		Coordinate artifact.Coordinate
		Reason     string
		Cause      error
	}

	// VersionRangeError is returned when no available version satisfies a range.
	VersionRangeError struct {
		Project   string
		Range     string
		Available []string
	}

	// statusError is an unexpected HTTP response status.
	statusError struct {
		Code int
	}
)

// Error implements the error interface.
func (e *ArtifactNotFoundError) Error() string {
	ids := make([]string, len(e.Repositories))
	for i, r := range e.Repositories {
		ids[i] = r.ID + " (" + r.URL + ")"
	}
	return fmt.Sprintf("could not find artifact %s in %s", e.Coordinate, strings.Join(ids, ", "))
}

// Unwrap returns ErrNotFound.
func (e *ArtifactNotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *TransferError) Error() string {
	return fmt.Sprintf("could not transfer %s: %v", e.URL, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *TransferError) Unwrap() error { return e.Cause }

// Error implements the error interface.
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum validation failed for %s: expected %s, got %s", e.URL, e.Expected, e.Actual)
}

// Unwrap returns ErrChecksumMismatch.
func (e *ChecksumError) Unwrap() error { return ErrChecksumMismatch }

// Error implements the error interface.
func (e *ModelError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid POM for %s: %s: %v", e.Coordinate, e.Reason, e.Cause)
	}
	return fmt.Sprintf("invalid POM for %s: %s", e.Coordinate, e.Reason)
}

// Unwrap returns ErrInvalidModel and the cause.
func (e *ModelError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidModel, e.Cause}
	}
	return []error{ErrInvalidModel}
}

// Error implements the error interface.
func (e *VersionRangeError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no versions of %s available to match %s", e.Project, e.Range)
	}
	return fmt.Sprintf("no version of %s matches %s (available: %s)", e.Project, e.Range, strings.Join(e.Available, ", "))
}

// Unwrap returns ErrNoMatchingVersion.
func (e *VersionRangeError) Unwrap() error { return ErrNoMatchingVersion }

func (e *statusError) Error() string { return fmt.Sprintf("unexpected HTTP status %d", e.Code) }
