// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lars-sh/jarrunner/internal/classpath"
	"github.com/lars-sh/jarrunner/internal/entrypoint"
	"github.com/lars-sh/jarrunner/internal/issue"
	"github.com/lars-sh/jarrunner/internal/launch"
	"github.com/lars-sh/jarrunner/internal/maven"
	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

// ServiceError is an error that carries the issue catalog entry explaining it.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the issue catalog ID for rendering help text.
	IssueID issue.Id
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
func newServiceError(err error, issueID issue.Id) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{Err: err, IssueID: issueID}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// classifyError maps an error to the catalog entry describing it. Errors
// already carrying an issue keep it. Zero means no catalog entry applies.
func classifyError(err error) issue.Id {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) && svcErr.IssueID != 0 {
		return svcErr.IssueID
	}

	var (
		notFound *maven.ArtifactNotFoundError
		startErr *launch.StartError
	)
	switch {
	case errors.Is(err, artifact.ErrInvalidCoordinate):
		return issue.InvalidCoordinateId
	case errors.Is(err, repository.ErrInvalidRepository):
		return issue.InvalidRepositoryId
	case errors.Is(err, classpath.ErrInvalidFormat):
		return issue.InvalidClasspathFormatId
	case errors.Is(err, maven.ErrOffline):
		return issue.OfflineArtifactMissingId
	case errors.As(err, &notFound):
		return issue.ArtifactNotFoundId
	case errors.Is(err, maven.ErrChecksumMismatch):
		return issue.ChecksumMismatchId
	case errors.Is(err, maven.ErrInvalidModel),
		errors.Is(err, maven.ErrNoMatchingVersion),
		errors.Is(err, maven.ErrNoRepositories):
		return issue.DependencyResolutionFailedId
	case errors.Is(err, entrypoint.ErrMainClassNotFound):
		return issue.MainClassNotFoundId
	case errors.As(err, &startErr):
		return issue.JavaNotFoundId
	default:
		return 0
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	if !verbose {
		return err.Error()
	}
	return issue.WrapWithOperation(err, "run jarrunner").Format(true)
}

// renderError writes err and the matching issue guidance to w. Exit errors of
// the application are not rendered.
func renderError(w io.Writer, err error, verbose bool, glamourStyle string) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}

	fmt.Fprintln(w, ErrorStyle.Render("Error:")+" "+formatErrorForDisplay(err, verbose))

	id := classifyError(err)
	if id == 0 {
		return
	}
	if entry := issue.Get(id); entry != nil {
		rendered, renderErr := entry.Render(glamourStyle)
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
			return
		}
		fmt.Fprint(w, rendered)
	}
}
