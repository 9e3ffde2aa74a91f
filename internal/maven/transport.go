// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/lars-sh/jarrunner/internal/repository"
)

type (
	// Transport reads resources of remote repositories. A missing resource is
	// reported with an error wrapping ErrNotFound.
	Transport interface {
		Get(ctx context.Context, repo repository.Descriptor, path string) (io.ReadCloser, error)
	}

	// HTTPTransport reads http and https repositories.
	HTTPTransport struct {
		Client    *http.Client
		UserAgent string
	}

	// FileTransport reads file repositories.
	FileTransport struct{}

	// SchemeTransport dispatches on the URL scheme of the repository.
	SchemeTransport map[string]Transport

	// UnsupportedSchemeError is returned for repositories whose scheme has no
	// transport.
	UnsupportedSchemeError struct {
		Scheme string
	}
)

// Error implements the error interface.
func (e *UnsupportedSchemeError) Error() string {
	return fmt.Sprintf("unsupported repository scheme %q", e.Scheme)
}

// NewTransport returns the transport for http, https and file repositories.
func NewTransport(client *http.Client, userAgent string) SchemeTransport {
	h := &HTTPTransport{Client: client, UserAgent: userAgent}
	return SchemeTransport{
		"http":  h,
		"https": h,
		"file":  FileTransport{},
	}
}

// Get implements Transport.
func (t SchemeTransport) Get(ctx context.Context, repo repository.Descriptor, path string) (io.ReadCloser, error) {
	u, err := url.Parse(repo.URL)
	if err != nil {
		return nil, err
	}
	tr, ok := t[strings.ToLower(u.Scheme)]
	if !ok {
		return nil, &UnsupportedSchemeError{Scheme: u.Scheme}
	}
	return tr.Get(ctx, repo, path)
}

// ResourceURL joins the repository URL and a repository path.
func ResourceURL(repo repository.Descriptor, path string) string {
	return strings.TrimSuffix(repo.URL, "/") + "/" + strings.TrimPrefix(path, "/")
}

// Get implements Transport. Credentials of the repository are sent as basic
// authentication.
func (t *HTTPTransport) Get(ctx context.Context, repo repository.Descriptor, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ResourceURL(repo, path), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	if c := repo.Credentials; c != nil {
		req.SetBasicAuth(c.Username, c.Password)
	}

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, fmt.Errorf("%s: %w", req.URL.Redacted(), ErrNotFound)
	default:
		resp.Body.Close()
		return nil, &statusError{Code: resp.StatusCode}
	}
}

// Get implements Transport.
func (FileTransport) Get(_ context.Context, repo repository.Descriptor, path string) (io.ReadCloser, error) {
	u, err := url.Parse(ResourceURL(repo, path))
	if err != nil {
		return nil, err
	}

	p := u.Path
	// file:///C:/repo on Windows.
	if len(p) > 2 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	f, err := os.Open(filepath.FromSlash(p))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", u, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// retryable reports whether a failed Get may succeed when repeated.
func retryable(err error) bool {
	if errors.Is(err, ErrNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var status *statusError
	if errors.As(err, &status) {
		return status.Code >= http.StatusInternalServerError || status.Code == http.StatusTooManyRequests
	}
	var scheme *UnsupportedSchemeError
	if errors.As(err, &scheme) {
		return false
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
