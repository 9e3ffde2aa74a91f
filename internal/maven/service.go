// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

const (
	// DefaultHTTPTimeout bounds a single HTTP request.
	DefaultHTTPTimeout = 60 * time.Second
	// DefaultRetries is the number of retries of transient transfer failures.
	DefaultRetries = 3
	// DefaultUserAgent identifies jarrunner to repositories.
	DefaultUserAgent = "jarrunner"
)

type (
	// Options configures a Service.
	Options struct {
		// LocalRepository defaults to DefaultLocalRepository().
		LocalRepository string
		Offline         bool
		ChecksumPolicy  ChecksumPolicy
		HTTPTimeout     time.Duration
		// Retries of transient failures; negative disables retrying.
		Retries   int
		UserAgent string
		Logger    *slog.Logger
		// Transport defaults to NewTransport over an http.Client using HTTPTimeout.
		Transport Transport
		// BackOff returns the retry delays; defaults to exponential backoff.
		BackOff func() backoff.BackOff
	}

	// Service resolves dependency trees from Maven repositories.
	Service struct {
		local  *LocalRepository
		opts   Options
		logger *slog.Logger
	}
)

var _ resolve.Service = (*Service)(nil)

// New creates a Service.
func New(opts Options) (*Service, error) {
	if opts.LocalRepository == "" {
		opts.LocalRepository = DefaultLocalRepository()
	}
	policy, err := ParseChecksumPolicy(string(opts.ChecksumPolicy))
	if err != nil {
		return nil, err
	}
	opts.ChecksumPolicy = policy
	if opts.HTTPTimeout <= 0 {
		opts.HTTPTimeout = DefaultHTTPTimeout
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Transport == nil {
		opts.Transport = NewTransport(&http.Client{Timeout: opts.HTTPTimeout}, opts.UserAgent)
	}
	if opts.BackOff == nil {
		opts.BackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 250 * time.Millisecond
			b.MaxElapsedTime = 2 * time.Minute
			return b
		}
	}

	local, err := NewLocalRepository(opts.LocalRepository)
	if err != nil {
		return nil, err
	}
	return &Service{local: local, opts: opts, logger: opts.Logger}, nil
}

// LocalRepository returns the local repository used as cache.
func (s *Service) LocalRepository() *LocalRepository { return s.local }

// Resolve implements resolve.Service.
func (s *Service) Resolve(ctx context.Context, req resolve.Request) (*resolve.Result, error) {
	if req.Root.Scope == "" {
		req.Root.Scope = artifact.ScopeCompile
	}
	f := &fetcher{
		transport:  s.opts.Transport,
		local:      s.local,
		offline:    s.opts.Offline,
		policy:     s.opts.ChecksumPolicy,
		retries:    uint64(s.opts.Retries),
		newBackOff: s.opts.BackOff,
		logger:     s.logger,
	}
	c := &collector{
		req:      req,
		fetch:    f,
		models:   newModelBuilder(s.pomLoader(f, req.Repositories)),
		versions: &versionSelector{repos: req.Repositories, fetch: f},
		logger:   s.logger,
	}

	s.logger.Debug("collecting dependencies", "artifact", req.Root.Coordinate.String(), "repositories", len(req.Repositories))
	root, err := c.collect(ctx)
	if err != nil {
		return nil, err
	}
	return &resolve.Result{Root: root}, nil
}

func (s *Service) pomLoader(f *fetcher, repos []repository.Descriptor) pomLoader {
	return func(ctx context.Context, c artifact.Coordinate) (*pom, error) {
		file, err := f.artifact(ctx, repos, c)
		if err != nil {
			return nil, err
		}
		r, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open POM: %w", err)
		}
		defer r.Close()

		p, err := parsePOM(r)
		if err != nil {
			return nil, &ModelError{Coordinate: c, Reason: "cannot parse " + file, Cause: err}
		}
		return p, nil
	}
}
