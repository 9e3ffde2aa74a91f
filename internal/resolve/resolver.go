// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

// ErrIncompleteResult is returned when a Service reports success without a root
// artifact file.
var ErrIncompleteResult = errors.New("resolution service returned an incomplete result")

// RuntimeScopes are the dependency scopes needed to run an application.
var RuntimeScopes = []artifact.Scope{artifact.ScopeCompile, artifact.ScopeRuntime}

// Resolver resolves the runtime dependencies of an artifact.
type Resolver struct {
	service Service
}

// NewResolver creates a Resolver delegating to svc.
func NewResolver(svc Service) *Resolver {
	return &Resolver{service: svc}
}

// Request returns the request Resolve sends for root.
func (r *Resolver) Request(root artifact.Coordinate, repositories []repository.Descriptor) Request {
	repos := make([]repository.Descriptor, len(repositories))
	copy(repos, repositories)
	scopes := make([]artifact.Scope, len(RuntimeScopes))
	copy(scopes, RuntimeScopes)

	return Request{
		Root:         Dependency{Coordinate: root, Scope: artifact.ScopeCompile},
		Repositories: repos,
		Scopes:       scopes,
	}
}

// Resolve resolves root with all of its compile and runtime dependencies using
// only the given repositories. Errors of the service are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, root artifact.Coordinate, repositories []repository.Descriptor) (*Result, error) {
	result, err := r.service.Resolve(ctx, r.Request(root, repositories))
	if err != nil {
		return nil, err
	}
	if result == nil || result.Root == nil || result.Root.File == "" {
		return nil, fmt.Errorf("%w: no file for %s", ErrIncompleteResult, root)
	}
	return result, nil
}
