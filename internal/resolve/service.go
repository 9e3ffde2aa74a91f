// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

type (
	// Exclusion removes a project (and its subtree) from the transitive
	// dependencies of a dependency. "*" matches any value.
	Exclusion struct {
		GroupID    string
		ArtifactID string
	}

	// Dependency is a coordinate plus the attributes of the edge leading to it.
	Dependency struct {
		Coordinate artifact.Coordinate
		Scope      artifact.Scope
		Optional   bool
		Exclusions []Exclusion
	}

	// Request asks a Service to resolve Root transitively.
	Request struct {
		Root         Dependency
		Repositories []repository.Descriptor
		// Scopes lists the edge scopes kept in the result. Edges of other scopes are
		// removed together with their subtrees.
		Scopes []artifact.Scope
	}

	// Result is a resolved dependency tree.
	Result struct {
		Root *Node
	}

	// Service resolves dependency trees.
	//
	// Implementations must resolve transitively, honor Request.Scopes and report
	// unresolvable states as errors instead of partial results.
	Service interface {
		Resolve(ctx context.Context, req Request) (*Result, error)
	}
)

// Matches reports whether the exclusion applies to c.
func (e Exclusion) Matches(c artifact.Coordinate) bool {
	return (e.GroupID == "*" || e.GroupID == c.GroupID) &&
		(e.ArtifactID == "*" || e.ArtifactID == c.ArtifactID)
}

// Includes reports whether scope s is kept by the request.
func (r Request) Includes(s artifact.Scope) bool {
	for _, scope := range r.Scopes {
		if scope == s {
			return true
		}
	}
	return false
}

// RootFile returns the local file of the root artifact.
func (r *Result) RootFile() string {
	if r == nil || r.Root == nil {
		return ""
	}
	return r.Root.File
}
