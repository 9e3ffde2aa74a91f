// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

type (
	// collector builds the dependency tree of one request.
	collector struct {
		req      resolve.Request
		fetch    *fetcher
		models   *modelBuilder
		versions *versionSelector
		logger   *slog.Logger
	}

	// pendingNode is a resolved node whose dependencies are not expanded yet.
	pendingNode struct {
		node       *resolve.Node
		model      *model
		depth      int
		exclusions []resolve.Exclusion
	}
)

// skippedScopes are never part of a runtime dependency tree.
var skippedScopes = []artifact.Scope{artifact.ScopeTest, artifact.ScopeProvided, artifact.ScopeSystem, artifact.ScopeImport}

// collect resolves the request breadth-first. The first occurrence of an
// artifact key wins: nearer declarations beat deeper ones, and at equal depth the
// earlier declaration wins. The dependency management of the root overrides the
// versions of transitive dependencies.
func (c *collector) collect(ctx context.Context) (*resolve.Node, error) {
	rootDep := c.req.Root
	rootCoord, err := c.versions.resolve(ctx, rootDep.Coordinate)
	if err != nil {
		return nil, err
	}
	rootFile, err := c.fetch.artifact(ctx, c.req.Repositories, rootCoord)
	if err != nil {
		return nil, err
	}
	rootModel, err := c.model(ctx, rootCoord)
	if err != nil {
		return nil, err
	}

	root := &resolve.Node{Coordinate: rootCoord, Scope: rootDep.Scope, File: rootFile}
	seen := map[string]bool{rootCoord.Key(): true}
	management := rootModel.management
	queue := []pendingNode{{node: root, model: rootModel, exclusions: rootDep.Exclusions}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, dep := range cur.model.dependencies {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if slices.Contains(skippedScopes, dep.Scope) {
				continue
			}
			if dep.Optional && cur.depth > 0 {
				continue
			}
			if excluded(cur.exclusions, dep.Coordinate) {
				continue
			}

			coord, exclusionsBelow := dep.Coordinate, dep.Exclusions
			if cur.depth > 0 {
				if managed, ok := management[coord.Key()]; ok {
					if managed.version != "" {
						coord.Version = managed.version
					}
					if managed.scope != "" {
						dep.Scope = managed.scope
					}
					exclusionsBelow = append(slices.Clone(exclusionsBelow), managed.exclusions...)
				}
			}

			scope := cur.node.Scope.Propagate(dep.Scope)
			if !c.req.Includes(scope) {
				continue
			}
			if seen[coord.Key()] {
				continue
			}
			seen[coord.Key()] = true

			if coord, err = c.versions.resolve(ctx, coord); err != nil {
				return nil, err
			}
			file, err := c.fetch.artifact(ctx, c.req.Repositories, coord)
			if err != nil {
				return nil, err
			}
			depModel, err := c.model(ctx, coord)
			if err != nil {
				return nil, err
			}

			child := &resolve.Node{Coordinate: coord, Scope: scope, File: file}
			cur.node.Children = append(cur.node.Children, child)
			queue = append(queue, pendingNode{
				node:       child,
				model:      depModel,
				depth:      cur.depth + 1,
				exclusions: append(slices.Clone(cur.exclusions), exclusionsBelow...),
			})
		}
	}
	return root, nil
}

// model returns the effective model of c. A project without a POM has no
// dependencies.
func (c *collector) model(ctx context.Context, coord artifact.Coordinate) (*model, error) {
	m, err := c.models.build(ctx, coord)
	var notFound *ArtifactNotFoundError
	if errors.As(err, &notFound) && notFound.Coordinate == pomCoordinate(coord) {
		c.logger.Warn("the POM is missing, no dependency information available", "artifact", coord.String())
		return &model{coordinate: pomCoordinate(coord)}, nil
	}
	return m, err
}

func excluded(exclusions []resolve.Exclusion, c artifact.Coordinate) bool {
	for _, e := range exclusions {
		if e.Matches(c) {
			return true
		}
	}
	return false
}

// versionSelector resolves version ranges through repository metadata.
type versionSelector struct {
	repos []repository.Descriptor
	fetch *fetcher
}

// resolve returns c with a concrete version. Ranges select the highest version
// available in any repository.
func (s *versionSelector) resolve(ctx context.Context, c artifact.Coordinate) (artifact.Coordinate, error) {
	if !IsRange(c.Version) {
		return c, nil
	}
	r, err := ParseVersionRange(c.Version)
	if err != nil {
		return c, &VersionRangeError{Project: c.ProjectKey(), Range: c.Version}
	}

	var available []string
	for _, repo := range s.repos {
		md, err := s.fetch.metadata(ctx, repo, c.ProjectDir())
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return c, err
		}
		for _, v := range md.versions() {
			if !slices.Contains(available, v) {
				available = append(available, v)
			}
		}
	}

	v, ok := r.Select(available)
	if !ok {
		slices.SortFunc(available, CompareVersions)
		return c, &VersionRangeError{Project: c.ProjectKey(), Range: c.Version, Available: available}
	}
	return c.WithVersion(v), nil
}
