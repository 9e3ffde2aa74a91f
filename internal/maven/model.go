// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

const (
	pomExtension = "pom"

	// maxInterpolationDepth bounds nested property references.
	maxInterpolationDepth = 16
)

type (
	// model is the effective POM of a project after inheritance, interpolation
	// and dependency management.
	model struct {
		coordinate   artifact.Coordinate
		packaging    string
		properties   map[string]string
		management   map[string]managedDependency
		dependencies []resolve.Dependency
	}

	managedDependency struct {
		version    string
		scope      artifact.Scope
		exclusions []resolve.Exclusion
	}

	// pomLoader returns the raw POM of a project. A missing POM is reported with
	// an error wrapping ErrNotFound.
	pomLoader func(ctx context.Context, c artifact.Coordinate) (*pom, error)

	// modelBuilder builds and caches effective models.
	modelBuilder struct {
		load  pomLoader
		cache map[string]*model
	}
)

func newModelBuilder(load pomLoader) *modelBuilder {
	return &modelBuilder{load: load, cache: map[string]*model{}}
}

// pomCoordinate addresses the POM of the project of c.
func pomCoordinate(c artifact.Coordinate) artifact.Coordinate {
	return c.WithExtension(pomExtension)
}

// build returns the effective model of the project of c.
func (b *modelBuilder) build(ctx context.Context, c artifact.Coordinate) (*model, error) {
	return b.buildChain(ctx, pomCoordinate(c), nil)
}

func (b *modelBuilder) buildChain(ctx context.Context, c artifact.Coordinate, chain []string) (*model, error) {
	key := c.String()
	if m, ok := b.cache[key]; ok {
		return m, nil
	}
	for _, seen := range chain {
		if seen == key {
			return nil, &ModelError{Coordinate: c, Reason: "cycle in parents or imports: " + strings.Join(append(chain, key), " -> ")}
		}
	}
	chain = append(chain, key)

	raw, err := b.load(ctx, c)
	if err != nil {
		return nil, err
	}

	var parent *model
	if raw.Parent != nil {
		pc := artifact.Coordinate{
			GroupID:    raw.Parent.GroupID,
			ArtifactID: raw.Parent.ArtifactID,
			Version:    raw.Parent.Version,
			Extension:  pomExtension,
		}
		if pc.GroupID == "" || pc.ArtifactID == "" || pc.Version == "" {
			return nil, &ModelError{Coordinate: c, Reason: "incomplete parent declaration"}
		}
		if parent, err = b.buildChain(ctx, pc, chain); err != nil {
			return nil, parentError(c, err)
		}
	}

	m, err := b.effective(ctx, c, raw, parent, chain)
	if err != nil {
		return nil, err
	}
	b.cache[key] = m
	return m, nil
}

func parentError(c artifact.Coordinate, err error) error {
	var modelErr *ModelError
	if errors.As(err, &modelErr) {
		return err
	}
	return &ModelError{Coordinate: c, Reason: "cannot load parent", Cause: err}
}

// effective merges raw into its parent model.
func (b *modelBuilder) effective(ctx context.Context, c artifact.Coordinate, raw *pom, parent *model, chain []string) (*model, error) {
	m := &model{
		packaging:  raw.Packaging,
		properties: map[string]string{},
		management: map[string]managedDependency{},
	}

	groupID, version := raw.GroupID, raw.Version
	if parent != nil {
		maps.Copy(m.properties, parent.properties)
		maps.Copy(m.management, parent.management)
		if groupID == "" {
			groupID = parent.coordinate.GroupID
		}
		if version == "" {
			version = parent.coordinate.Version
		}
		for _, key := range []string{"groupId", "artifactId", "version"} {
			m.properties["project.parent."+key] = parent.properties["project."+key]
			m.properties["parent."+key] = parent.properties["project."+key]
		}
	}
	if m.packaging == "" {
		m.packaging = "jar"
	}
	maps.Copy(m.properties, raw.Properties)

	for key, value := range map[string]string{
		"groupId":    groupID,
		"artifactId": raw.ArtifactID,
		"version":    version,
		"packaging":  m.packaging,
	} {
		m.properties["project."+key] = value
		m.properties["pom."+key] = value
	}

	m.coordinate = artifact.Coordinate{
		GroupID:    m.interpolate(groupID),
		ArtifactID: m.interpolate(raw.ArtifactID),
		Version:    m.interpolate(version),
		Extension:  pomExtension,
	}
	if m.coordinate.GroupID == "" || m.coordinate.ArtifactID == "" || m.coordinate.Version == "" {
		return nil, &ModelError{Coordinate: c, Reason: "missing groupId, artifactId or version"}
	}

	var imports []pomDependency
	for _, d := range raw.DependencyManagement.Dependencies {
		d = m.interpolateDependency(d)
		if strings.EqualFold(d.Scope, string(artifact.ScopeImport)) && d.Type == pomExtension {
			imports = append(imports, d)
			continue
		}
		dc, err := dependencyCoordinate(d)
		if err != nil {
			return nil, &ModelError{Coordinate: c, Reason: "invalid managed dependency", Cause: err}
		}
		// An empty scope leaves the declared scope of the dependency untouched.
		var scope artifact.Scope
		if d.Scope != "" {
			if scope, err = artifact.ParseScope(d.Scope); err != nil {
				return nil, &ModelError{Coordinate: c, Reason: "invalid managed dependency", Cause: err}
			}
		}
		m.management[dc.Key()] = managedDependency{version: d.Version, scope: scope, exclusions: exclusions(d)}
	}

	// Imported entries never replace entries the project declared or inherited;
	// earlier imports win over later ones.
	for _, d := range imports {
		bom, err := b.buildChain(ctx, artifact.Coordinate{GroupID: d.GroupID, ArtifactID: d.ArtifactID, Version: d.Version, Extension: pomExtension}, chain)
		if err != nil {
			var modelErr *ModelError
			if errors.As(err, &modelErr) {
				return nil, err
			}
			return nil, &ModelError{Coordinate: c, Reason: "cannot import " + d.GroupID + ":" + d.ArtifactID + ":" + d.Version, Cause: err}
		}
		for key, managed := range bom.management {
			if _, exists := m.management[key]; !exists {
				m.management[key] = managed
			}
		}
	}

	var inherited []resolve.Dependency
	if parent != nil {
		inherited = parent.dependencies
	}
	own := make([]resolve.Dependency, 0, len(raw.Dependencies))
	declared := map[string]bool{}
	for _, d := range raw.Dependencies {
		dep, err := m.dependency(m.interpolateDependency(d))
		if err != nil {
			return nil, &ModelError{Coordinate: c, Reason: "invalid dependency " + d.GroupID + ":" + d.ArtifactID, Cause: err}
		}
		declared[dep.Coordinate.Key()] = true
		own = append(own, dep)
	}
	for _, dep := range inherited {
		if !declared[dep.Coordinate.Key()] {
			m.dependencies = append(m.dependencies, dep)
		}
	}
	m.dependencies = append(m.dependencies, own...)

	return m, nil
}

// dependency converts d, filling version and scope from the project's own
// dependency management.
func (m *model) dependency(d pomDependency) (resolve.Dependency, error) {
	c, err := dependencyCoordinate(d)
	if err != nil {
		return resolve.Dependency{}, err
	}

	managed, hasManaged := m.management[c.Key()]
	if c.Version == "" && hasManaged {
		c.Version = managed.version
	}
	if c.Version == "" {
		return resolve.Dependency{}, errors.New("no version and no managed version")
	}

	scopeName := d.Scope
	if scopeName == "" && hasManaged {
		scopeName = string(managed.scope)
	}
	scope, err := artifact.ParseScope(scopeName)
	if err != nil {
		return resolve.Dependency{}, err
	}

	excl := exclusions(d)
	if hasManaged {
		excl = append(excl, managed.exclusions...)
	}

	return resolve.Dependency{
		Coordinate: c,
		Scope:      scope,
		Optional:   strings.EqualFold(d.Optional, "true"),
		Exclusions: excl,
	}, nil
}

// dependencyCoordinate maps the type of d to extension and classifier.
func dependencyCoordinate(d pomDependency) (artifact.Coordinate, error) {
	if d.GroupID == "" || d.ArtifactID == "" {
		return artifact.Coordinate{}, errors.New("missing groupId or artifactId")
	}
	ext, classifier := typeExtension(d.Type, d.Classifier)
	return artifact.Coordinate{
		GroupID:    d.GroupID,
		ArtifactID: d.ArtifactID,
		Extension:  ext,
		Classifier: classifier,
		Version:    d.Version,
	}, nil
}

// typeExtension returns the file extension and classifier of a dependency type.
func typeExtension(typ, classifier string) (string, string) {
	switch typ {
	case "", "jar", "bundle", "maven-plugin", "ejb", "ejb-client":
		return "jar", classifier
	case "test-jar":
		if classifier == "" {
			classifier = "tests"
		}
		return "jar", classifier
	case "java-source":
		if classifier == "" {
			classifier = "sources"
		}
		return "jar", classifier
	case "javadoc":
		if classifier == "" {
			classifier = "javadoc"
		}
		return "jar", classifier
	default:
		return typ, classifier
	}
}

func exclusions(d pomDependency) []resolve.Exclusion {
	out := make([]resolve.Exclusion, 0, len(d.Exclusions))
	for _, e := range d.Exclusions {
		if e.GroupID == "" && e.ArtifactID == "" {
			continue
		}
		out = append(out, resolve.Exclusion{GroupID: orWildcard(e.GroupID), ArtifactID: orWildcard(e.ArtifactID)})
	}
	return out
}

func orWildcard(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func (m *model) interpolateDependency(d pomDependency) pomDependency {
	d.GroupID = m.interpolate(d.GroupID)
	d.ArtifactID = m.interpolate(d.ArtifactID)
	d.Version = m.interpolate(d.Version)
	d.Type = m.interpolate(d.Type)
	d.Classifier = m.interpolate(d.Classifier)
	d.Scope = m.interpolate(d.Scope)
	d.Optional = m.interpolate(d.Optional)
	excl := make([]pomExclusion, len(d.Exclusions))
	for i, e := range d.Exclusions {
		excl[i] = pomExclusion{GroupID: m.interpolate(e.GroupID), ArtifactID: m.interpolate(e.ArtifactID)}
	}
	d.Exclusions = excl
	return d
}

// interpolate replaces ${name} references with model properties. Unknown
// references are kept verbatim.
func (m *model) interpolate(s string) string {
	for range maxInterpolationDepth {
		if !strings.Contains(s, "${") {
			return s
		}
		next := expandOnce(s, m.properties)
		if next == s {
			return s
		}
		s = next
	}
	return s
}

func expandOnce(s string, props map[string]string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "${")
		if start < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			b.WriteString(s)
			return b.String()
		}
		end += start

		name := s[start+2 : end]
		b.WriteString(s[:start])
		if value, ok := props[name]; ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[start : end+1])
		}
		s = s[end+1:]
	}
}

// String is used in log messages.
func (m *model) String() string {
	return fmt.Sprintf("%s (%d dependencies)", m.coordinate, len(m.dependencies))
}
