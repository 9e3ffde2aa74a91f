// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"crypto/sha1" //nolint:gosec // Maven repositories publish SHA-1 digests
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lars-sh/jarrunner/pkg/artifact"
)

type (
	// MavenRepo is a Maven repository in the default layout rooted at Root.
	MavenRepo struct {
		Root string
	}

	// Dependency is one <dependency> of a project written by MavenRepo.Project.
	Dependency struct {
		// Coordinate is groupId:artifactId:version.
		Coordinate string
		Scope      string
		Optional   bool
	}
)

// NewMavenRepo returns a repository rooted at root.
func NewMavenRepo(root string) *MavenRepo {
	return &MavenRepo{Root: root}
}

// URL returns the file URL of the repository.
func (r *MavenRepo) URL() string {
	path := filepath.ToSlash(r.Root)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}

// Put stores data at the repository-relative path together with its .sha1 file.
func (r *MavenRepo) Put(path string, data []byte) error {
	full := filepath.Join(r.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return err
	}
	sum := sha1.Sum(data) //nolint:gosec // see import
	return os.WriteFile(full+".sha1", []byte(hex.EncodeToString(sum[:])+"\n"), 0o644)
}

// Project stores the POM of coordinate (groupId:artifactId:version) declaring
// deps, and a JAR whose manifest names mainClass. An empty mainClass writes a
// JAR with a manifest but no Main-Class.
func (r *MavenRepo) Project(coordinate, mainClass string, deps ...Dependency) error {
	c, err := artifact.Parse(coordinate)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("<project>\n")
	sb.WriteString("  <modelVersion>4.0.0</modelVersion>\n")
	fmt.Fprintf(&sb, "  <groupId>%s</groupId>\n  <artifactId>%s</artifactId>\n  <version>%s</version>\n",
		c.GroupID, c.ArtifactID, c.Version)
	if len(deps) > 0 {
		sb.WriteString("  <dependencies>\n")
		for _, dep := range deps {
			d, err := artifact.Parse(dep.Coordinate)
			if err != nil {
				return err
			}
			fmt.Fprintf(&sb, "    <dependency>\n      <groupId>%s</groupId>\n      <artifactId>%s</artifactId>\n      <version>%s</version>\n",
				d.GroupID, d.ArtifactID, d.Version)
			if dep.Scope != "" {
				fmt.Fprintf(&sb, "      <scope>%s</scope>\n", dep.Scope)
			}
			if dep.Optional {
				sb.WriteString("      <optional>true</optional>\n")
			}
			sb.WriteString("    </dependency>\n")
		}
		sb.WriteString("  </dependencies>\n")
	}
	sb.WriteString("</project>\n")

	if err := r.Put(c.WithExtension("pom").RepositoryPath(), []byte(sb.String())); err != nil {
		return err
	}

	manifest := "Manifest-Version: 1.0\r\n\r\n"
	if mainClass != "" {
		manifest = MainClassManifest(mainClass)
	}
	jar, err := JarBytes(&manifest)
	if err != nil {
		return err
	}
	return r.Put(c.WithExtension("jar").RepositoryPath(), jar)
}

// Path returns the absolute path of the file stored for coordinate.
func (r *MavenRepo) Path(coordinate string) string {
	return filepath.Join(r.Root, filepath.FromSlash(artifact.MustParse(coordinate).RepositoryPath()))
}

// MustProject is Project failing the test on error.
func (r *MavenRepo) MustProject(t testing.TB, coordinate, mainClass string, deps ...Dependency) {
	t.Helper()
	if err := r.Project(coordinate, mainClass, deps...); err != nil {
		t.Fatalf("failed to write project %s: %v", coordinate, err)
	}
}
