// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

// LocalRepository is a directory using the default Maven layout.
type LocalRepository struct {
	root string
}

// DefaultLocalRepository returns ~/.m2/repository.
func DefaultLocalRepository() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".m2", "repository")
	}
	return filepath.Join(home, ".m2", "repository")
}

// NewLocalRepository creates a local repository rooted at dir. The directory is
// created on first write.
func NewLocalRepository(dir string) (*LocalRepository, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve local repository %s: %w", dir, err)
	}
	return &LocalRepository{root: abs}, nil
}

// Root returns the absolute root directory.
func (l *LocalRepository) Root() string { return l.root }

// Path returns the absolute file of c.
func (l *LocalRepository) Path(c artifact.Coordinate) string {
	return filepath.Join(l.root, filepath.FromSlash(c.RepositoryPath()))
}

// MetadataPath returns where the metadata of repo for the repository directory
// dir is cached.
func (l *LocalRepository) MetadataPath(repo repository.Descriptor, dir string) string {
	name := strings.TrimSuffix(MetadataFile, ".xml") + "-" + repo.ID + ".xml"
	return filepath.Join(l.root, filepath.FromSlash(dir), name)
}

// Has reports whether c is present.
func (l *LocalRepository) Has(c artifact.Coordinate) bool {
	info, err := os.Stat(l.Path(c))
	return err == nil && info.Mode().IsRegular()
}

// createTemp creates a temporary file next to dest, creating its directory.
func createTemp(dest string) (*os.File, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return os.CreateTemp(dir, "."+filepath.Base(dest)+".part-*")
}
