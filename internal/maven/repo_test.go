// SPDX-License-Identifier: MPL-2.0

package maven

import (
	"crypto/sha1" //nolint:gosec // Maven repositories publish SHA-1 checksums.
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/cenkalti/backoff/v4"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/internal/resolve"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

// fakeRepo is an in-memory Maven repository.
type fakeRepo struct {
	mu    sync.Mutex
	files map[string][]byte
	hits  map[string]int
	// fail returns a status to send instead of the file, or 0.
	fail func(path string, hit int) int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{files: map[string][]byte{}, hits: map[string]int{}}
}

// put stores content and its .sha1 checksum.
func (r *fakeRepo) put(path string, content []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum := sha1.Sum(content) //nolint:gosec // test fixture
	r.files[path] = content
	r.files[path+checksumSuffix] = []byte(hex.EncodeToString(sum[:]) + "  " + filepath.Base(path) + "\n")
}

// project stores the POM of coord (g:a:v) with body inside <project> and, unless
// the body declares pom packaging, a JAR.
func (r *fakeRepo) project(coord, body string) {
	c := artifact.MustParse(coord)
	doc := fmt.Sprintf("<project>\n<groupId>%s</groupId>\n<artifactId>%s</artifactId>\n<version>%s</version>\n%s\n</project>\n",
		c.GroupID, c.ArtifactID, c.Version, body)
	r.put(c.WithExtension(pomExtension).RepositoryPath(), []byte(doc))
	if !strings.Contains(body, "<packaging>pom</packaging>") {
		r.put(c.RepositoryPath(), []byte("jar of "+coord))
	}
}

func (r *fakeRepo) hitCount(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[path]
}

func (r *fakeRepo) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/")

	r.mu.Lock()
	r.hits[path]++
	hit := r.hits[path]
	content, ok := r.files[path]
	fail := r.fail
	r.mu.Unlock()

	if fail != nil {
		if status := fail(path, hit); status != 0 {
			w.WriteHeader(status)
			return
		}
	}
	if !ok {
		http.NotFound(w, req)
		return
	}
	_, _ = w.Write(content)
}

// writeTo copies the repository into dir for file:// tests.
func (r *fakeRepo) writeTo(t *testing.T, dir string) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	for path, content := range r.files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func dependencies(deps ...string) string {
	return "<dependencies>" + strings.Join(deps, "") + "</dependencies>"
}

// dep renders a <dependency> for g:a:v with extra elements.
func dep(coord, extra string) string {
	parts := strings.Split(coord, ":")
	version := ""
	if len(parts) > 2 {
		version = "<version>" + parts[2] + "</version>"
	}
	return fmt.Sprintf("<dependency><groupId>%s</groupId><artifactId>%s</artifactId>%s%s</dependency>", parts[0], parts[1], version, extra)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.LocalRepository == "" {
		opts.LocalRepository = t.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = discardLogger()
	}
	opts.BackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	svc, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return svc
}

func serve(t *testing.T, h http.Handler) repository.Descriptor {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return repository.Descriptor{ID: "test", Layout: repository.DefaultLayout, URL: srv.URL + "/maven2"}
}

func request(root string, repos ...repository.Descriptor) resolve.Request {
	return resolve.Request{
		Root:         resolve.Dependency{Coordinate: artifact.MustParse(root), Scope: artifact.ScopeCompile},
		Repositories: repos,
		Scopes:       resolve.RuntimeScopes,
	}
}

// tree renders n as indented "coordinate scope" lines.
func tree(n *resolve.Node) string {
	var b strings.Builder
	_ = n.Walk(func(node *resolve.Node, depth int) error {
		fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat("  ", depth), node.Coordinate, node.Scope)
		return nil
	})
	return b.String()
}

// stripPrefix removes the /maven2 prefix used by serve.
func stripPrefix(h http.Handler) http.Handler {
	return http.StripPrefix("/maven2", h)
}
