// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/lars-sh/jarrunner/internal/repository"
	"github.com/lars-sh/jarrunner/pkg/artifact"
)

type fakeService struct {
	result   *Result
	err      error
	requests []Request
}

func (f *fakeService) Resolve(_ context.Context, req Request) (*Result, error) {
	f.requests = append(f.requests, req)
	return f.result, f.err
}

func TestResolverBuildsRuntimeRequest(t *testing.T) {
	t.Parallel()

	root := artifact.MustParse("com.example:app:1.0")
	repos := []repository.Descriptor{{ID: "central", Layout: repository.DefaultLayout, URL: "https://repo"}}
	svc := &fakeService{result: &Result{Root: &Node{Coordinate: root, File: "/repo/app-1.0.jar"}}}

	result, err := NewResolver(svc).Resolve(context.Background(), root, repos)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if result.RootFile() != "/repo/app-1.0.jar" {
		t.Errorf("RootFile() = %q", result.RootFile())
	}

	if len(svc.requests) != 1 {
		t.Fatalf("service called %d times, want 1", len(svc.requests))
	}
	req := svc.requests[0]
	if req.Root.Coordinate != root || req.Root.Scope != artifact.ScopeCompile {
		t.Errorf("root dependency = %+v, want %s at compile scope", req.Root, root)
	}
	if len(req.Repositories) != 1 || req.Repositories[0].ID != "central" {
		t.Errorf("repositories = %v, want only central", req.Repositories)
	}
	if !req.Includes(artifact.ScopeCompile) || !req.Includes(artifact.ScopeRuntime) {
		t.Errorf("scopes = %v, want compile and runtime", req.Scopes)
	}
	if req.Includes(artifact.ScopeTest) || req.Includes(artifact.ScopeProvided) {
		t.Errorf("scopes = %v must not include test or provided", req.Scopes)
	}

	repos[0].ID = "mutated"
	if req.Repositories[0].ID != "central" {
		t.Error("request aliases the caller's repository slice")
	}
}

func TestResolverPropagatesErrorsVerbatim(t *testing.T) {
	t.Parallel()

	want := errors.New("could not find artifact com.example:missing:1.0")
	svc := &fakeService{err: want}

	_, err := NewResolver(svc).Resolve(context.Background(), artifact.MustParse("com.example:missing:1.0"), nil)
	if err != want {
		t.Fatalf("error = %v, want the service error unchanged", err)
	}
	if len(svc.requests) != 1 {
		t.Errorf("service called %d times, want exactly one attempt", len(svc.requests))
	}
}

func TestResolverRejectsIncompleteResult(t *testing.T) {
	t.Parallel()

	root := artifact.MustParse("com.example:app:1.0")
	for _, result := range []*Result{nil, {}, {Root: &Node{Coordinate: root}}} {
		svc := &fakeService{result: result}
		_, err := NewResolver(svc).Resolve(context.Background(), root, nil)
		if !errors.Is(err, ErrIncompleteResult) {
			t.Errorf("Resolve with result %+v: error = %v, want ErrIncompleteResult", result, err)
		}
	}
}
