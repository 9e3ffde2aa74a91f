// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The scripts run the jarrunner command against file repositories written
// by the mvnproject command, with a fake java that prints its arguments one
// per line instead of starting a JVM.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	cmd "github.com/lars-sh/jarrunner/cmd/jarrunner"
	"github.com/lars-sh/jarrunner/internal/testutil"
)

// fakeJavaExitEnv sets the exit value of the fake java command.
const fakeJavaExitEnv = "FAKE_JAVA_EXIT"

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"jarrunner": func() { os.Exit(cmd.Main()) },
		"java":      fakeJava,
	})
}

// fakeJava prints every argument on its own line and exits with the value of
// FAKE_JAVA_EXIT.
func fakeJava() {
	for _, arg := range os.Args[1:] {
		fmt.Println(arg)
	}
	code, _ := strconv.Atoi(os.Getenv(fakeJavaExitEnv))
	os.Exit(code)
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			repo := testutil.NewMavenRepo(filepath.Join(env.WorkDir, "repo"))
			env.Setenv("REPO_URL", repo.URL())

			// Isolate the scripts from the user configuration and caches.
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("USERPROFILE", env.WorkDir)
			env.Setenv("XDG_CONFIG_HOME", filepath.Join(env.WorkDir, "config"))
			env.Setenv("APPDATA", filepath.Join(env.WorkDir, "config"))
			env.Setenv("JAVA_HOME", "")
			env.Setenv("JARRUNNER_LOCAL_REPOSITORY", filepath.Join(env.WorkDir, "m2"))
			env.Setenv(fakeJavaExitEnv, "0")
			return nil
		},
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"mvnproject": mvnProject,
		},
		ContinueOnError: true,
	})
}

// mvnProject writes a project into $WORK/repo:
//
//	mvnproject <groupId:artifactId:version> <mainClass|-> [groupId:artifactId:version[@scope]...]
func mvnProject(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mvnproject")
	}
	if len(args) < 2 {
		ts.Fatalf("usage: mvnproject coordinate mainClass|- [dependency[@scope]...]")
	}

	mainClass := args[1]
	if mainClass == "-" {
		mainClass = ""
	}

	deps := make([]testutil.Dependency, 0, len(args)-2)
	for _, arg := range args[2:] {
		coordinate, scope, _ := strings.Cut(arg, "@")
		deps = append(deps, testutil.Dependency{Coordinate: coordinate, Scope: scope})
	}

	repo := testutil.NewMavenRepo(ts.MkAbs("repo"))
	ts.Check(repo.Project(args[0], mainClass, deps...))
}
