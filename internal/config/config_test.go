// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/lars-sh/jarrunner/internal/issue"
	"github.com/lars-sh/jarrunner/internal/platform"
	"github.com/lars-sh/jarrunner/internal/repository"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// isolated returns options that never see the user's real configuration.
func isolated(t *testing.T) LoadOptions {
	t.Helper()
	return LoadOptions{ConfigDirPath: t.TempDir(), BaseDir: t.TempDir()}
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if len(cfg.Repositories) != 1 || cfg.Repositories[0] != (RepositoryConfig{ID: CentralID, URL: CentralURL}) {
		t.Errorf("expected Maven Central as the only default repository, got %v", cfg.Repositories)
	}
	if cfg.LocalRepository != "" || cfg.Offline {
		t.Errorf("unexpected local repository defaults: %q offline=%v", cfg.LocalRepository, cfg.Offline)
	}
	if cfg.ChecksumPolicy != ChecksumPolicyWarn {
		t.Errorf("expected default checksum policy warn, got %s", cfg.ChecksumPolicy)
	}
	if cfg.HTTP.Timeout != DefaultHTTPTimeout || cfg.HTTP.Retries != DefaultHTTPRetries || cfg.HTTP.UserAgent != DefaultUserAgent {
		t.Errorf("unexpected http defaults: %+v", cfg.HTTP)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto || cfg.UI.Verbose {
		t.Errorf("unexpected ui defaults: %+v", cfg.UI)
	}
	if valid, errs := cfg.IsValid(); !valid {
		t.Errorf("default config should be valid, got %v", errs)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, path, err := loadWithOptions(context.Background(), isolated(t))
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != "" {
		t.Errorf("resolved path = %q, want empty", path)
	}
	if cfg.ChecksumPolicy != ChecksumPolicyWarn || cfg.HTTP.Timeout != DefaultHTTPTimeout {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFromConfigDir(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	want := writeConfig(t, opts.ConfigDirPath, `
repositories: [
	{id: "central", url: "https://repo.maven.apache.org/maven2"},
	{id: "internal", url: "https://repo.example.com/maven", username: "ci", password: "secret"},
]
local_repository: "/var/cache/m2"
offline: true
checksum_policy: "fail"
java: {
	path: "/opt/jdk/bin/java"
	options: ["-Xmx512m", "-Dapp.mode=test"]
}
http: {
	timeout: "15s"
	retries: 1
}
ui: color_scheme: "dark"
`)

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != want {
		t.Errorf("resolved path = %q, want %q", path, want)
	}

	if len(cfg.Repositories) != 2 || cfg.Repositories[1].ID != "internal" || cfg.Repositories[1].Username != "ci" {
		t.Errorf("unexpected repositories: %+v", cfg.Repositories)
	}
	if cfg.LocalRepository != "/var/cache/m2" || !cfg.Offline || cfg.ChecksumPolicy != ChecksumPolicyFail {
		t.Errorf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Java.Path != "/opt/jdk/bin/java" || !slices.Equal(cfg.Java.Options, []string{"-Xmx512m", "-Dapp.mode=test"}) {
		t.Errorf("unexpected java config: %+v", cfg.Java)
	}
	if cfg.HTTP.Timeout != 15*time.Second || cfg.HTTP.Retries != 1 {
		t.Errorf("unexpected http config: %+v", cfg.HTTP)
	}
	if cfg.HTTP.UserAgent != DefaultUserAgent {
		t.Errorf("unset user agent should keep its default, got %q", cfg.HTTP.UserAgent)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("color scheme = %q, want dark", cfg.UI.ColorScheme)
	}
}

func TestLoadPrefersConfigDirOverBaseDir(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	writeConfig(t, opts.BaseDir, `offline: true`)

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if !cfg.Offline || !strings.HasPrefix(path, opts.BaseDir) {
		t.Errorf("expected the base dir config to be used, got path %q", path)
	}

	want := writeConfig(t, opts.ConfigDirPath, `offline: false`)
	cfg, path, err = loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if cfg.Offline || path != want {
		t.Errorf("expected the config dir file to win, got path %q offline=%v", path, cfg.Offline)
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, `offline: true`)
	explicit := filepath.Join(t.TempDir(), "custom.cue")
	if err := os.WriteFile(explicit, []byte(`http: retries: 7`), 0o644); err != nil {
		t.Fatal(err)
	}
	opts.ConfigFilePath = explicit

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadWithOptions() error = %v", err)
	}
	if path != explicit || cfg.HTTP.Retries != 7 || cfg.Offline {
		t.Errorf("explicit file should be used exclusively, got path %q cfg %+v", path, cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		contains []string
		sentinel error
	}{
		{
			name:     "syntax error",
			content:  `offline: `,
			contains: []string{"load configuration"},
		},
		{
			name:     "unknown checksum policy",
			content:  `checksum_policy: "sometimes"`,
			contains: []string{"checksum_policy"},
		},
		{
			name:     "unknown key",
			content:  `mirror: "x"`,
			contains: []string{"mirror"},
		},
		{
			name:     "negative retries",
			content:  `http: retries: -1`,
			contains: []string{"http.retries"},
		},
		{
			name:     "malformed timeout",
			content:  `http: timeout: "soon"`,
			contains: []string{"http.timeout"},
		},
		{
			name:     "repository without url",
			content:  `repositories: [{id: "a"}]`,
			contains: []string{"repositories[0]"},
		},
		{
			name: "duplicate repository ids",
			content: `repositories: [
	{id: "a", url: "https://one"},
	{id: "a", url: "https://two"},
]`,
			contains: []string{"duplicate id", "repositories[1]"},
			sentinel: ErrInvalidRepositoryConfig,
		},
		{
			name:     "blank repository url",
			content:  `repositories: [{id: "a", url: "   "}]`,
			contains: []string{"url must not be blank"},
			sentinel: ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := isolated(t)
			writeConfig(t, opts.ConfigDirPath, tt.content)

			_, _, err := loadWithOptions(context.Background(), opts)
			if err == nil {
				t.Fatal("loadWithOptions() should fail")
			}
			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("error should be an ActionableError, got %T", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q should contain %q", err, want)
				}
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("error should wrap %v, got %v", tt.sentinel, err)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	opts.ConfigFilePath = filepath.Join(opts.BaseDir, "missing.cue")

	_, err := NewProvider().Load(context.Background(), opts)
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("Load() error = %v, want ActionableError", err)
	}
	if !ae.HasSuggestions() || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", ae.Format(false))
	}
}

func TestLoadCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, isolated(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

//nolint:paralleltest // t.Setenv
func TestLoadEnvironmentOverrides(t *testing.T) {
	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, `offline: false
http: retries: 2`)

	t.Setenv("JARRUNNER_OFFLINE", "true")
	t.Setenv("JARRUNNER_HTTP_RETRIES", "9")
	t.Setenv("JARRUNNER_HTTP_TIMEOUT", "90s")
	t.Setenv("JARRUNNER_CHECKSUM_POLICY", "ignore")

	cfg, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Offline || cfg.HTTP.Retries != 9 || cfg.HTTP.Timeout != 90*time.Second || cfg.ChecksumPolicy != ChecksumPolicyIgnore {
		t.Errorf("environment overrides not applied: %+v", cfg)
	}

	t.Setenv("JARRUNNER_CHECKSUM_POLICY", "sometimes")
	_, err = NewProvider().Load(context.Background(), opts)
	if !errors.Is(err, ErrInvalidChecksumPolicy) {
		t.Errorf("invalid environment value should be rejected, got %v", err)
	}
}

func TestGenerateCUERoundTrip(t *testing.T) {
	t.Parallel()

	want := DefaultConfig()
	want.Repositories = []RepositoryConfig{
		{ID: "central", URL: "https://repo.maven.apache.org/maven2"},
		{ID: "private", URL: "https://repo.example.com", Username: "u", Password: `p"w`},
	}
	want.LocalRepository = "/tmp/m2"
	want.ChecksumPolicy = ChecksumPolicyFail
	want.Java = JavaConfig{Path: "/usr/bin/java", Options: []string{"-Xss2m", "-Dname=a b"}}
	want.HTTP = HTTPConfig{Timeout: 90 * time.Second, Retries: 0, UserAgent: "ci-runner"}
	want.UI = UIConfig{ColorScheme: ColorSchemeLight, Verbose: true}

	opts := isolated(t)
	writeConfig(t, opts.ConfigDirPath, GenerateCUE(want))

	got, err := NewProvider().Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !slices.Equal(got.Repositories, want.Repositories) {
		t.Errorf("repositories = %+v, want %+v", got.Repositories, want.Repositories)
	}
	if got.LocalRepository != want.LocalRepository || got.ChecksumPolicy != want.ChecksumPolicy {
		t.Errorf("top-level values = %+v, want %+v", got, want)
	}
	if got.Java.Path != want.Java.Path || !slices.Equal(got.Java.Options, want.Java.Options) {
		t.Errorf("java = %+v, want %+v", got.Java, want.Java)
	}
	if got.HTTP != want.HTTP || got.UI != want.UI {
		t.Errorf("http/ui = %+v %+v, want %+v %+v", got.HTTP, got.UI, want.HTTP, want.UI)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", AppName)

	path, created, err := CreateDefaultConfig(dir)
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	if !created || path != filepath.Join(dir, "config.cue") {
		t.Errorf("CreateDefaultConfig() = %q, %v", path, created)
	}

	if err := os.WriteFile(path, []byte("offline: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, created, err = CreateDefaultConfig(dir); err != nil || created {
		t.Errorf("second CreateDefaultConfig() = %v, %v; want existing file kept", created, err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "offline: true\n" {
		t.Errorf("existing config must not be overwritten, got %q", data)
	}
}

func TestCreateDefaultConfigLoads(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	if _, _, err := CreateDefaultConfig(opts.ConfigDirPath); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}

	cfg, path, err := loadWithOptions(context.Background(), opts)
	if err != nil {
		t.Fatalf("generated default config should load, got %v", err)
	}
	if path == "" || cfg.ChecksumPolicy != ChecksumPolicyWarn || cfg.HTTP.Timeout != DefaultHTTPTimeout {
		t.Errorf("unexpected config loaded from %q: %+v", path, cfg)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	opts := isolated(t)
	path, found, err := FindConfigFile(opts)
	if err != nil || found || path != filepath.Join(opts.ConfigDirPath, "config.cue") {
		t.Errorf("FindConfigFile() = %q, %v, %v", path, found, err)
	}

	local := writeConfig(t, opts.BaseDir, "")
	if path, found, _ = FindConfigFile(opts); !found || path != local {
		t.Errorf("FindConfigFile() = %q, %v; want %q", path, found, local)
	}

	opts.ConfigFilePath = filepath.Join(opts.BaseDir, "other.cue")
	if path, found, _ = FindConfigFile(opts); found || path != opts.ConfigFilePath {
		t.Errorf("FindConfigFile() with explicit path = %q, %v", path, found)
	}
}

//nolint:paralleltest // t.Setenv
func TestConfigDir(t *testing.T) {
	if runtime.GOOS == platform.Windows || runtime.GOOS == platform.Darwin {
		t.Skip("XDG_CONFIG_HOME only applies to Linux and other unix systems")
	}

	base := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", base)

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error = %v", err)
	}
	if want := filepath.Join(base, AppName); dir != want {
		t.Errorf("ConfigDir() = %q, want %q", dir, want)
	}
}

func TestDescriptors(t *testing.T) {
	t.Parallel()

	cfg := Config{Repositories: []RepositoryConfig{
		{ID: " central ", URL: " https://repo.maven.apache.org/maven2 "},
		{ID: "private", URL: "https://repo.example.com", Username: "alice", Password: "secret"},
		{ID: "blank-password", URL: "https://repo.example.org", Username: "bob", Password: "  "},
	}}

	got := cfg.Descriptors()
	want := []repository.Descriptor{
		{ID: "central", Layout: repository.DefaultLayout, URL: "https://repo.maven.apache.org/maven2"},
		{
			ID:          "private",
			Layout:      repository.DefaultLayout,
			URL:         "https://repo.example.com",
			Credentials: &repository.Credentials{Username: "alice", Password: "secret"},
		},
		{ID: "blank-password", Layout: repository.DefaultLayout, URL: "https://repo.example.org"},
	}

	if len(got) != len(want) {
		t.Fatalf("Descriptors() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Layout != want[i].Layout || got[i].URL != want[i].URL {
			t.Errorf("Descriptors()[%d] = %+v, want %+v", i, got[i], want[i])
		}
		if (got[i].Credentials == nil) != (want[i].Credentials == nil) {
			t.Errorf("Descriptors()[%d].Credentials = %v, want %v", i, got[i].Credentials, want[i].Credentials)
			continue
		}
		if want[i].Credentials != nil && *got[i].Credentials != *want[i].Credentials {
			t.Errorf("Descriptors()[%d].Credentials = %+v, want %+v", i, *got[i].Credentials, *want[i].Credentials)
		}
	}
}
