// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/lars-sh/jarrunner/internal/cueutil"
	"github.com/lars-sh/jarrunner/internal/issue"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "jarrunner"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment variables overriding configuration keys.
	EnvPrefix = "JARRUNNER"
)

//go:embed config_schema.cue
var configSchema []byte

// ConfigDir returns the jarrunner directory inside the user configuration
// directory: %AppData% on Windows, ~/Library/Application Support on macOS and
// $XDG_CONFIG_HOME (default ~/.config) elsewhere.
//
//nolint:revive // config.Dir would read ambiguously next to LocalRepository.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user configuration directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// FindConfigFile returns the configuration file Load would read. The boolean is
// false when no file exists and only defaults apply; the returned path is then
// the location CreateDefaultConfig would write to.
func FindConfigFile(opts LoadOptions) (string, bool, error) {
	if opts.ConfigFilePath != "" {
		return opts.ConfigFilePath, fileExists(opts.ConfigFilePath), nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", false, err
	}

	userPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(userPath) {
		return userPath, true, nil
	}

	localPath := filepath.Join(opts.BaseDir, ConfigFileName+"."+ConfigFileExt)
	if fileExists(localPath) {
		return localPath, true, nil
	}

	return userPath, false, nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, found, err := FindConfigFile(opts)
	if err != nil {
		return nil, "", err
	}

	resolvedPath := ""
	switch {
	case found:
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Use 'jarrunner config show' to see the default configuration").
				Wrap(err).
				BuildError()
		}
		resolvedPath = path
	case opts.ConfigFilePath != "":
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(opts.ConfigFilePath).
			WithSuggestion("Verify the file path is correct").
			WithSuggestion("Check that the file exists and is readable").
			Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("decode configuration").
			WithSuggestion(fmt.Sprintf("Check the %s_* environment variables", EnvPrefix)).
			Wrap(err).
			BuildError()
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Ensure each repository has a unique id and a non-empty url").
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("repositories", defaults.Repositories)
	v.SetDefault("local_repository", defaults.LocalRepository)
	v.SetDefault("offline", defaults.Offline)
	v.SetDefault("checksum_policy", string(defaults.ChecksumPolicy))
	v.SetDefault("java.path", defaults.Java.Path)
	v.SetDefault("java.options", defaults.Java.Options)
	v.SetDefault("http.timeout", defaults.HTTP.Timeout)
	v.SetDefault("http.retries", defaults.HTTP.Retries)
	v.SetDefault("http.user_agent", defaults.HTTP.UserAgent)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.color_scheme", string(defaults.UI.ColorScheme))
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper. Decoding targets a map so that
// unset keys keep their defaults and environment overrides still apply.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecode[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration into dir (the
// platform configuration directory when empty) unless a file already exists.
// It returns the path of the file and whether it was created.
func CreateDefaultConfig(dir string) (string, bool, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	f, err := os.OpenFile(cfgPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return cfgPath, false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to create config file: %w", err)
	}

	if _, err := f.WriteString(GenerateCUE(DefaultConfig())); err != nil {
		_ = f.Close()
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// jarrunner configuration file\n\n")

	if len(cfg.Repositories) > 0 {
		sb.WriteString("repositories: [\n")
		for _, repo := range cfg.Repositories {
			fmt.Fprintf(&sb, "\t{id: %q, url: %q", repo.ID, repo.URL)
			if repo.Username != "" {
				fmt.Fprintf(&sb, ", username: %q", repo.Username)
			}
			if repo.Password != "" {
				fmt.Fprintf(&sb, ", password: %q", repo.Password)
			}
			sb.WriteString("},\n")
		}
		sb.WriteString("]\n")
	} else {
		sb.WriteString("repositories: []\n")
	}

	if cfg.LocalRepository != "" {
		fmt.Fprintf(&sb, "local_repository: %q\n", cfg.LocalRepository)
	}
	fmt.Fprintf(&sb, "offline: %v\n", cfg.Offline)
	fmt.Fprintf(&sb, "checksum_policy: %q\n", cfg.ChecksumPolicy)

	sb.WriteString("\njava: {\n")
	if cfg.Java.Path != "" {
		fmt.Fprintf(&sb, "\tpath: %q\n", cfg.Java.Path)
	}
	sb.WriteString("\toptions: [")
	for i, opt := range cfg.Java.Options {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", opt)
	}
	sb.WriteString("]\n")
	sb.WriteString("}\n")

	sb.WriteString("\nhttp: {\n")
	fmt.Fprintf(&sb, "\ttimeout: %q\n", cfg.HTTP.Timeout.String())
	fmt.Fprintf(&sb, "\tretries: %d\n", cfg.HTTP.Retries)
	fmt.Fprintf(&sb, "\tuser_agent: %q\n", cfg.HTTP.UserAgent)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}
