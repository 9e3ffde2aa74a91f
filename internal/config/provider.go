// SPDX-License-Identifier: MPL-2.0

package config

import "context"

type (
	// LoadOptions selects the configuration file. The zero value uses the
	// platform configuration directory, then ./config.cue.
	LoadOptions struct {
		// ConfigFilePath is the file given with --config. It must exist.
		ConfigFilePath string
		// ConfigDirPath replaces ConfigDir in the lookup.
		ConfigDirPath string
		// BaseDir is searched for config.cue when the configuration directory has
		// none. Empty means the current working directory.
		BaseDir string
	}

	// Provider loads the effective configuration.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// FileProvider merges defaults, the CUE configuration file and JARRUNNER_
	// environment variables, in increasing precedence.
	FileProvider struct{}
)

// NewProvider returns the production configuration provider.
func NewProvider() *FileProvider {
	return &FileProvider{}
}

// Load returns the validated configuration selected by opts.
func (p *FileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	return cfg, err
}
