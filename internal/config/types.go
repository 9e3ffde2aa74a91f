// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lars-sh/jarrunner/internal/repository"
)

const (
	// ChecksumPolicyFail aborts a download whose checksum does not match.
	ChecksumPolicyFail ChecksumPolicy = "fail"
	// ChecksumPolicyWarn logs checksum mismatches and keeps the file.
	ChecksumPolicyWarn ChecksumPolicy = "warn"
	// ChecksumPolicyIgnore skips checksum verification.
	ChecksumPolicyIgnore ChecksumPolicy = "ignore"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultHTTPTimeout bounds every repository request.
	DefaultHTTPTimeout = 60 * time.Second
	// DefaultHTTPRetries is the number of retries after a transient failure.
	DefaultHTTPRetries = 3
	// DefaultUserAgent identifies jarrunner to remote repositories.
	DefaultUserAgent = "jarrunner"

	// CentralID and CentralURL describe Maven Central, the default repository.
	CentralID  = "central"
	CentralURL = "https://repo.maven.apache.org/maven2"
)

var (
	// ErrInvalidChecksumPolicy is returned when a ChecksumPolicy value is not recognized.
	ErrInvalidChecksumPolicy = errors.New("invalid checksum policy")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidRepositoryConfig is the sentinel error wrapped by InvalidRepositoryConfigError.
	ErrInvalidRepositoryConfig = errors.New("invalid repository config")
	// ErrInvalidHTTPConfig is the sentinel error wrapped by InvalidHTTPConfigError.
	ErrInvalidHTTPConfig = errors.New("invalid http config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ChecksumPolicy selects how checksum mismatches are handled.
	// Defined locally to avoid coupling config to internal/maven.
	ChecksumPolicy string

	// InvalidChecksumPolicyError is returned when a ChecksumPolicy value is not recognized.
	// It wraps ErrInvalidChecksumPolicy for errors.Is() compatibility.
	InvalidChecksumPolicyError struct {
		Value ChecksumPolicy
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidRepositoryConfigError is returned when a repository entry is invalid.
	InvalidRepositoryConfigError struct {
		Index  int
		ID     string
		Reason string
	}

	// InvalidHTTPConfigError is returned when the http section holds values
	// that cannot be used.
	InvalidHTTPConfigError struct {
		Field  string
		Reason string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sections.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// RepositoryConfig is one ambient remote repository.
	RepositoryConfig struct {
		ID       string `json:"id" mapstructure:"id"`
		URL      string `json:"url" mapstructure:"url"`
		Username string `json:"username,omitempty" mapstructure:"username"`
		Password string `json:"password,omitempty" mapstructure:"password"`
	}

	// JavaConfig configures how applications are started.
	JavaConfig struct {
		// Path overrides the Java executable lookup.
		Path string `json:"path" mapstructure:"path"`
		// Options are JVM options placed before any given on the command line.
		Options []string `json:"options" mapstructure:"options"`
	}

	// HTTPConfig configures repository access.
	HTTPConfig struct {
		Timeout   time.Duration `json:"timeout" mapstructure:"timeout"`
		Retries   int           `json:"retries" mapstructure:"retries"`
		UserAgent string        `json:"user_agent" mapstructure:"user_agent"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		// Repositories are used after the repositories given on the command line
		// unless --ignore-system-repositories is set.
		Repositories []RepositoryConfig `json:"repositories" mapstructure:"repositories"`
		// LocalRepository is the Maven local repository directory.
		LocalRepository string `json:"local_repository" mapstructure:"local_repository"`
		// Offline forbids network access.
		Offline bool `json:"offline" mapstructure:"offline"`
		// ChecksumPolicy selects how checksum mismatches are handled.
		ChecksumPolicy ChecksumPolicy `json:"checksum_policy" mapstructure:"checksum_policy"`
		Java           JavaConfig     `json:"java" mapstructure:"java"`
		HTTP           HTTPConfig     `json:"http" mapstructure:"http"`
		UI             UIConfig       `json:"ui" mapstructure:"ui"`
	}
)

// String returns the string representation of the ChecksumPolicy.
func (p ChecksumPolicy) String() string { return string(p) }

// IsValid returns whether the ChecksumPolicy is one of the defined policies.
func (p ChecksumPolicy) IsValid() (bool, []error) {
	switch p {
	case ChecksumPolicyFail, ChecksumPolicyWarn, ChecksumPolicyIgnore:
		return true, nil
	default:
		return false, []error{&InvalidChecksumPolicyError{Value: p}}
	}
}

// Error implements the error interface for InvalidChecksumPolicyError.
func (e *InvalidChecksumPolicyError) Error() string {
	return fmt.Sprintf("invalid checksum policy %q (valid: fail, warn, ignore)", e.Value)
}

// Unwrap returns ErrInvalidChecksumPolicy for errors.Is() compatibility.
func (e *InvalidChecksumPolicyError) Unwrap() error { return ErrInvalidChecksumPolicy }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface for InvalidRepositoryConfigError.
func (e *InvalidRepositoryConfigError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("repositories[%d] (%s): %s", e.Index, e.ID, e.Reason)
	}
	return fmt.Sprintf("repositories[%d]: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidRepositoryConfig for errors.Is() compatibility.
func (e *InvalidRepositoryConfigError) Unwrap() error { return ErrInvalidRepositoryConfig }

// Error implements the error interface for InvalidHTTPConfigError.
func (e *InvalidHTTPConfigError) Error() string {
	return fmt.Sprintf("http.%s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidHTTPConfig for errors.Is() compatibility.
func (e *InvalidHTTPConfigError) Unwrap() error { return ErrInvalidHTTPConfig }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig followed by the field errors so that
// errors.Is() matches the sentinel of every failing field.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// IsValid checks the constraints CUE cannot express across the whole
// configuration: repository ids are unique and urls are not blank.
// Enumerations are checked again because environment overrides bypass the schema.
func (c Config) IsValid() (bool, []error) {
	var errs []error

	seen := make(map[string]int, len(c.Repositories))
	for i, repo := range c.Repositories {
		id := strings.TrimSpace(repo.ID)
		switch {
		case id == "":
			errs = append(errs, &InvalidRepositoryConfigError{Index: i, Reason: "id must not be blank"})
		case seen[id] > 0:
			errs = append(errs, &InvalidRepositoryConfigError{
				Index:  i,
				ID:     id,
				Reason: fmt.Sprintf("duplicate id (same as repositories[%d])", seen[id]-1),
			})
		default:
			seen[id] = i + 1
		}
		if strings.TrimSpace(repo.URL) == "" {
			errs = append(errs, &InvalidRepositoryConfigError{Index: i, ID: id, Reason: "url must not be blank"})
		}
	}

	if valid, fieldErrs := c.ChecksumPolicy.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, &InvalidHTTPConfigError{Field: "timeout", Reason: "must be positive"})
	}
	if c.HTTP.Retries < 0 {
		errs = append(errs, &InvalidHTTPConfigError{Field: "retries", Reason: "must not be negative"})
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Descriptors converts the configured repositories into repository descriptors
// in declaration order. A blank password means no credentials.
func (c Config) Descriptors() []repository.Descriptor {
	descriptors := make([]repository.Descriptor, 0, len(c.Repositories))
	for _, repo := range c.Repositories {
		d := repository.Descriptor{
			ID:     strings.TrimSpace(repo.ID),
			Layout: repository.DefaultLayout,
			URL:    strings.TrimSpace(repo.URL),
		}
		if strings.TrimSpace(repo.Password) != "" {
			d.Credentials = &repository.Credentials{Username: repo.Username, Password: repo.Password}
		}
		descriptors = append(descriptors, d)
	}
	return descriptors
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Repositories:    []RepositoryConfig{{ID: CentralID, URL: CentralURL}},
		LocalRepository: "", // Resolved to ~/.m2/repository when empty
		Offline:         false,
		ChecksumPolicy:  ChecksumPolicyWarn,
		Java: JavaConfig{
			Path:    "", // Located through JAVA_HOME and PATH when empty
			Options: []string{},
		},
		HTTP: HTTPConfig{
			Timeout:   DefaultHTTPTimeout,
			Retries:   DefaultHTTPRetries,
			UserAgent: DefaultUserAgent,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
