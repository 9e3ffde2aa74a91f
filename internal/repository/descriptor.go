// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	// DefaultLayout is the only repository layout supported.
	DefaultLayout = "default"

	fallbackIDFormat = "argument-%d"
)

// ErrInvalidRepository is the sentinel error wrapped by all repository
// configuration errors.
var ErrInvalidRepository = errors.New("invalid repository")

// userInfoPattern splits user info into user name, converter and password.
// An unknown converter still matches so that it can be reported by name.
var userInfoPattern = regexp.MustCompile(`^([^:]*)(?::([^:]*):(.*))?$`)

type (
	// Descriptor describes one remote repository.
	Descriptor struct {
		ID          string
		Layout      string
		URL         string
		Credentials *Credentials
	}

	// Credentials authenticate against a repository.
	Credentials struct {
		Username string
		Password string
	}

	// InvalidURIError is returned when a repository URI cannot be parsed.
	InvalidURIError struct {
		Value string
		Cause error
	}

	// InvalidUserInfoError is returned when the user info of a repository URI does
	// not match user[:converter:password].
	InvalidUserInfoError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidURIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid repository URI %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("invalid repository URI %q", e.Value)
}

// Unwrap returns ErrInvalidRepository.
func (e *InvalidURIError) Unwrap() error { return ErrInvalidRepository }

// Error implements the error interface.
func (e *InvalidUserInfoError) Error() string {
	return fmt.Sprintf("the user information part %q does not match the expected format user[:converter:password]", e.Value)
}

// Unwrap returns ErrInvalidRepository.
func (e *InvalidUserInfoError) Unwrap() error { return ErrInvalidRepository }

// String renders the descriptor without its password.
func (d Descriptor) String() string {
	if d.Credentials != nil {
		return fmt.Sprintf("%s (%s, user %s)", d.ID, d.URL, d.Credentials.Username)
	}
	return fmt.Sprintf("%s (%s)", d.ID, d.URL)
}

// ParseURI derives a Descriptor from a repository URI. index is the 1-based
// position of the URI in the user list and only names repositories without a
// fragment.
func ParseURI(raw string, index int) (Descriptor, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return Descriptor{}, &InvalidURIError{Value: raw, Cause: err}
	}
	if u.Scheme == "" {
		return Descriptor{}, &InvalidURIError{Value: raw, Cause: errors.New("missing scheme")}
	}

	id := strings.TrimSpace(u.Fragment)
	if id == "" {
		id = fmt.Sprintf(fallbackIDFormat, index)
	}

	credentials, err := parseUserInfo(u.User)
	if err != nil {
		return Descriptor{}, err
	}

	base := *u
	base.User = nil
	base.Fragment = ""
	base.RawFragment = ""

	return Descriptor{
		ID:          id,
		Layout:      DefaultLayout,
		URL:         base.String(),
		Credentials: credentials,
	}, nil
}

// parseUserInfo returns nil credentials for blank user info and for user info
// without a password.
func parseUserInfo(info *url.Userinfo) (*Credentials, error) {
	if info == nil {
		return nil, nil
	}

	raw := info.Username()
	if password, ok := info.Password(); ok {
		raw += ":" + password
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	match := userInfoPattern.FindStringSubmatch(raw)
	if match == nil {
		return nil, &InvalidUserInfoError{Value: raw}
	}

	username, converter, encoded := match[1], match[2], match[3]
	if strings.TrimSpace(encoded) == "" {
		return nil, nil
	}

	password, err := ConvertPassword(converter, encoded)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, nil
	}

	return &Credentials{Username: username, Password: password}, nil
}
