// SPDX-License-Identifier: MPL-2.0

package repository

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Built-in password converter names.
const (
	ConverterPlain  = "plain"
	ConverterBase64 = "base64"
)

type (
	// PasswordConverter decodes the password segment of a repository URI.
	PasswordConverter func(encoded string) (string, error)

	// UnknownConverterError is returned when a repository URI names a password
	// converter that is not registered.
	UnknownConverterError struct {
		Name    string
		Allowed []string
	}

	// InvalidPasswordError is returned when a converter cannot decode a password.
	InvalidPasswordError struct {
		Converter string
		Cause     error
	}
)

var (
	convertersMu sync.RWMutex
	converters   = map[string]PasswordConverter{
		ConverterPlain:  convertPlain,
		ConverterBase64: convertBase64,
	}
)

// Error implements the error interface.
func (e *UnknownConverterError) Error() string {
	quoted := make([]string, len(e.Allowed))
	for i, name := range e.Allowed {
		quoted[i] = fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("unknown password converter %q (allowed values: %s)", e.Name, strings.Join(quoted, ", "))
}

// Unwrap returns ErrInvalidRepository.
func (e *UnknownConverterError) Unwrap() error { return ErrInvalidRepository }

// Error implements the error interface.
func (e *InvalidPasswordError) Error() string {
	return fmt.Sprintf("cannot decode %s password: %v", e.Converter, e.Cause)
}

// Unwrap returns ErrInvalidRepository.
func (e *InvalidPasswordError) Unwrap() error { return ErrInvalidRepository }

// RegisterConverter makes a password converter available under name. Names are
// case-insensitive. Registering an existing name replaces it.
func RegisterConverter(name string, converter PasswordConverter) {
	convertersMu.Lock()
	defer convertersMu.Unlock()
	converters[strings.ToLower(name)] = converter
}

// ConvertPassword decodes encoded with the converter called name.
func ConvertPassword(name, encoded string) (string, error) {
	convertersMu.RLock()
	converter, ok := converters[strings.ToLower(name)]
	convertersMu.RUnlock()
	if !ok {
		return "", &UnknownConverterError{Name: name, Allowed: converterNames()}
	}
	return converter(encoded)
}

func converterNames() []string {
	convertersMu.RLock()
	defer convertersMu.RUnlock()
	names := make([]string, 0, len(converters))
	for name := range converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func convertPlain(encoded string) (string, error) {
	return encoded, nil
}

// convertBase64 accepts the URL-safe alphabet with or without padding, and the
// standard alphabet as a fallback.
func convertBase64(encoded string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(encoded), "=")
	decoded, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		var stdErr error
		decoded, stdErr = base64.RawStdEncoding.DecodeString(trimmed)
		if stdErr != nil {
			return "", &InvalidPasswordError{Converter: ConverterBase64, Cause: err}
		}
	}
	return string(decoded), nil
}
