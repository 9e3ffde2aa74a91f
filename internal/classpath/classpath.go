// SPDX-License-Identifier: MPL-2.0

// Package classpath renders a resolved dependency tree into a class path string.
package classpath

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lars-sh/jarrunner/internal/resolve"
)

const (
	// Placeholder is replaced by the rendered class path inside a format template.
	Placeholder = "%s"
	// escapedPercent renders as a single literal percent sign.
	escapedPercent = "%%"
)

// ErrInvalidFormat is returned when a class path format template does not contain
// exactly one placeholder.
var ErrInvalidFormat = errors.New("invalid class path format")

// Render joins the files of root and its descendants, in pre-order, using
// separator. Earlier entries shadow later ones at class loading time, so the root
// artifact always comes first.
func Render(root *resolve.Node, separator string) string {
	return strings.Join(root.Files(), separator)
}

// ValidateFormat checks that a non-empty template contains exactly one
// placeholder. An escaped "%%" never starts a placeholder.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	n := 0
	for _, segment := range strings.Split(format, escapedPercent) {
		n += strings.Count(segment, Placeholder)
	}
	if n != 1 {
		return fmt.Errorf("%w %q: expected exactly one %s placeholder, found %d", ErrInvalidFormat, format, Placeholder, n)
	}
	return nil
}

// Assemble renders the class path of root with the platform path list separator
// and applies the optional format template.
func Assemble(root *resolve.Node, format string) (string, error) {
	if err := ValidateFormat(format); err != nil {
		return "", err
	}
	return Apply(format, Render(root, string(os.PathListSeparator))), nil
}

// Apply substitutes the placeholder of format with classpath and turns every
// "%%" into "%". An empty format returns classpath unchanged.
func Apply(format, classpath string) string {
	if format == "" {
		return classpath
	}
	segments := strings.Split(format, escapedPercent)
	for i, segment := range segments {
		if strings.Contains(segment, Placeholder) {
			segments[i] = strings.Replace(segment, Placeholder, classpath, 1)
			break
		}
	}
	return strings.Join(segments, "%")
}
