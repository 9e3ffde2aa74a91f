// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// quotePOSIX quotes arg for bash. Strings bash cannot represent (NUL bytes) fall
// back to plain single quoting.
func quotePOSIX(arg string) string {
	quoted, err := syntax.Quote(arg, syntax.LangBash)
	if err != nil {
		return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return quoted
}

// quoteWindows quotes arg so that CommandLineToArgvW splits it back into arg.
// Backslashes are only special when they precede a double quote.
func quoteWindows(arg string) string {
	if arg == "" {
		return `""`
	}
	if !strings.ContainsAny(arg, " \t\n\v\"") {
		return arg
	}

	var b strings.Builder
	b.Grow(len(arg) + 2)
	b.WriteByte('"')
	slashes := 0
	for i := 0; i < len(arg); i++ {
		c := arg[i]
		switch c {
		case '\\':
			slashes++
			continue
		case '"':
			b.WriteString(strings.Repeat(`\`, 2*slashes+1))
		default:
			b.WriteString(strings.Repeat(`\`, slashes))
		}
		b.WriteByte(c)
		slashes = 0
	}
	b.WriteString(strings.Repeat(`\`, 2*slashes))
	b.WriteByte('"')
	return b.String()
}
