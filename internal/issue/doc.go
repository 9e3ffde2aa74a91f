// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and a
// list of suggestions. The catalog maps well-known failure classes to Markdown
// guidance rendered with glamour.
package issue
