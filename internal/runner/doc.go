// SPDX-License-Identifier: MPL-2.0

// Package runner ties repository parsing, dependency resolution, classpath
// assembly, main class lookup and process launching into one run.
package runner
