// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for jarrunner.
//
// The App type is the composition root: it loads the configuration, builds
// the Maven resolution service and the launcher, and hands them to the
// runner. Cobra handlers only translate flags into runner parameters and
// render results.
package cmd
