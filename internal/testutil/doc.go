// SPDX-License-Identifier: MPL-2.0

// Package testutil provides fixtures shared by tests: JAR archives with a
// chosen manifest and Maven repositories in the default layout on disk.
//
// Functions returning an error can be used outside of a *testing.T, for
// example from testscript commands. The Must* variants fail the test instead.
package testutil
