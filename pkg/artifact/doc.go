// SPDX-License-Identifier: MPL-2.0

// Package artifact defines Maven artifact coordinates and dependency scopes.
//
// Coordinates use the same textual form as Aether's DefaultArtifact:
//
//	<groupId>:<artifactId>[:<extension>[:<classifier>]]:<version>
//
// Values are immutable. Parse fails fast on malformed input so that configuration
// mistakes surface before any resolution work starts.
package artifact
