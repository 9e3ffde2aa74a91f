// SPDX-License-Identifier: MPL-2.0

// Package maven resolves dependency trees from Maven repositories.
//
// Service implements resolve.Service. It reads POMs (parents, properties,
// dependency management and imported BOMs), collects the transitive
// dependencies breadth-first with nearest-wins conflict handling and downloads
// every selected artifact into a local repository using the default Maven
// layout. Remote repositories are reached over http, https or file URLs.
package maven
