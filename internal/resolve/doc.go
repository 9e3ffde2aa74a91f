// SPDX-License-Identifier: MPL-2.0

// Package resolve is the façade over the dependency resolution service.
//
// The service itself (see internal/maven) is a black box behind the Service
// interface: it receives a root dependency, the repositories to consult and the
// scopes to keep, and returns a resolved tree or an error. The façade only shapes
// the request and checks the result; it never retries or reinterprets failures.
package resolve
