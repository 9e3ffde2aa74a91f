// SPDX-License-Identifier: MPL-2.0

// Package repository derives remote repository descriptors from user supplied URIs
// and merges them with the configured (system) repositories.
//
// A repository URI has the form
//
//	scheme://[user[:converter:password]@]host[:port]/path[#id]
//
// where converter is either "plain" or "base64". The fragment names the
// repository; without one, the repository is called "argument-<n>" after its
// 1-based position in the user list.
package repository
