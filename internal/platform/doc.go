// SPDX-License-Identifier: MPL-2.0

// Package platform locates host executables and names operating systems.
package platform
