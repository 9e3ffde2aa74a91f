// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/jarrunner/config.cue (or the XDG equivalent on
// Linux, ~/Library/Application Support/jarrunner/config.cue on macOS and
// %APPDATA%\jarrunner\config.cue on Windows), then from ./config.cue. Environment
// variables prefixed with JARRUNNER_ override file values, e.g. JARRUNNER_OFFLINE=true
// or JARRUNNER_HTTP_RETRIES=5.
//
// Files are validated against the embedded CUE schema (config_schema.cue). Constraints
// the schema cannot express, such as unique repository ids, are checked after decoding.
package config
