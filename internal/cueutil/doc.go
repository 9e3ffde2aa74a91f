// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles CUE documents against an embedded schema definition
// and decodes the unified value into Go types.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[map[string]any](
//	    schema, data, "#Config",
//	    cueutil.WithFilename(path),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and the JSON-style path of the offending field,
// for example "config.cue: repositories[1].url: conflicting values".
package cueutil
