// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package scpi implements the command/response exchange for line-oriented
// SCPI-style instrument protocols: commands go out as single newline
// terminated lines, and commands recognized as queries block for a single
// line reply within a bound time.
package scpi

import "strings"

// IsQuery reports whether a command expects a reply: true iff its first
// space-delimited token, trimmed, ends with '?'. Splitting is on the
// literal space character only, so a tab does not separate tokens.
func IsQuery(command string) bool {
	if command == "" {
		return false
	}
	first, _, _ := strings.Cut(command, " ")
	return strings.HasSuffix(strings.TrimSpace(first), "?")
}
