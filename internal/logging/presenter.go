// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for diagnostic presentation.
// Diagnostics cover the recoverable, per-command events of a session
// (query timeouts, transient read errors); they are written to the
// error stream and never interrupt the main command flow.
package logging

import (
	"fmt"
)

// PresentError formats an error for user display.
func PresentError(context string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", context, err.Error())
}
