// Copyright (c) 2025 scpi
// Licensed under the MIT License. See LICENSE file in the project root for details.

package scpi

import (
	"testing"
)

func TestIsQuery(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    bool
	}{
		{
			name:    "bare query",
			command: "DIAG:DEB:REG?",
			want:    true,
		},
		{
			name:    "query with argument",
			command: "DIAG:DEB:REG? 0x200",
			want:    true,
		},
		{
			name:    "query with argument and terminator",
			command: "DIAG:DEB:REG? 0x200\n",
			want:    true,
		},
		{
			name:    "common query",
			command: "*IDN?",
			want:    true,
		},
		{
			name:    "common query with terminator",
			command: "*IDN?\n",
			want:    true,
		},
		{
			name:    "query with trailing tab",
			command: "MEAS:VOLT?\t",
			want:    true,
		},
		{
			name:    "empty string",
			command: "",
			want:    false,
		},
		{
			name:    "set command",
			command: "*RST",
			want:    false,
		},
		{
			name:    "set command with terminator",
			command: "*SAV\n",
			want:    false,
		},
		{
			name:    "command with quoted argument",
			command: `HELLO:WORLD "GOODBYE"`,
			want:    false,
		},
		{
			name:    "command with quoted argument and terminator",
			command: "HELLO:WORLD \"GOODBYE\"\n",
			want:    false,
		},
		{
			// Tokens split on the space character only; a tab does not
			// separate the argument from the command.
			name:    "tab-separated argument",
			command: "SYST:ERR?\tONCE",
			want:    false,
		},
		{
			name:    "leading space",
			command: " *IDN?",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuery(tt.command); got != tt.want {
				t.Errorf("IsQuery(%q) = %v, want %v", tt.command, got, tt.want)
			}
		})
	}
}
