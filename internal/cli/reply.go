// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"github.com/google/shlex"
)

const fence = "```"

// NormalizeReply turns raw model output into a command string. A reply
// wrapped in a code fence is unwrapped, and a leading sh, bash or shell
// language tag is dropped when more lines follow it.
func NormalizeReply(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, fence) || !strings.HasSuffix(s, fence) {
		return s
	}

	inner := ""
	if len(s) >= 2*len(fence) {
		inner = s[len(fence) : len(s)-len(fence)]
	}
	s = strings.TrimSpace(inner)

	if i := strings.IndexByte(s, '\n'); i != -1 {
		switch strings.ToLower(strings.TrimSpace(s[:i])) {
		case "sh", "bash", "shell":
			s = strings.TrimSpace(s[i+1:])
		}
	}
	return s
}

// IsEcho reports whether a command is a conversational echo reply.
func IsEcho(command string) bool {
	return strings.HasPrefix(strings.ToLower(command), "echo ")
}

// RenderEcho returns the text an echo reply would print: its first argument
// after shell-style tokenizing. Only that argument is shown. When the
// command does not tokenize, everything after "echo " is shown raw.
func RenderEcho(command string) string {
	parts, err := shlex.Split(command)
	if err != nil {
		if len(command) < len("echo ") {
			return command
		}
		return command[len("echo "):]
	}
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}
