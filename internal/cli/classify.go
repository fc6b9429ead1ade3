// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/helios/internal/index"
)

// Route is the branch a line of input takes.
type Route int

const (
	// RouteEmpty is a blank line; nothing happens.
	RouteEmpty Route = iota
	// RouteChangeModel reruns model selection.
	RouteChangeModel
	// RouteExit ends the session.
	RouteExit
	// RouteDirect runs the line in the shell without asking the model.
	RouteDirect
	// RouteQuery sends the line to the model.
	RouteQuery
)

// String returns the route name used in logs.
func (r Route) String() string {
	switch r {
	case RouteEmpty:
		return "empty"
	case RouteChangeModel:
		return "change_model"
	case RouteExit:
		return "exit"
	case RouteDirect:
		return "direct"
	case RouteQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Commands reports whether a name is a known executable.
type Commands interface {
	Contains(name string) bool
}

var _ Commands = index.Set{}

// Classify decides how a line is handled. Meta-commands win over direct
// execution, which wins over a model query. Meta-commands are matched
// exactly after Unicode lowercasing.
func Classify(line string, commands Commands) Route {
	line = strings.TrimSpace(line)
	if line == "" {
		return RouteEmpty
	}

	switch cases.Lower(language.Und).String(line) {
	case "change model":
		return RouteChangeModel
	case "exit", "quit":
		return RouteExit
	}

	fields := strings.Fields(line)
	if commands != nil && commands.Contains(fields[0]) {
		return RouteDirect
	}
	return RouteQuery
}
