// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jeranaias/helios/internal/index"
)

// Calibrate builds the command index from PATH, reporting progress to out.
func Calibrate(out io.Writer) index.Set {
	fmt.Fprintln(out, "\nCalibrating Direct Execution System: Scanning command paths...")
	commands := index.Build()
	fmt.Fprintln(out, SuccessStyle.Render(fmt.Sprintf("✔️ Direct Execution calibrated. %d commands indexed for instant execution.", commands.Len())))
	return commands
}

// printShutdown reports that startup ended without a model.
func printShutdown(out io.Writer) {
	fmt.Fprintln(out, "\nHelios cannot start without an operational model. Shutting down.")
}

// StartupModel runs the first model selection. When it ends without a model
// the shutdown notice is printed and the selection error returned.
func StartupModel(ctx context.Context, sel *Selector, out io.Writer) (string, error) {
	name, err := sel.Select(ctx)
	if err != nil {
		printShutdown(out)
		return "", err
	}
	return name, nil
}
