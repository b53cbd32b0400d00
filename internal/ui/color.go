// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides user interface utilities for the modsplit CLI.
//
// This package offers color output helpers that respect the --no-color flag
// and NO_COLOR environment variable. Colors are disabled when stderr, where
// all colored text goes, is not a TTY (e.g., when redirected to a file).
//
// Every printer takes the destination writer: results go to stdout, while
// explanations and warnings go to stderr so that stdout stays parseable.
//
// Color usage guidelines:
//   - Red: Errors, failures
//   - Yellow: Warnings, cautions
//   - Green: Success, results
//   - Cyan: Numbers, neutral info
//   - Bold: Headers, important labels
//   - Dim: Less important details, paths
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Pre-configured color instances for consistent CLI output.
var (
	// Red is used for error messages and failures.
	Red = color.New(color.FgRed)

	// Yellow is used for warnings and cautions.
	Yellow = color.New(color.FgYellow)

	// Green is used for success messages and results.
	Green = color.New(color.FgGreen)

	// Cyan is used for numeric values.
	Cyan = color.New(color.FgCyan)

	// Bold is used for headers and important labels.
	Bold = color.New(color.Bold)

	// Dim is used for less important details like paths.
	Dim = color.New(color.Faint)
)

// InitColors configures global color output for text written to w.
//
// fatih/color only looks at stdout when deciding whether to color. modsplit
// colors nothing but stderr, so the decision is made against w instead.
// Colors are off when noColor is set, NO_COLOR is set, TERM is "dumb" or
// w is not a terminal.
func InitColors(noColor bool, w io.Writer) {
	color.NoColor = noColor ||
		os.Getenv("NO_COLOR") != "" ||
		os.Getenv("TERM") == "dumb" ||
		!IsTerminal(w)
}

// IsTerminal reports whether w is a terminal file.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Successf prints a formatted green message with a checkmark prefix.
func Successf(w io.Writer, format string, args ...any) {
	_, _ = Green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warningf prints a formatted yellow warning with a warning symbol prefix.
func Warningf(w io.Writer, format string, args ...any) {
	_, _ = Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Infof prints a formatted informational message with an info symbol prefix.
func Infof(w io.Writer, format string, args ...any) {
	_, _ = Cyan.Fprintf(w, "ℹ "+format+"\n", args...)
}

// Header prints a bold header with an underline separator.
//
// Example output:
//
//	-7 mod 4
//	========
func Header(w io.Writer, text string) {
	_, _ = Bold.Fprintln(w, text)
	fmt.Fprintln(w, strings.Repeat("=", len(text)))
}

// Label returns a bold-formatted label string for inline use.
//
// Example: fmt.Fprintf(w, "%s %s\n", ui.Label("Remainder:"), s)
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns a dim-formatted string for less important text.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// ValueText returns a cyan-formatted value, typically a number.
func ValueText(v any) string {
	return Cyan.Sprint(v)
}
