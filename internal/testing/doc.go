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

// Package testing provides test helpers for modsplit.
//
// # Quick Start
//
// Build operands and batch inputs without error plumbing:
//
//	func TestMyFeature(t *testing.T) {
//	    n := testing.Operand(t, "-7")
//	    path := testing.WriteBatchFile(t, "10 3", "9 3")
//	    // ...
//	}
//
// # Capturing CLI Output
//
// Streams bundles stdin/stdout/stderr buffers for driving the CLI entry
// point in-process:
//
//	io := testing.NewStreams("10 3\n")
//	code := run(ctx, []string{"modsplit", "--batch", "-"}, io.Stdin, io.Stdout, io.Stderr)
//	require.Equal(t, 0, code)
//	assert.Equal(t, "(0, 1)\n", io.Stdout.String())
//
// # Color
//
// DisableColor turns fatih/color output off for one test and restores the
// previous setting on cleanup, so expected strings contain no ANSI codes.
package testing
