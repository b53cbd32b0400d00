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

package testing

import (
	"bytes"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// Operand parses a base-10 literal, failing the test if it is malformed.
//
// Example:
//
//	n := testing.Operand(t, "123456789012345678901234567890")
func Operand(t *testing.T, s string) *big.Int {
	t.Helper()

	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid operand literal %q", s)
	}
	return x
}

// WriteBatchFile writes lines to a file in a per-test temporary directory
// and returns its path. Each line is terminated with a newline.
//
// Example:
//
//	path := testing.WriteBatchFile(t, "# n m", "10 3", "-7 4")
func WriteBatchFile(t *testing.T, lines ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "pairs.txt")
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write batch file: %v", err)
	}
	return path
}

// WriteConfigFile writes a YAML config file and returns its path.
func WriteConfigFile(t *testing.T, yamlText string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".modsplit.yaml")
	if err := os.WriteFile(path, []byte(yamlText), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// Streams holds the standard streams of an in-process CLI invocation.
type Streams struct {
	Stdin  io.Reader
	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// NewStreams returns Streams whose stdin yields input.
func NewStreams(input string) *Streams {
	return &Streams{
		Stdin:  strings.NewReader(input),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	}
}

// DisableColor turns off color output until the test finishes.
func DisableColor(t *testing.T) {
	t.Helper()

	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}
