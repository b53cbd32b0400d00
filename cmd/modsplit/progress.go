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

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kraklabs/modsplit/internal/ui"
)

// ProgressConfig determines if and how batch progress should be displayed.
type ProgressConfig struct {
	// Enabled indicates whether progress should be shown.
	// Disabled when -q/--quiet is used or when the writer is not a TTY.
	Enabled bool

	// Writer is where progress output goes (stderr).
	Writer io.Writer

	// NoColor disables colored output in progress bars.
	NoColor bool
}

// NewProgressConfig creates a progress configuration based on global flags and TTY detection.
func NewProgressConfig(globals GlobalFlags, w io.Writer) ProgressConfig {
	return ProgressConfig{
		Enabled: !globals.Quiet && ui.IsTerminal(w),
		Writer:  w,
		NoColor: globals.NoColor,
	}
}

// batchDescription labels the progress line for a --batch input.
func batchDescription(path string, noColor bool) string {
	name := "stdin"
	if path != "-" {
		name = filepath.Base(path)
	}
	if noColor {
		return fmt.Sprintf("splitting %s", name)
	}
	return fmt.Sprintf("[cyan]splitting[reset] %s", name)
}

// newBatchProgress returns a byte bar when the input size is known and a
// spinner otherwise. It returns nil when progress is disabled.
func newBatchProgress(cfg ProgressConfig, path string, size int64) *progressbar.ProgressBar {
	desc := batchDescription(path, cfg.NoColor)
	if size >= 0 {
		return NewProgressBar(cfg, size, desc)
	}
	return NewSpinner(cfg, desc)
}

// NewProgressBar creates a byte-based progress bar over total bytes of
// "N M" lines. Returns nil if progress is disabled.
func NewProgressBar(cfg ProgressConfig, total int64, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	saucer, head := "[green]=[reset]", "[green]>[reset]"
	if cfg.NoColor {
		saucer, head = "=", ">"
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        saucer,
			SaucerHead:    head,
			SaucerPadding: " ",
			BarStart:      "|",
			BarEnd:        "|",
		}),
	)
}

// NewSpinner creates a spinner for input of unknown size, such as stdin.
// It still counts bytes so a long pipe shows it is moving.
// Returns nil if progress is disabled.
func NewSpinner(cfg ProgressConfig, description string) *progressbar.ProgressBar {
	if !cfg.Enabled {
		return nil
	}

	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(cfg.Writer),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(!cfg.NoColor),
	)
}
