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
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/modsplit/internal/contract"
	"github.com/kraklabs/modsplit/internal/errors"
	"github.com/kraklabs/modsplit/internal/output"
)

const (
	// defaultConfigFile is looked up in the working directory when neither
	// --config nor MODSPLIT_CONFIG is given.
	defaultConfigFile = ".modsplit.yaml"

	// envConfigPath names the environment variable holding a config path.
	envConfigPath = "MODSPLIT_CONFIG"
)

// Config holds the settings read from .modsplit.yaml.
//
// Example:
//
//	output: json
//	no_color: true
//	max_digits: 100000
//	metrics_file: /var/lib/node_exporter/textfile/modsplit.prom
type Config struct {
	// Output is the result format: text, json or yaml.
	Output string `yaml:"output"`

	// NoColor disables colored output.
	NoColor bool `yaml:"no_color"`

	// MaxDigits caps operand length. Zero means "use MODSPLIT_MAX_DIGITS or the default".
	MaxDigits int `yaml:"max_digits"`

	// MetricsFile, if set, receives Prometheus metrics when the command exits.
	MetricsFile string `yaml:"metrics_file"`
}

// ConfigPath resolves which config file to read. An explicit path always
// wins, then MODSPLIT_CONFIG, then ./.modsplit.yaml if it exists. The
// boolean reports whether the file must exist.
func ConfigPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(envConfigPath); env != "" {
		return env, true
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, false
	}
	return "", false
}

// LoadConfig reads and validates the config file chosen by ConfigPath.
// With no file at all it returns a zero Config.
func LoadConfig(explicit string) (*Config, string, error) {
	path, required := ConfigPath(explicit)
	if path == "" {
		return &Config{}, "", nil
	}

	f, err := os.Open(path)
	if err != nil {
		if !required && stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, path, errors.NewConfigError(
			"Cannot read modsplit configuration",
			err.Error(),
			fmt.Sprintf("Check that %s exists and is readable, or drop --config", path),
			err,
		)
	}
	defer f.Close()

	cfg := &Config{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, path, errors.NewConfigError(
			"Cannot parse modsplit configuration",
			err.Error(),
			fmt.Sprintf("Fix %s; valid keys are output, no_color, max_digits, metrics_file", path),
			err,
		)
	}

	if err := cfg.Validate(); err != nil {
		return nil, path, errors.NewConfigError(
			"Invalid modsplit configuration",
			err.Error(),
			fmt.Sprintf("Fix %s", path),
			err,
		)
	}
	return cfg, path, nil
}

// Validate checks field values that YAML typing alone cannot.
func (c *Config) Validate() error {
	if _, err := output.ParseFormat(c.Output); err != nil {
		return err
	}
	if c.MaxDigits < 0 {
		return fmt.Errorf("max_digits must not be negative, got %d", c.MaxDigits)
	}
	return nil
}

// EffectiveMaxDigits applies the precedence config file > environment > default.
func (c *Config) EffectiveMaxDigits() int {
	if c.MaxDigits > 0 {
		return c.MaxDigits
	}
	return contract.MaxDigits()
}
