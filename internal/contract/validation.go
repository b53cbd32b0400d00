// Copyright 2025 KrakLabs
// SPDX-License-Identifier: AGPL-3.0-or-later

package contract

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// DefaultMaxDigits is the default cap on operand length, sign included.
	DefaultMaxDigits = 4096

	// EnvMaxDigits names the environment variable overriding DefaultMaxDigits.
	EnvMaxDigits = "MODSPLIT_MAX_DIGITS"
)

// MaxDigits returns the effective operand length limit.
// Controlled via env MODSPLIT_MAX_DIGITS; falls back to DefaultMaxDigits.
func MaxDigits() int {
	if v := os.Getenv(EnvMaxDigits); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return DefaultMaxDigits
}

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	OK      bool
	Message string
}

// ValidateOperand checks an operand's length against limit. Whether the
// text is actually an integer is left to the parser.
func ValidateOperand(operand string, limit int) *ValidationResult {
	if limit > 0 && len(operand) > limit {
		return &ValidationResult{
			OK:      false,
			Message: fmt.Sprintf("operand has %d characters, limit is %d", len(operand), limit),
		}
	}
	return &ValidationResult{OK: true}
}
