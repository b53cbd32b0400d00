// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package errors provides structured error handling for the modsplit CLI.
//
// This package defines UserError, a type that carries structured error information
// including what went wrong, why it happened, and how to fix it. It also defines
// consistent exit codes for different error categories.
//
// # Usage Example
//
// Creating and displaying errors:
//
//	err := errors.NewInputError(
//	    "Invalid operand N",
//	    `"ten" is not a base-10 integer`,
//	    "Pass whole numbers, for example: modsplit 10 3",
//	    parseErr,
//	)
//	os.Exit(errors.Report(os.Stderr, err, false, false))
//
// # Formatted Output
//
// The Format() method provides colored terminal output:
//
//	fmt.Fprint(os.Stderr, err.Format(false))
//	// Output (with colors):
//	// Error: Cannot split the remainder
//	// Cause: integer division or modulo by zero
//	// Fix:   Use a non-zero divisor M
//
// For JSON output:
//
//	json.NewEncoder(os.Stderr).Encode(err.ToJSON())
//	// {
//	//   "error": "Cannot split the remainder",
//	//   "cause": "integer division or modulo by zero",
//	//   "fix": "Use a non-zero divisor M",
//	//   "exit_code": 4
//	// }
//
// # Exit Codes
//
//   - ExitSuccess (0): Successful execution
//   - ExitUsage (1): Wrong number of operands or unknown flags
//   - ExitConfig (2): Configuration errors (unreadable or invalid config file)
//   - ExitInput (3): Invalid user input (operand is not an integer, too long)
//   - ExitDomain (4): Arithmetic domain errors (division by zero)
//   - ExitInternal (10): Internal errors (bugs, I/O failures writing results)
package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Exit codes for different error categories.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitUsage indicates the command line had the wrong shape.
	ExitUsage = 1

	// ExitConfig indicates configuration errors (missing/invalid config files).
	ExitConfig = 2

	// ExitInput indicates invalid user input (bad operands, validation errors).
	ExitInput = 3

	// ExitDomain indicates an operation undefined for its operands.
	ExitDomain = 4

	// ExitInternal indicates internal errors (bugs, unexpected panics).
	// Exit code 10 signals "this is a bug that should be reported".
	ExitInternal = 10
)

// UserError represents an error with structured context for end users.
//
// It provides three levels of information:
//   - Message: What went wrong (user-facing error description)
//   - Cause: Why it happened (diagnostic information)
//   - Fix: How to fix it (actionable suggestion)
//
// UserError also carries an exit code for consistent CLI exit behavior
// and optionally wraps an underlying error for error chain compatibility.
type UserError struct {
	// Message describes what went wrong in user-friendly language.
	Message string

	// Cause explains why the error occurred (diagnostic information).
	Cause string

	// Fix provides an actionable suggestion on how to resolve the error.
	Fix string

	// ExitCode is the exit code that should be used when exiting due to this error.
	ExitCode int

	// Err is the underlying error that caused this error (optional).
	Err error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a usage error with exit code ExitUsage.
//
// Use this when the command line itself is malformed: unknown flags,
// missing or surplus operands.
func NewUsageError(msg, cause, fix string) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitUsage,
	}
}

// NewConfigError creates a configuration error with exit code ExitConfig.
//
// Example:
//
//	return NewConfigError(
//	    "Cannot load modsplit configuration",
//	    "field outptu not found in type config",
//	    "Check the keys in .modsplit.yaml",
//	    err,
//	)
func NewConfigError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitConfig,
		Err:      err,
	}
}

// NewInputError creates an input validation error with exit code ExitInput.
//
// Use this for operands that cannot be parsed or fail validation.
func NewInputError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitInput,
		Err:      err,
	}
}

// NewDomainError creates an arithmetic domain error with exit code ExitDomain.
func NewDomainError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitDomain,
		Err:      err,
	}
}

// NewInternalError creates an internal error with exit code ExitInternal.
//
// Use this for unexpected errors that indicate bugs or an environment
// failure the user cannot fix through input, such as a closed stdout.
func NewInternalError(msg, cause, fix string, err error) *UserError {
	return &UserError{
		Message:  msg,
		Cause:    cause,
		Fix:      fix,
		ExitCode: ExitInternal,
		Err:      err,
	}
}

// Color definitions for error formatting.
var (
	colorError = color.New(color.FgRed, color.Bold)
	colorCause = color.New(color.FgYellow)
	colorFix   = color.New(color.FgGreen)
)

// Format returns a formatted error message for terminal display.
//
// The output includes colored sections for Error (red/bold), Cause (yellow),
// and Fix (green). Color output respects the NO_COLOR environment variable
// and can be explicitly disabled with the noColor parameter.
//
// Empty Cause or Fix fields are omitted from the output.
//
// Note: This method temporarily modifies the global color.NoColor state
// and restores it after formatting.
func (e *UserError) Format(noColor bool) string {
	originalNoColor := color.NoColor
	defer func() { color.NoColor = originalNoColor }()

	if noColor || os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorError.Sprint("Error: "))
	out.WriteString(e.Message)
	out.WriteString("\n")

	if e.Cause != "" {
		out.WriteString(colorCause.Sprint("Cause: "))
		out.WriteString(e.Cause)
		out.WriteString("\n")
	}

	if e.Fix != "" {
		out.WriteString(colorFix.Sprint("Fix:   "))
		out.WriteString(e.Fix)
		out.WriteString("\n")
	}

	return out.String()
}

// ErrorJSON represents error information in JSON format.
type ErrorJSON struct {
	Error    string `json:"error"`
	Cause    string `json:"cause,omitempty"`
	Fix      string `json:"fix,omitempty"`
	ExitCode int    `json:"exit_code"`
}

// ToJSON converts the UserError to a JSON-serializable structure.
func (e *UserError) ToJSON() ErrorJSON {
	return ErrorJSON{
		Error:    e.Message,
		Cause:    e.Cause,
		Fix:      e.Fix,
		ExitCode: e.ExitCode,
	}
}

// Report writes err to w and returns the exit code the process should use.
//
// A UserError is written with Format(noColor) or, in JSON mode, as ErrorJSON.
// Any other error is written as a plain "Error: ..." line and maps to
// ExitInternal. A nil error writes nothing and returns ExitSuccess.
func Report(w io.Writer, err error, jsonOutput, noColor bool) int {
	if err == nil {
		return ExitSuccess
	}

	if ue, ok := err.(*UserError); ok {
		if jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			// The exit code is what callers rely on; an encode failure here
			// has nowhere better to go.
			_ = enc.Encode(ue.ToJSON())
		} else {
			fmt.Fprint(w, ue.Format(noColor))
		}
		return ue.ExitCode
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(ErrorJSON{Error: err.Error(), ExitCode: ExitInternal})
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	return ExitInternal
}
