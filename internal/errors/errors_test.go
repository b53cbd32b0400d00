// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// TestUserError_Error verifies the Error() method implementation.
func TestUserError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *UserError
		want string
	}{
		{
			name: "with underlying error",
			err: &UserError{
				Message: "Invalid operand N",
				Err:     fmt.Errorf("not a number"),
			},
			want: "Invalid operand N: not a number",
		},
		{
			name: "without underlying error",
			err:  &UserError{Message: "Wrong number of operands"},
			want: "Wrong number of operands",
		},
		{
			name: "empty message with underlying error",
			err:  &UserError{Err: fmt.Errorf("some error")},
			want: ": some error",
		},
		{
			name: "empty message without underlying error",
			err:  &UserError{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("UserError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestUserError_Unwrap verifies the Unwrap() method implementation.
func TestUserError_Unwrap(t *testing.T) {
	underlyingErr := fmt.Errorf("underlying error")

	if got := (&UserError{Err: underlyingErr}).Unwrap(); got != underlyingErr {
		t.Errorf("UserError.Unwrap() = %v, want %v", got, underlyingErr)
	}
	if got := (&UserError{}).Unwrap(); got != nil {
		t.Errorf("UserError.Unwrap() = %v, want nil", got)
	}
}

// TestExitCodes verifies that exit code constants have the correct values.
func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUsage", ExitUsage, 1},
		{"ExitConfig", ExitConfig, 2},
		{"ExitInput", ExitInput, 3},
		{"ExitDomain", ExitDomain, 4},
		{"ExitInternal", ExitInternal, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.exitCode != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.exitCode, tt.want)
			}
		})
	}
}

// TestExitCodes_Uniqueness verifies that all exit codes are unique.
func TestExitCodes_Uniqueness(t *testing.T) {
	codes := []int{ExitSuccess, ExitUsage, ExitConfig, ExitInput, ExitDomain, ExitInternal}

	seen := make(map[int]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate exit code found: %d", code)
		}
		seen[code] = true
	}
}

// TestConstructors verifies that all constructor functions work correctly.
func TestConstructors(t *testing.T) {
	underlyingErr := fmt.Errorf("underlying error")

	tests := []struct {
		name         string
		constructor  func() *UserError
		wantExitCode int
		wantHasErr   bool
	}{
		{
			name:         "NewUsageError",
			constructor:  func() *UserError { return NewUsageError("msg", "cause", "fix") },
			wantExitCode: ExitUsage,
			wantHasErr:   false,
		},
		{
			name:         "NewConfigError with underlying error",
			constructor:  func() *UserError { return NewConfigError("msg", "cause", "fix", underlyingErr) },
			wantExitCode: ExitConfig,
			wantHasErr:   true,
		},
		{
			name:         "NewConfigError without underlying error",
			constructor:  func() *UserError { return NewConfigError("msg", "cause", "fix", nil) },
			wantExitCode: ExitConfig,
			wantHasErr:   false,
		},
		{
			name:         "NewInputError",
			constructor:  func() *UserError { return NewInputError("msg", "cause", "fix", underlyingErr) },
			wantExitCode: ExitInput,
			wantHasErr:   true,
		},
		{
			name:         "NewDomainError",
			constructor:  func() *UserError { return NewDomainError("msg", "cause", "fix", underlyingErr) },
			wantExitCode: ExitDomain,
			wantHasErr:   true,
		},
		{
			name:         "NewInternalError",
			constructor:  func() *UserError { return NewInternalError("msg", "cause", "fix", underlyingErr) },
			wantExitCode: ExitInternal,
			wantHasErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.constructor()

			if got.Message != "msg" || got.Cause != "cause" || got.Fix != "fix" {
				t.Errorf("fields = %q/%q/%q, want msg/cause/fix", got.Message, got.Cause, got.Fix)
			}
			if got.ExitCode != tt.wantExitCode {
				t.Errorf("ExitCode = %d, want %d", got.ExitCode, tt.wantExitCode)
			}
			if hasErr := got.Err != nil; hasErr != tt.wantHasErr {
				t.Errorf("has underlying error = %v, want %v", hasErr, tt.wantHasErr)
			}
		})
	}
}

// TestErrorChain verifies error wrapping compatibility with stdlib errors package.
func TestErrorChain(t *testing.T) {
	t.Run("errors.Is works with UserError", func(t *testing.T) {
		sentinel := fmt.Errorf("sentinel error")
		wrapped := fmt.Errorf("wrapped: %w", sentinel)
		userErr := NewDomainError("domain error", "cause", "fix", wrapped)

		if !errors.Is(userErr, sentinel) {
			t.Error("errors.Is should find sentinel error in chain")
		}
	})

	t.Run("errors.As finds nested UserError", func(t *testing.T) {
		innerErr := NewConfigError("config error", "cause", "fix", nil)
		outerErr := NewInternalError("internal error", "cause", "fix", innerErr)

		var top *UserError
		if !errors.As(outerErr, &top) {
			t.Fatal("errors.As should extract UserError")
		}
		if top.ExitCode != ExitInternal {
			t.Errorf("First unwrap: ExitCode = %d, want %d", top.ExitCode, ExitInternal)
		}

		var cfgErr *UserError
		if !errors.As(top.Err, &cfgErr) {
			t.Fatal("errors.As should extract config UserError from chain")
		}
		if cfgErr.ExitCode != ExitConfig {
			t.Errorf("Second unwrap: ExitCode = %d, want %d", cfgErr.ExitCode, ExitConfig)
		}
	})
}

// TestUserError_Format verifies the Format() method implementation.
func TestUserError_Format(t *testing.T) {
	tests := []struct {
		name    string
		err     *UserError
		want    []string
		notWant []string
	}{
		{
			name: "full error",
			err: &UserError{
				Message: "Cannot split the remainder",
				Cause:   "integer division or modulo by zero",
				Fix:     "Use a non-zero divisor M",
			},
			want: []string{
				"Error: Cannot split the remainder",
				"Cause: integer division or modulo by zero",
				"Fix:   Use a non-zero divisor M",
			},
		},
		{
			name:    "error without cause",
			err:     &UserError{Message: "Invalid operand N", Fix: "Use an integer"},
			want:    []string{"Error: Invalid operand N", "Fix:   Use an integer"},
			notWant: []string{"Cause:"},
		},
		{
			name:    "minimal error (message only)",
			err:     &UserError{Message: "Something failed"},
			want:    []string{"Error: Something failed"},
			notWant: []string{"Cause:", "Fix:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Format(true)
			for _, substr := range tt.want {
				if !strings.Contains(got, substr) {
					t.Errorf("Format() output missing %q\nGot: %s", substr, got)
				}
			}
			for _, substr := range tt.notWant {
				if strings.Contains(got, substr) {
					t.Errorf("Format() output unexpectedly contains %q\nGot: %s", substr, got)
				}
			}
		})
	}
}

// TestUserError_Format_NoColor verifies that NO_COLOR environment variable is respected.
func TestUserError_Format_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	err := &UserError{Message: "Test error", Cause: "Test cause", Fix: "Test fix"}
	if output := err.Format(false); strings.Contains(output, "\x1b[") {
		t.Error("Format() output contains ANSI codes despite NO_COLOR being set")
	}
}

// TestUserError_ToJSON verifies the ToJSON() method implementation.
func TestUserError_ToJSON(t *testing.T) {
	err := NewDomainError("Cannot split the remainder", "division by zero", "Use a non-zero divisor M", nil)
	got := err.ToJSON()

	want := ErrorJSON{
		Error:    "Cannot split the remainder",
		Cause:    "division by zero",
		Fix:      "Use a non-zero divisor M",
		ExitCode: ExitDomain,
	}
	if got != want {
		t.Errorf("ToJSON() = %+v, want %+v", got, want)
	}

	data, _ := json.Marshal(NewUsageError("Wrong number of operands", "", "").ToJSON())
	if strings.Contains(string(data), "cause") || strings.Contains(string(data), "fix") {
		t.Errorf("empty cause/fix should be omitted, got %s", data)
	}
}

// TestReport verifies the output and exit code chosen for each error kind.
func TestReport(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		json     bool
		wantCode int
		wantOut  string
	}{
		{
			name:     "nil error",
			err:      nil,
			wantCode: ExitSuccess,
			wantOut:  "",
		},
		{
			name:     "user error text",
			err:      NewInputError("Invalid operand M", "not an integer", "Use digits", nil),
			wantCode: ExitInput,
			wantOut:  "Error: Invalid operand M\nCause: not an integer\nFix:   Use digits\n",
		},
		{
			name:     "plain error text",
			err:      fmt.Errorf("write failed"),
			wantCode: ExitInternal,
			wantOut:  "Error: write failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := Report(&buf, tt.err, tt.json, true)
			if code != tt.wantCode {
				t.Errorf("Report() = %d, want %d", code, tt.wantCode)
			}
			if buf.String() != tt.wantOut {
				t.Errorf("Report() wrote %q, want %q", buf.String(), tt.wantOut)
			}
		})
	}
}

// TestReport_JSON verifies JSON mode for user and plain errors.
func TestReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	code := Report(&buf, NewDomainError("Cannot split", "division by zero", "", nil), true, true)
	if code != ExitDomain {
		t.Errorf("Report() = %d, want %d", code, ExitDomain)
	}

	var got ErrorJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Error != "Cannot split" || got.ExitCode != ExitDomain {
		t.Errorf("decoded = %+v", got)
	}

	buf.Reset()
	code = Report(&buf, fmt.Errorf("boom"), true, true)
	if code != ExitInternal {
		t.Errorf("Report() = %d, want %d", code, ExitInternal)
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Error != "boom" || got.ExitCode != ExitInternal {
		t.Errorf("decoded = %+v", got)
	}
}
