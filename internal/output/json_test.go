// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

type record struct {
	Low  int `json:"low" yaml:"low"`
	High int `json:"high" yaml:"high"`
}

func (r record) String() string {
	return fmt.Sprintf("(%d, %d)", r.Low, r.High)
}

// TestParseFormat verifies accepted and rejected format names.
func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestJSON verifies that JSONTo produces pretty-printed output with 2-space indentation.
func TestJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := JSONTo(&buf, record{Low: 1, High: 2}); err != nil {
		t.Fatalf("JSONTo failed: %v", err)
	}

	want := "{\n  \"low\": 1,\n  \"high\": 2\n}\n"
	if buf.String() != want {
		t.Errorf("JSONTo() = %q, want %q", buf.String(), want)
	}
}

// TestJSONCompact verifies that JSONCompactTo produces single-line output.
func TestJSONCompact(t *testing.T) {
	var buf bytes.Buffer

	if err := JSONCompactTo(&buf, record{Low: 0, High: 1}); err != nil {
		t.Fatalf("JSONCompactTo failed: %v", err)
	}

	if got := buf.String(); got != "{\"low\":0,\"high\":1}\n" {
		t.Errorf("JSONCompactTo() = %q", got)
	}
}

// TestJSON_Unencodable verifies that encoding failures are reported.
func TestJSON_Unencodable(t *testing.T) {
	var buf bytes.Buffer

	err := JSONTo(&buf, map[string]any{"ch": make(chan int)})
	if err == nil {
		t.Fatal("expected error for channel value")
	}
	if !strings.Contains(err.Error(), "JSON encoding failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestYAML verifies block-style YAML output.
func TestYAML(t *testing.T) {
	var buf bytes.Buffer

	if err := YAMLTo(&buf, record{Low: 1, High: 2}); err != nil {
		t.Fatalf("YAMLTo failed: %v", err)
	}

	if got := buf.String(); got != "low: 1\nhigh: 2\n" {
		t.Errorf("YAMLTo() = %q", got)
	}
}

// TestWriteTo verifies each format dispatches to the right encoder.
func TestWriteTo(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "(1, 2)\n"},
		{FormatJSON, "{\n  \"low\": 1,\n  \"high\": 2\n}\n"},
		{FormatYAML, "low: 1\nhigh: 2\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteTo(&buf, tt.format, record{Low: 1, High: 2}); err != nil {
				t.Fatalf("WriteTo failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteTo(%s) = %q, want %q", tt.format, buf.String(), tt.want)
			}
		})
	}
}

// TestStream verifies that streams emit one record per write.
func TestStream(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatText, "(0, 1)\n(1, 2)\n"},
		{FormatJSON, "{\"low\":0,\"high\":1}\n{\"low\":1,\"high\":2}\n"},
		{FormatYAML, "low: 0\nhigh: 1\n---\nlow: 1\nhigh: 2\n"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			s := NewStream(&buf, tt.format)
			for _, r := range []record{{0, 1}, {1, 2}} {
				if err := s.Write(r); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}
			if err := s.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("stream(%s) = %q, want %q", tt.format, buf.String(), tt.want)
			}
		})
	}
}
