// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output provides utilities for consistent CLI output formatting.
//
// This package handles JSON and YAML encoding for machine-readable output,
// ensuring consistent formatting across modsplit's single and batch modes.
// It complements the ui package (for human-readable output) and errors
// package (for error handling).
//
// # Usage
//
//	format, err := output.ParseFormat("json")
//	if err != nil {
//	    return err
//	}
//	if err := output.WriteTo(os.Stdout, format, result); err != nil {
//	    return errors.Report(os.Stderr, err, format == output.FormatJSON, false)
//	}
//
// For batch mode, a Stream writes one record at a time:
//
//	s := output.NewStream(os.Stdout, format)
//	defer s.Close()
//	s.Write(record)
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	// FormatText prints results as "(low, high)".
	FormatText Format = "text"

	// FormatJSON prints results as JSON objects.
	FormatJSON Format = "json"

	// FormatYAML prints results as YAML documents.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. The empty string means FormatText.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", name)
	}
}

// JSONTo writes data as pretty-printed JSON to the specified writer.
//
// The output is formatted with 2-space indentation for readability.
// Returns an error if JSON encoding fails (e.g., for unencodable types
// like channels or functions).
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// JSONCompactTo writes data as compact single-line JSON to the specified writer.
//
// This is the format used for streaming batch results.
func JSONCompactTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// YAMLTo writes data as a YAML document with 2-space indentation.
func YAMLTo(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("YAML encoding failed: %w", err)
	}
	return nil
}

// TextTo writes the value's String form followed by a newline.
func TextTo(w io.Writer, v fmt.Stringer) error {
	if _, err := fmt.Fprintln(w, v.String()); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

// WriteTo writes a result in the chosen format. Text uses v's String method.
func WriteTo(w io.Writer, format Format, v fmt.Stringer) error {
	switch format {
	case FormatJSON:
		return JSONTo(w, v)
	case FormatYAML:
		return YAMLTo(w, v)
	default:
		return TextTo(w, v)
	}
}

// Stream writes a sequence of results. Text and JSON put one result per
// line; YAML produces a multi-document stream separated by "---".
type Stream struct {
	w       io.Writer
	format  Format
	yamlEnc *yaml.Encoder
}

// NewStream creates a Stream writing to w in the given format.
func NewStream(w io.Writer, format Format) *Stream {
	s := &Stream{w: w, format: format}
	if format == FormatYAML {
		s.yamlEnc = yaml.NewEncoder(w)
		s.yamlEnc.SetIndent(2)
	}
	return s
}

// Write emits one result.
func (s *Stream) Write(v fmt.Stringer) error {
	switch s.format {
	case FormatJSON:
		return JSONCompactTo(s.w, v)
	case FormatYAML:
		if err := s.yamlEnc.Encode(v); err != nil {
			return fmt.Errorf("YAML encoding failed: %w", err)
		}
		return nil
	default:
		return TextTo(s.w, v)
	}
}

// Close flushes any buffered output.
func (s *Stream) Close() error {
	if s.yamlEnc != nil {
		if err := s.yamlEnc.Close(); err != nil {
			return fmt.Errorf("YAML encoding failed: %w", err)
		}
	}
	return nil
}
