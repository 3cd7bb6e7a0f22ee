// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/volkszaehler/vzview/pkg/document"
)

// Format represents the output format type
type Format string

const (
	// FormatXML outputs the document as XML markup
	FormatXML Format = "xml"
	// FormatJSON outputs the document tree in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs the document tree in YAML format
	FormatYAML Format = "yaml"
)

func (f Format) IsUnknown() bool {
	switch f {
	case FormatXML, FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// ContentType returns the HTTP content type declared for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/xml; charset=UTF-8"
	}
}

// ParseFormat parses a format name case-insensitively. An empty name
// yields FormatXML.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatXML, nil
	}
	f := Format(s)
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", s)
	}
	return f, nil
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatXML),
		string(FormatJSON),
		string(FormatYAML),
	}
}

// Writer handles serialization of document trees to various formats.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
// If format is unknown, defaults to XML format.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to XML", "format", format)
		format = FormatXML
	}
	return &Writer{
		format: format,
		output: output,
	}
}

// NewFileWriterOrStdout creates a new Writer that outputs to the specified file path in the given format.
// If the file cannot be created or path is empty, it falls back to stdout.
// Remember to call Close() on the returned Writer to ensure the file is properly closed.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return NewStdoutWriter(format)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file", "error", err, "path", trimmed)
		return NewStdoutWriter(format)
	}

	w := NewWriter(format, file)
	w.closer = file
	return w
}

// NewStdoutWriter creates a new Writer that outputs to stdout in the specified format.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// Format returns the format the writer produces.
func (w *Writer) Format() Format {
	return w.format
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer != nil {
		err := w.closer.Close()
		w.closer = nil
		return err
	}
	return nil
}

// Serialize writes the document tree in the configured format. The output
// is buffered so a failed encoding never leaves a partial document.
func (w *Writer) Serialize(ctx context.Context, root *document.Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := Marshal(w.format, root)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(content); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Marshal encodes root in the given format.
func Marshal(format Format, root *document.Node) ([]byte, error) {
	if root == nil {
		return nil, fmt.Errorf("document is empty")
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatXML:
		err = encodeXML(&buf, root)
	case FormatJSON:
		err = encodeJSON(&buf, root)
	case FormatYAML:
		err = encodeYAML(&buf, root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
