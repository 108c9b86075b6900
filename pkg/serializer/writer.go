package serializer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

// IsUnknown reports whether the format is not one of the supported
// encodings.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable:
		return false
	}
	return true
}

// Serializer writes a report in a configured format.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Writer serializes values to an io.Writer in the configured format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a Writer emitting to out.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// NewStdoutWriter creates a Writer emitting to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout creates a Writer emitting to the file at path,
// or to stdout when path is empty or "-". The file is created or
// truncated.
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	if path == "" || path == "-" {
		return NewStdoutWriter(format), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	return NewWriter(format, f), nil
}

// Serialize writes v in the configured format.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
	case FormatTable:
		if err := writeTable(w.out, v); err != nil {
			return fmt.Errorf("failed to serialize to table: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %q", w.format)
	}
	return nil
}
