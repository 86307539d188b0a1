// Package cliutil provides output helpers shared by the CLI commands.
package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v4"
)

// Output format names accepted by the commands.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil { //nolint:gosec // G705 - CLI tool, not a web server
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// ValidateOutputFormat checks format against the allowed names.
func ValidateOutputFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %v", format, allowed)
}

// OutputStructured writes data to w as indented JSON or as YAML.
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}
