package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/oaspick/oaserrors"
)

// Format selects how document text is decoded.
type Format string

const (
	// FormatJSON accepts strict JSON only. This is the default.
	FormatJSON Format = "json"
	// FormatYAML accepts YAML, which includes JSON.
	FormatYAML Format = "yaml"
	// FormatAuto picks JSON when the text starts with '{' or '[', YAML otherwise.
	FormatAuto Format = "auto"
)

// ParseFormat converts a user-supplied name into a Format.
// The empty string selects FormatJSON.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "auto":
		return FormatAuto, nil
	default:
		return "", &oaserrors.ConfigError{Option: "format", Value: name, Message: "must be json, yaml or auto"}
	}
}

// FormatFromPath returns FormatYAML for .yaml/.yml files, FormatJSON for
// .json files and FormatAuto for anything else.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// DetectFormat inspects content: JSON objects and arrays start with '{' or
// '[', anything else is treated as YAML.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Parse decodes document text into a Value. Syntax failures are returned as
// *oaserrors.ParseError carrying the decoder's own message.
func Parse(data []byte, format Format) (Value, error) {
	return parseNamed(data, format, "")
}

// ParseString is Parse for string input.
func ParseString(text string, format Format) (Value, error) {
	return Parse([]byte(text), format)
}

// ParseReader reads r fully and parses it. A positive limit caps the number
// of bytes read; exceeding it yields *oaserrors.ResourceLimitError.
func ParseReader(r io.Reader, format Format, limit int64) (Value, error) {
	data, err := ReadLimited(r, limit)
	if err != nil {
		return Value{}, err
	}
	return Parse(data, format)
}

// ParseFile reads and parses the file at path. FormatAuto also considers the
// file extension before sniffing the content.
func ParseFile(path string, format Format) (Value, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading user-selected input files is the purpose
	if err != nil {
		return Value{}, fmt.Errorf("document: reading %s: %w", path, err)
	}
	if format == FormatAuto {
		format = FormatFromPath(path)
	}
	return parseNamed(data, format, path)
}

func parseNamed(data []byte, format Format, name string) (Value, error) {
	if format == "" {
		format = FormatJSON
	}
	if format == FormatAuto {
		format = DetectFormat(data)
	}

	var (
		v   Value
		err error
	)
	switch format {
	case FormatJSON:
		v, err = decodeJSON(data)
		if err != nil {
			line, col := jsonErrorPosition(data, err)
			return Value{}, &oaserrors.ParseError{Path: name, Line: line, Column: col, Message: err.Error(), Cause: err}
		}
	case FormatYAML:
		v, err = decodeYAML(data)
		if err != nil {
			var limitErr *oaserrors.ResourceLimitError
			if errors.As(err, &limitErr) {
				return Value{}, err
			}
			return Value{}, &oaserrors.ParseError{Path: name, Message: err.Error(), Cause: err}
		}
	default:
		return Value{}, &oaserrors.ConfigError{Option: "format", Value: string(format), Message: "unknown document format"}
	}
	return v, nil
}

// ReadLimited reads r fully. A positive limit caps the number of bytes read;
// exceeding it yields *oaserrors.ResourceLimitError.
func ReadLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("document: reading input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("document: reading input: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &oaserrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        limit,
			Message:      "document is larger than the configured maximum",
		}
	}
	return data, nil
}
