// Package commands provides CLI command handlers for oaspick.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oaspick"
	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/config"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/pipeline"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdin is replaced in tests.
var stdin io.Reader = os.Stdin

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// readSource returns the raw text of a file or of stdin, capped at the
// configured document size.
func readSource(specPath string) (string, error) {
	limit := config.EnvInt64("OASPICK_MAX_DOCUMENT_SIZE", config.DefaultMaxDocumentSize)

	var r io.Reader
	if specPath == StdinFilePath {
		r = stdin
	} else {
		f, err := os.Open(specPath) //nolint:gosec // G304: reading the user's chosen file is the purpose
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", specPath, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := document.ReadLimited(r, limit)
	if err != nil {
		var limitErr *oaserrors.ResourceLimitError
		if errors.As(err, &limitErr) {
			return "", err
		}
		return "", fmt.Errorf("reading %s: %w", FormatSpecPath(specPath), err)
	}
	return string(data), nil
}

// inputFormat resolves the -input-format flag. Empty picks the format from
// the file extension and falls back to strict JSON.
func inputFormat(flagValue, specPath string) (document.Format, error) {
	if strings.TrimSpace(flagValue) != "" {
		return document.ParseFormat(flagValue)
	}
	if f := document.FormatFromPath(specPath); f != document.FormatAuto {
		return f, nil
	}
	return document.FormatJSON, nil
}

// displayError reports a failure with the same text the page shows,
// without the "Error: " prefix that main adds.
type displayError struct {
	err error
}

func (e *displayError) Error() string {
	return pipeline.Message(e.err)
}

func (e *displayError) Unwrap() error {
	return e.err
}

// outputSpecHeader writes the version and source lines to stderr.
func outputSpecHeader(specPath string) {
	cliutil.Writef(os.Stderr, "oaspick version: %s\n", oaspick.Version())
	cliutil.Writef(os.Stderr, "Document: %s\n", FormatSpecPath(specPath))
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := rejectSymlinkOutput(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // G306: output documents are meant to be readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// rejectSymlinkOutput refuses to write through a symlink.
func rejectSymlinkOutput(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("commands: checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("commands: refusing to write to symlink: %s", path)
	}
	return nil
}
