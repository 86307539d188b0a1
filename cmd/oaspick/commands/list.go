package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/httputil"
)

// ListFlags contains flags for the list command
type ListFlags struct {
	Method      string
	PathPrefix  string
	Format      string
	InputFormat string
	Quiet       bool
}

// listedOperation is one operation in structured list output.
type listedOperation struct {
	Selector    string `json:"selector" yaml:"selector"`
	Method      string `json:"method" yaml:"method"`
	Path        string `json:"path" yaml:"path"`
	OperationID string `json:"operation_id,omitempty" yaml:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// SetupListFlags creates and configures a FlagSet for the list command.
// Returns the FlagSet and a ListFlags struct with bound flag variables.
func SetupListFlags() (*flag.FlagSet, *ListFlags) {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	flags := &ListFlags{}

	fs.StringVar(&flags.Method, "method", "", "only operations with this HTTP method")
	fs.StringVar(&flags.PathPrefix, "path-prefix", "", "only operations whose path starts with this prefix")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.InputFormat, "input-format", "", "input format: json, yaml or auto (default from file extension, else json)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: tab-separated rows without headers")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: tab-separated rows without headers")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaspick list [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "List the operations of a document in document order, with the selector\n")
		cliutil.Writef(fs.Output(), "that extracts each one.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaspick list petstore.json\n")
		cliutil.Writef(fs.Output(), "  oaspick list --method get --path-prefix /pet petstore.json\n")
		cliutil.Writef(fs.Output(), "  oaspick list -q petstore.json | cut -f1 | paste -sd, -\n")
	}

	return fs, flags
}

// HandleList executes the list command
func HandleList(args []string) error {
	fs, flags := SetupListFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("list command requires exactly one file path or '-' for stdin")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format, cliutil.FormatText, cliutil.FormatJSON, cliutil.FormatYAML); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	format, err := inputFormat(flags.InputFormat, specPath)
	if err != nil {
		return err
	}
	raw, err := readSource(specPath)
	if err != nil {
		return err
	}
	doc, err := document.ParseString(raw, format)
	if err != nil {
		return &displayError{err: err}
	}

	method := httputil.NormalizeMethod(strings.TrimSpace(flags.Method))
	var ops []listedOperation
	for _, op := range document.Operations(doc) {
		if method != "" && httputil.NormalizeMethod(op.Method) != method {
			continue
		}
		if flags.PathPrefix != "" && !strings.HasPrefix(op.Path, flags.PathPrefix) {
			continue
		}
		ops = append(ops, listedOperation{
			Selector:    op.Key(),
			Method:      op.Method,
			Path:        op.Path,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Deprecated:  op.Deprecated,
		})
	}

	if flags.Format != cliutil.FormatText {
		if ops == nil {
			ops = []listedOperation{}
		}
		return cliutil.OutputStructured(os.Stdout, ops, flags.Format)
	}

	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		summary := op.Summary
		if op.Deprecated {
			summary = strings.TrimSpace("(deprecated) " + summary)
		}
		rows = append(rows, []string{op.Selector, httputil.DisplayMethod(op.Method), op.Path, op.OperationID, summary})
	}
	cliutil.RenderTable(os.Stdout, []string{"SELECTOR", "METHOD", "PATH", "OPERATION", "SUMMARY"}, rows, flags.Quiet)
	if !flags.Quiet && len(rows) == 0 {
		cliutil.Writef(os.Stderr, "No operations found in %s\n", FormatSpecPath(specPath))
	}
	return nil
}
