package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/severity"
	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Strict      bool
	Quiet       bool
	Format      string
	InputFormat string
}

// validateReport is the structured form of a verdict.
type validateReport struct {
	Document       string            `json:"document" yaml:"document"`
	Verdict        string            `json:"verdict" yaml:"verdict"`
	Severity       severity.Severity `json:"severity" yaml:"severity"`
	Message        string            `json:"message,omitempty" yaml:"message,omitempty"`
	Display        string            `json:"display" yaml:"display"`
	CanExtract     bool              `json:"can_extract" yaml:"can_extract"`
	Version        string            `json:"version,omitempty" yaml:"version,omitempty"`
	PathCount      int               `json:"path_count" yaml:"path_count"`
	OperationCount int               `json:"operation_count" yaml:"operation_count"`
	Line           int               `json:"line,omitempty" yaml:"line,omitempty"`
	Column         int               `json:"column,omitempty" yaml:"column,omitempty"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	fs.BoolVar(&flags.Strict, "strict", false, "treat warnings as failures")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output the verdict line")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only output the verdict line")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")
	fs.StringVar(&flags.InputFormat, "input-format", "", "input format: json, yaml or auto (default from file extension, else json)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaspick validate [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Check that a document parses and looks like an OpenAPI/Swagger document:\n")
		cliutil.Writef(fs.Output(), "an openapi or swagger marker and a paths object.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaspick validate petstore.json\n")
		cliutil.Writef(fs.Output(), "  oaspick validate --strict --format json openapi.yaml | jq '.verdict'\n")
		cliutil.Writef(fs.Output(), "  cat openapi.json | oaspick validate -q -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Valid, or warnings only (without --strict)\n")
		cliutil.Writef(fs.Output(), "  1    Invalid JSON, empty input, or warnings with --strict\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path or '-' for stdin")
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

	v := validator.Validate(raw, validator.WithFormat(format))
	report := validateReport{
		Document:       FormatSpecPath(specPath),
		Verdict:        v.Kind.String(),
		Severity:       v.Severity(),
		Message:        v.Message,
		Display:        v.Display(),
		CanExtract:     v.CanExtract(),
		Version:        v.Version,
		PathCount:      v.Stats.PathCount,
		OperationCount: v.Stats.OperationCount,
	}
	var perr *oaserrors.ParseError
	if errors.As(v.Err, &perr) {
		report.Line, report.Column = perr.Line, perr.Column
	}

	if flags.Format == cliutil.FormatText {
		writeValidateText(report, flags.Quiet)
	} else if err := cliutil.OutputStructured(os.Stdout, report, flags.Format); err != nil {
		return err
	}

	switch {
	case v.Kind == validator.VerdictNone:
		return &oaserrors.InputError{Input: "document", Message: "document is empty"}
	case v.Kind == validator.VerdictInvalidJSON:
		return fmt.Errorf("validation failed: %w", v.Err)
	case flags.Strict && v.Kind == validator.VerdictWarning:
		return fmt.Errorf("validation failed: %w", v.Err)
	}
	return nil
}

func writeValidateText(r validateReport, quiet bool) {
	if quiet {
		cliutil.Writef(os.Stdout, "%s\n", r.Display)
		return
	}
	outputSpecHeader(r.Document)
	if r.Version != "" {
		cliutil.Writef(os.Stdout, "OAS Version: %s\n", r.Version)
	}
	if r.Line > 0 {
		cliutil.Writef(os.Stdout, "Position: line %d, column %d\n", r.Line, r.Column)
	}
	if r.Verdict != validator.VerdictInvalidJSON.String() {
		cliutil.Writef(os.Stdout, "Paths: %d\n", r.PathCount)
		cliutil.Writef(os.Stdout, "Operations: %d\n", r.OperationCount)
	}
	cliutil.Writef(os.Stdout, "%s\n", r.Display)
}
