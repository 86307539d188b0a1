package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/config"
	"github.com/erraggy/oaspick/pipeline"
)

// ExtractFlags contains flags for the extract command
type ExtractFlags struct {
	Selector    string
	Format      string
	InputFormat string
	Output      string
	Unmatched   string
	Quiet       bool
}

// SetupExtractFlags creates and configures a FlagSet for the extract command.
// Returns the FlagSet and an ExtractFlags struct with bound flag variables.
func SetupExtractFlags() (*flag.FlagSet, *ExtractFlags) {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	flags := &ExtractFlags{}

	fs.StringVar(&flags.Selector, "s", "", "operations to keep: * or method:path pairs separated by commas")
	fs.StringVar(&flags.Selector, "selector", "", "operations to keep: * or method:path pairs separated by commas")
	fs.StringVar(&flags.Format, "format", cliutil.FormatJSON, "output format: json or yaml")
	fs.StringVar(&flags.InputFormat, "input-format", "", "input format: json, yaml or auto (default from file extension, else json)")
	fs.StringVar(&flags.Output, "o", "", "write the result to this file instead of stdout")
	fs.StringVar(&flags.Output, "output", "", "write the result to this file instead of stdout")
	fs.StringVar(&flags.Unmatched, "unmatched", "", "pairs that match nothing: ignore, warn or fail (default from OASPICK_UNMATCHED)")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no diagnostic messages on stderr")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no diagnostic messages on stderr")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaspick extract [flags] -s <selector> <file|->\n\n")
		cliutil.Writef(fs.Output(), "Write a copy of the document that keeps only the selected operations.\n")
		cliutil.Writef(fs.Output(), "All other top-level fields are copied unchanged.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nSelectors:\n")
		cliutil.Writef(fs.Output(), "  *                              every operation, document unchanged\n")
		cliutil.Writef(fs.Output(), "  put:/pet,get:/user/{username}  the listed operations, in that order\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaspick extract -s 'put:/pet,get:/user/{username}' petstore.json\n")
		cliutil.Writef(fs.Output(), "  oaspick extract -s '*' --format yaml -o petstore.yaml petstore.json\n")
		cliutil.Writef(fs.Output(), "  cat openapi.json | oaspick extract -q -s get:/pets -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Extraction succeeded (warnings may have been printed)\n")
		cliutil.Writef(fs.Output(), "  1    Invalid input, invalid JSON, or extraction failed\n")
	}

	return fs, flags
}

// HandleExtract executes the extract command
func HandleExtract(args []string) error {
	fs, flags := SetupExtractFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("extract command requires exactly one file path or '-' for stdin")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format, cliutil.FormatJSON, cliutil.FormatYAML); err != nil {
		return err
	}

	specPath := fs.Arg(0)
	format, err := inputFormat(flags.InputFormat, specPath)
	if err != nil {
		return err
	}
	policy := config.EnvUnmatched("OASPICK_UNMATCHED")
	if flags.Unmatched != "" {
		if policy, err = extractor.ParseUnmatchedPolicy(flags.Unmatched); err != nil {
			return err
		}
	}

	raw, err := readSource(specPath)
	if err != nil {
		return err
	}

	out := pipeline.Run(pipeline.Request{
		Document:  raw,
		Selector:  flags.Selector,
		Format:    format,
		Unmatched: policy,
	})
	if !out.OK() {
		return &displayError{err: out.Err}
	}

	if !flags.Quiet {
		outputSpecHeader(specPath)
		if status := out.Verdict.Display(); status != "" {
			cliutil.Writef(os.Stderr, "%s\n", status)
		}
		cliutil.Writef(os.Stderr, "Matched: %d, Unmatched: %d\n", len(out.Result.Matched), len(out.Result.Unmatched))
		for _, w := range out.Result.Warnings {
			cliutil.Writef(os.Stderr, "Warning: %s\n", w)
		}
	}

	data := []byte(out.Text)
	if flags.Format == cliutil.FormatYAML {
		if data, err = out.Result.YAML(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	}
	return writeOutput(flags.Output, data)
}
