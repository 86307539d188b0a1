package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/pipeline"
	"github.com/erraggy/oaspick/selector"
)

type extractInput struct {
	Spec         specInput `json:"spec"                    jsonschema:"The document to extract operations from"`
	Selector     string    `json:"selector"                jsonschema:"* for every operation or comma-separated method:path pairs\\, e.g. put:/pet\\,get:/user/{username}"`
	Unmatched    string    `json:"unmatched,omitempty"     jsonschema:"What to do with pairs that match nothing: ignore\\, warn or fail (default from OASPICK_UNMATCHED)"`
	OutputFormat string    `json:"output_format,omitempty" jsonschema:"Format of the returned document: json (default) or yaml"`
	Output       string    `json:"output,omitempty"        jsonschema:"File path to write the extracted document. If omitted the document is returned inline."`
}

type extractOutput struct {
	Verdict        string   `json:"verdict"`
	Warning        string   `json:"warning,omitempty"`
	Matched        []string `json:"matched,omitempty"`
	Unmatched      []string `json:"unmatched,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
	PathCount      int      `json:"path_count"`
	OperationCount int      `json:"operation_count"`
	WrittenTo      string   `json:"written_to,omitempty"`
	Document       string   `json:"document,omitempty"`
}

func handleExtract(ctx context.Context, _ *mcp.CallToolRequest, input extractInput) (*mcp.CallToolResult, extractOutput, error) {
	policy := cfg.Unmatched
	if input.Unmatched != "" {
		p, err := extractor.ParseUnmatchedPolicy(input.Unmatched)
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
		policy = p
	}

	format := strings.ToLower(strings.TrimSpace(input.OutputFormat))
	if format == "" {
		format = cliutil.FormatJSON
	}
	if err := cliutil.ValidateOutputFormat(format, cliutil.FormatJSON, cliutil.FormatYAML); err != nil {
		return errResult(err), extractOutput{}, nil
	}

	resolved, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), extractOutput{}, nil
	}

	outcome := pipeline.RunDocument(resolved.Document, input.Selector, policy)
	if !outcome.OK() {
		return errResult(errors.New(pipeline.Message(outcome.Err))), extractOutput{}, nil
	}
	res := outcome.Result

	output := extractOutput{
		Verdict:        outcome.Verdict.Kind.String(),
		Warning:        outcome.Verdict.Message,
		Matched:        pairKeys(res.Matched),
		Unmatched:      pairKeys(res.Unmatched),
		Warnings:       res.Warnings,
		PathCount:      res.Stats.PathCount,
		OperationCount: res.Stats.OperationCount,
	}

	data := []byte(outcome.Text)
	if format == cliutil.FormatYAML {
		data, err = res.YAML()
		if err != nil {
			return errResult(err), extractOutput{}, nil
		}
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0o644); err != nil { //nolint:gosec // G306: output files are meant to be readable
			return errResult(fmt.Errorf("failed to write output file: %w", err)), extractOutput{}, nil
		}
		output.WrittenTo = input.Output
	} else {
		output.Document = string(data)
	}

	return nil, output, nil
}

func pairKeys(pairs []selector.Pair) []string {
	keys := makeSlice[string](len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.String())
	}
	return keys
}
