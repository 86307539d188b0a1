package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaspick/oaserrors"
	"github.com/erraggy/oaspick/validator"
)

type validateInput struct {
	Spec specInput `json:"spec" jsonschema:"The document to validate"`
}

type validateOutput struct {
	Verdict        string `json:"verdict"`
	Message        string `json:"message,omitempty"`
	Display        string `json:"display,omitempty"`
	CanExtract     bool   `json:"can_extract"`
	Version        string `json:"version,omitempty"`
	PathCount      int    `json:"path_count"`
	OperationCount int    `json:"operation_count"`
	Line           int    `json:"line,omitempty"`
	Column         int    `json:"column,omitempty"`
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	resolved, err := input.Spec.resolve(ctx)
	if err != nil {
		// Unparsable input is a verdict, not a tool failure.
		var perr *oaserrors.ParseError
		if errors.As(err, &perr) {
			v := validator.Verdict{Kind: validator.VerdictInvalidJSON, Message: perr.Detail(), Err: err}
			out := verdictOutput(v)
			out.Line = perr.Line
			out.Column = perr.Column
			return nil, out, nil
		}
		return errResult(err), validateOutput{}, nil
	}

	return nil, verdictOutput(validator.ValidateDocument(resolved.Document)), nil
}

func verdictOutput(v validator.Verdict) validateOutput {
	return validateOutput{
		Verdict:        v.Kind.String(),
		Message:        v.Message,
		Display:        v.Display(),
		CanExtract:     v.CanExtract(),
		Version:        v.Version,
		PathCount:      v.Stats.PathCount,
		OperationCount: v.Stats.OperationCount,
	}
}
