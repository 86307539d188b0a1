package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/internal/httputil"
)

type listOperationsInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The document to list operations from"`
	Method     string    `json:"method,omitempty"      jsonschema:"Only operations with this HTTP method (case-insensitive)"`
	PathPrefix string    `json:"path_prefix,omitempty" jsonschema:"Only operations whose path starts with this prefix"`
	Deprecated *bool     `json:"deprecated,omitempty"  jsonschema:"Only deprecated (true) or non-deprecated (false) operations"`
	Offset     int       `json:"offset,omitempty"      jsonschema:"Skip the first N results (for pagination)"`
	Limit      int       `json:"limit,omitempty"       jsonschema:"Maximum number of results to return (default 100)"`
}

type operationSummary struct {
	Selector    string `json:"selector"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	OperationID string `json:"operation_id,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type listOperationsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Operations []operationSummary `json:"operations,omitempty"`
}

func handleListOperations(ctx context.Context, _ *mcp.CallToolRequest, input listOperationsInput) (*mcp.CallToolResult, listOperationsOutput, error) {
	resolved, err := input.Spec.resolve(ctx)
	if err != nil {
		return errResult(err), listOperationsOutput{}, nil
	}

	ops := document.Operations(resolved.Document)
	method := httputil.NormalizeMethod(strings.TrimSpace(input.Method))

	var matched []operationSummary
	for _, op := range ops {
		if method != "" && httputil.NormalizeMethod(op.Method) != method {
			continue
		}
		if input.PathPrefix != "" && !strings.HasPrefix(op.Path, input.PathPrefix) {
			continue
		}
		if input.Deprecated != nil && op.Deprecated != *input.Deprecated {
			continue
		}
		matched = append(matched, operationSummary{
			Selector:    op.Key(),
			Method:      op.Method,
			Path:        op.Path,
			OperationID: op.OperationID,
			Summary:     op.Summary,
			Deprecated:  op.Deprecated,
		})
	}

	page := paginate(matched, input.Offset, input.Limit)
	return nil, listOperationsOutput{
		Total:      len(ops),
		Matched:    len(matched),
		Returned:   len(page),
		Operations: page,
	}, nil
}
