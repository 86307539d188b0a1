package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaspick"
)

type infoInput struct{}

func handleInfo(_ context.Context, _ *mcp.CallToolRequest, _ infoInput) (*mcp.CallToolResult, oaspick.AppInfo, error) {
	return nil, oaspick.Info(time.Now()), nil
}
