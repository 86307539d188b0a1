package commands

import (
	"context"
	"errors"
	"flag"

	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/mcpserver"
)

// HandleMCP executes the mcp command: an MCP server on stdin/stdout.
func HandleMCP(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaspick mcp\n\n")
		cliutil.Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio with the tools\n")
		cliutil.Writef(fs.Output(), "validate, extract, list_operations and info.\n\n")
		cliutil.Writef(fs.Output(), "Configure it through OASPICK_* variables in the MCP client config.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return errors.New("mcp command takes no arguments")
	}
	return mcpserver.Run(ctx)
}
