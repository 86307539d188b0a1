package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oaspick"
	"github.com/erraggy/oaspick/cmd/oaspick/commands"
)

// commandNames lists every top-level command for typo suggestions.
var commandNames = []string{"extract", "validate", "list", "watch", "serve", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command, args := os.Args[1], os.Args[2:]

	var err error
	switch command {
	case "version", "-v", "--version":
		printVersion(args)
	case "help", "-h", "--help":
		printUsage()
	case "extract":
		err = commands.HandleExtract(args)
	case "validate":
		err = commands.HandleValidate(args)
	case "list":
		err = commands.HandleList(args)
	case "watch":
		err = commands.HandleWatch(ctx, args)
	case "serve":
		err = commands.HandleServe(ctx, args)
	case "mcp":
		err = commands.HandleMCP(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		stop()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printVersion(args []string) {
	fmt.Printf("oaspick v%s\n", oaspick.Version())
	if len(args) > 0 && (args[0] == "-verbose" || args[0] == "--verbose") {
		fmt.Println(oaspick.BuildInfo())
	}
}

// suggestCommand returns the closest known command within an edit
// distance of two, or "" when nothing is close enough.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oaspick - pick operations out of OpenAPI documents

Usage:
  oaspick <command> [options]

Commands:
  extract     Keep only the selected operations of a document
  validate    Report whether a document looks like OpenAPI or Swagger
  list        List the operations a document defines
  watch       Re-extract whenever a document changes
  serve       Serve the extractor page and its JSON API
  mcp         Run an MCP server over stdio
  version     Show version information (--verbose for build details)
  help        Show this help message

Selectors:
  *                               every operation
  put:/pet,get:/user/{username}   method:path pairs separated by commas

Examples:
  oaspick extract -s 'put:/pet,get:/user/{username}' petstore.json
  oaspick extract -s '*' --format yaml -o api.yaml openapi.json
  cat petstore.json | oaspick validate -
  oaspick list --method get petstore.yaml
  oaspick watch -s 'post:/pet' -o subset.json petstore.json
  oaspick serve -addr :8080

Run 'oaspick <command> --help' for more information on a command.`)
}
