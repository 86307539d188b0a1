package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"strings"

	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/config"
	"github.com/erraggy/oaspick/internal/server"
)

// ServeFlags contains flags for the serve command
type ServeFlags struct {
	Addr            string
	ViewerURL       string
	Unmatched       string
	MaxDocumentSize int64
}

// SetupServeFlags creates and configures a FlagSet for the serve command.
// Returns the FlagSet and a ServeFlags struct with bound flag variables.
// Defaults come from cfg, so flags override OASPICK_* variables.
func SetupServeFlags(cfg *config.Config) (*flag.FlagSet, *ServeFlags) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	flags := &ServeFlags{}

	fs.StringVar(&flags.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&flags.ViewerURL, "viewer-url", cfg.ViewerURL, "base URL serving swagger-ui-bundle.js and swagger-ui.css")
	fs.StringVar(&flags.Unmatched, "unmatched", cfg.Unmatched.String(), "pairs that match nothing: ignore, warn or fail")
	fs.Int64Var(&flags.MaxDocumentSize, "max-size", cfg.MaxDocumentSize, "largest accepted request body in bytes")
	fs.DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "delay between the last edit and automatic extraction in the page")
	fs.DurationVar(&cfg.ShutdownGrace, "grace", cfg.ShutdownGrace, "shutdown grace period")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaspick serve [flags]\n\n")
		cliutil.Writef(fs.Output(), "Serve the extractor page and its JSON API.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEnvironment:\n")
		cliutil.Writef(fs.Output(), "  OASPICK_ADDR, OASPICK_VIEWER_URL, OASPICK_DEBOUNCE, OASPICK_MAX_DOCUMENT_SIZE,\n")
		cliutil.Writef(fs.Output(), "  OASPICK_UNMATCHED, OASPICK_SHUTDOWN_GRACE, OASPICK_LOG_LEVEL, OASPICK_LOG_FORMAT\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaspick serve\n")
		cliutil.Writef(fs.Output(), "  oaspick serve -addr 127.0.0.1:9000 -debounce 1s\n")
	}

	return fs, flags
}

// HandleServe executes the serve command. It returns when ctx is cancelled
// and in-flight requests have finished.
func HandleServe(ctx context.Context, args []string) error {
	cfg := config.Load()
	fs, flags := SetupServeFlags(cfg)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return errors.New("serve command takes no arguments")
	}

	policy, err := extractor.ParseUnmatchedPolicy(flags.Unmatched)
	if err != nil {
		return err
	}
	cfg.Addr = flags.Addr
	cfg.ViewerURL = strings.TrimRight(flags.ViewerURL, "/")
	cfg.Unmatched = policy
	if flags.MaxDocumentSize > 0 {
		cfg.MaxDocumentSize = flags.MaxDocumentSize
	}

	srv, err := server.New(cfg, cfg.NewLogger(os.Stderr))
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}
