package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/extractor"
	"github.com/erraggy/oaspick/internal/cliutil"
	"github.com/erraggy/oaspick/internal/config"
	"github.com/erraggy/oaspick/internal/debounce"
	"github.com/erraggy/oaspick/pipeline"
)

// WatchFlags contains flags for the watch command
type WatchFlags struct {
	Selector    string
	Format      string
	InputFormat string
	Output      string
	Unmatched   string
	Interval    time.Duration
	Debounce    time.Duration
}

// SetupWatchFlags creates and configures a FlagSet for the watch command.
// Returns the FlagSet and a WatchFlags struct with bound flag variables.
// Defaults come from cfg.
func SetupWatchFlags(cfg *config.Config) (*flag.FlagSet, *WatchFlags) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags := &WatchFlags{}

	fs.StringVar(&flags.Selector, "s", "", "operations to keep: * or method:path pairs separated by commas")
	fs.StringVar(&flags.Selector, "selector", "", "operations to keep: * or method:path pairs separated by commas")
	fs.StringVar(&flags.Format, "format", cliutil.FormatJSON, "output format: json or yaml")
	fs.StringVar(&flags.InputFormat, "input-format", "", "input format: json, yaml or auto (default from file extension, else json)")
	fs.StringVar(&flags.Output, "o", "", "rewrite this file after each extraction instead of printing to stdout")
	fs.StringVar(&flags.Output, "output", "", "rewrite this file after each extraction instead of printing to stdout")
	fs.StringVar(&flags.Unmatched, "unmatched", cfg.Unmatched.String(), "pairs that match nothing: ignore, warn or fail")
	fs.DurationVar(&flags.Interval, "interval", 250*time.Millisecond, "how often to check the file for changes")
	fs.DurationVar(&flags.Debounce, "debounce", cfg.Debounce, "quiet period after the last change before extracting")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oaspick watch [flags] -s <selector> <file>\n\n")
		cliutil.Writef(fs.Output(), "Extract the selected operations, then again whenever the file changes.\n")
		cliutil.Writef(fs.Output(), "A burst of changes triggers one extraction once the file has been quiet\n")
		cliutil.Writef(fs.Output(), "for the debounce period. Failed extractions are logged and leave the\n")
		cliutil.Writef(fs.Output(), "last output in place. Stop with Ctrl-C.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oaspick watch -s 'put:/pet,get:/user/{username}' -o subset.json petstore.json\n")
		cliutil.Writef(fs.Output(), "  oaspick watch -s '*' --debounce 1s --format yaml -o api.yaml openapi.json\n")
	}

	return fs, flags
}

// fileStamp identifies one version of a file.
type fileStamp struct {
	modTime time.Time
	size    int64
}

func statFile(path string) (fileStamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size()}, nil
}

// watcher re-runs one extraction; runs never overlap.
type watcher struct {
	path    string
	flags   *WatchFlags
	format  document.Format
	policy  extractor.UnmatchedPolicy
	logger  *slog.Logger
	mu      sync.Mutex
	runs    int
	lastErr error
}

func (w *watcher) run() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.runs++

	raw, err := readSource(w.path)
	if err == nil {
		err = w.extract(raw)
	}
	w.lastErr = err
	if err != nil {
		w.logger.Error("extraction failed", "document", w.path, "error", pipeline.Message(err))
	}
}

func (w *watcher) extract(raw string) error {
	out := pipeline.Run(pipeline.Request{
		Document:  raw,
		Selector:  w.flags.Selector,
		Format:    w.format,
		Unmatched: w.policy,
	}, pipeline.WithLogger(document.NewSlogAdapter(w.logger)))
	if !out.OK() {
		return out.Err
	}
	if msg := out.Verdict.Message; msg != "" {
		w.logger.Warn(msg, "document", w.path)
	}
	for _, warning := range out.Result.Warnings {
		w.logger.Warn(warning, "document", w.path)
	}

	data := []byte(out.Text)
	if w.flags.Format == cliutil.FormatYAML {
		var err error
		if data, err = out.Result.YAML(); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	}
	if err := writeOutput(w.flags.Output, data); err != nil {
		return err
	}
	w.logger.Info("extracted",
		"document", w.path,
		"matched", len(out.Result.Matched),
		"unmatched", len(out.Result.Unmatched),
		"output", w.flags.Output)
	return nil
}

// HandleWatch executes the watch command. It returns when ctx is cancelled.
func HandleWatch(ctx context.Context, args []string) error {
	cfg := config.Load()
	fs, flags := SetupWatchFlags(cfg)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 || fs.Arg(0) == StdinFilePath {
		fs.Usage()
		return fmt.Errorf("watch command requires exactly one file path")
	}
	if flags.Selector == "" {
		return fmt.Errorf("watch command requires a selector (-s)")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format, cliutil.FormatJSON, cliutil.FormatYAML); err != nil {
		return err
	}
	if flags.Interval <= 0 || flags.Debounce < 0 {
		return fmt.Errorf("interval must be positive and debounce must not be negative")
	}

	path := fs.Arg(0)
	format, err := inputFormat(flags.InputFormat, path)
	if err != nil {
		return err
	}
	policy, err := extractor.ParseUnmatchedPolicy(flags.Unmatched)
	if err != nil {
		return err
	}
	last, err := statFile(path)
	if err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	w := &watcher{
		path:   path,
		flags:  flags,
		format: format,
		policy: policy,
		logger: cfg.NewLogger(os.Stderr),
	}
	return w.loop(ctx, last)
}

func (w *watcher) loop(ctx context.Context, last fileStamp) error {
	w.run()

	d := debounce.New(w.flags.Debounce)
	defer d.Stop()

	ticker := time.NewTicker(w.flags.Interval)
	defer ticker.Stop()

	w.logger.Info("watching", "document", w.path, "debounce", d.Delay())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			stamp, err := statFile(w.path)
			if err != nil {
				// editors often replace files; try again next tick
				w.logger.Debug("stat failed", "document", w.path, "error", err)
				continue
			}
			if stamp.modTime.Equal(last.modTime) && stamp.size == last.size {
				continue
			}
			last = stamp
			d.Trigger(w.run)
		}
	}
}
