package pipeline

import (
	"github.com/erraggy/oaspick/document"
	"github.com/erraggy/oaspick/extractor"
)

type extractFunc func(doc document.Value, sel string, opts ...extractor.Option) (*extractor.Result, error)

// Option configures Run.
type Option func(*runConfig)

type runConfig struct {
	logger  document.Logger
	extract extractFunc
}

func applyOptions(opts ...Option) *runConfig {
	cfg := &runConfig{
		logger:  document.NopLogger{},
		extract: extractor.Extract,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets a logger passed down to validation and extraction.
// A nil logger is ignored.
func WithLogger(l document.Logger) Option {
	return func(cfg *runConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}
