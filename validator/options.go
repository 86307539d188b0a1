package validator

import "github.com/erraggy/oaspick/document"

// Option configures Validate and ValidateDocument.
type Option func(*validateConfig)

type validateConfig struct {
	format document.Format
	logger document.Logger
}

func applyOptions(opts ...Option) *validateConfig {
	cfg := &validateConfig{
		format: document.FormatJSON,
		logger: document.NopLogger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithFormat selects how the raw text is decoded. The default is strict
// JSON; document.FormatYAML and document.FormatAuto also accept YAML.
func WithFormat(format document.Format) Option {
	return func(cfg *validateConfig) {
		if format != "" {
			cfg.format = format
		}
	}
}

// WithLogger sets a logger for diagnostic output. A nil logger is ignored.
func WithLogger(l document.Logger) Option {
	return func(cfg *validateConfig) {
		if l != nil {
			cfg.logger = l
		}
	}
}
