// Package oaserrors provides structured error types for oaspick.
//
// Import path: github.com/erraggy/oaspick/oaserrors
//
// Every category has a struct type for [errors.As] and a sentinel for
// [errors.Is], so callers can tell a missing input from a syntax error from a
// failure inside the extractor without matching on message text.
//
// # Error Types
//
//   - [InputError]: the document or selector text was empty
//   - [ParseError]: the document is not valid JSON (or YAML, when allowed)
//   - [ValidationError]: a structural check failed
//   - [ExtractionError]: building the filtered document failed
//   - [ResourceLimitError]: the input exceeded a configured size
//   - [ConfigError]: an option, flag or environment value was invalid
//
// # Sentinel Errors
//
//   - [ErrInputMissing]: matches any [InputError]
//   - [ErrParse]: matches any [ParseError]
//   - [ErrValidation]: matches any [ValidationError]
//   - [ErrExtraction]: matches any [ExtractionError]
//   - [ErrResourceLimit]: matches any [ResourceLimitError]
//   - [ErrConfig]: matches any [ConfigError]
//
// # Usage Examples
//
//	doc, err := document.Parse(data, document.FormatJSON)
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // show the parser message to the user
//	}
//
//	var perr *oaserrors.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Printf("line %d, column %d: %s\n", perr.Line, perr.Column, perr.Detail())
//	}
package oaserrors
