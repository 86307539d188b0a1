// Package document holds the generic JSON value model oaspick works on.
//
// OpenAPI documents are treated as untyped JSON: the extractor only needs the
// top-level marker fields and the paths object, and everything else must pass
// through untouched. [Value] is a sum type over null, boolean, number, string,
// array and object. Objects keep member order and numbers keep their literal
// text, so a document that is parsed and re-encoded comes back in the order
// its author wrote it.
//
// # Parsing
//
//	v, err := document.Parse(data, document.FormatJSON)
//	var perr *oaserrors.ParseError
//	if errors.As(err, &perr) {
//		fmt.Println(perr.Detail()) // encoding/json's message
//	}
//
// [FormatJSON] is strict and is the default. [FormatYAML] accepts YAML (and
// therefore JSON); [FormatAuto] picks one by looking at the first byte.
//
// # Encoding
//
// [EncodeJSON] with a two-space indent produces the interchange text used by
// the rest of oaspick. [EncodeYAML] keeps the same member order.
//
// # Logging
//
// [Logger] is the small structured logging interface accepted throughout
// oaspick; [NewSlogAdapter] wraps a *slog.Logger.
package document
