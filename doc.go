// Package oaspick extracts a chosen subset of operations from an OpenAPI or
// Swagger document.
//
// A user supplies a complete document and a selector naming the operations to
// keep. The result is a new document whose paths object holds only those
// operations, ready to hand to an interactive documentation viewer.
//
// # Packages
//
//   - document: order-preserving JSON value model, JSON/YAML decoding and encoding
//   - selector: the "method:path,method:path" and "*" selector grammar
//   - validator: shallow, heuristic OpenAPI/Swagger checks producing a verdict
//   - extractor: builds the filtered document for a selector
//   - pipeline: input checks, validation, extraction and error-to-text conversion
//   - oaserrors: error categories usable with errors.Is and errors.As
//
// # Quick Start
//
//	doc, err := document.Parse([]byte(raw), document.FormatJSON)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := extractor.Extract(doc, "put:/pet,get:/user/{username}")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := result.JSON()
//	fmt.Println(string(out))
//
// Run the whole flow, including validation and user-facing error text:
//
//	outcome := pipeline.Run(pipeline.Request{Document: raw, Selector: "*"})
//	fmt.Println(outcome.Text)
//
// # Selector Grammar
//
// The wildcard "*" keeps every operation and returns the document unchanged.
// Otherwise the selector is a comma-separated list of method:path pairs. The
// method is case-insensitive; the path must match a key of the paths object
// exactly, template placeholders included (for example /user/{username}).
// Pairs that match nothing are skipped unless an extractor policy says otherwise.
//
// # Binaries
//
// cmd/oaspick provides a CLI (extract, validate, list, watch), a web UI with a
// JSON API (serve) and an MCP server (mcp).
package oaspick
