// Package extractor builds a copy of an OpenAPI document that keeps only
// selected operations.
//
// The extractor treats the document as generic JSON. It reads only the
// "paths" object and passes every other top-level member through
// unchanged, so it works the same for Swagger 2.0 and OpenAPI 3.x.
//
//	doc, _ := document.ParseString(text, document.FormatJSON)
//	res, err := extractor.Extract(doc, "put:/pet,get:/user/{username}")
//	if err != nil {
//		return err
//	}
//	out, _ := res.JSON() // two-space indented
//
// Selector pairs that match nothing are skipped by default. Use
// [WithUnmatchedPolicy] to turn them into warnings or into an error.
//
// The input document is never modified and the result shares no storage
// with it.
package extractor
