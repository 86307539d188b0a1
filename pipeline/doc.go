// Package pipeline runs a complete extraction request the way every oaspick
// front end needs it: input checks, validation, extraction, and conversion
// of any failure into display text.
//
//	out := pipeline.Run(pipeline.Request{
//		Document: text,
//		Selector: "put:/pet,get:/user/{username}",
//	})
//	fmt.Println(out.Text) // indented JSON, or "Error: ..."
//
// Blank input yields an *oaserrors.InputError, text that does not parse an
// *oaserrors.ParseError, and any failure while filtering (including a
// panic) an *oaserrors.ExtractionError. Validation warnings do not stop a
// run; they are reported in Outcome.Verdict.
package pipeline
