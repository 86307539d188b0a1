// Package validator judges whether raw text looks like an OpenAPI or Swagger
// document before any extraction is attempted.
//
// The checks are heuristic, not a full schema validation:
//
//  1. Blank input yields [VerdictNone].
//  2. Text that does not parse yields [VerdictInvalidJSON] with the
//     decoder's own message. Extraction must not proceed.
//  3. A document without a truthy "openapi" or "swagger" field, or without
//     a truthy "paths" field, yields [VerdictWarning]. Warnings are
//     advisory and extraction may proceed.
//  4. Anything else is [VerdictValid].
//
// Example:
//
//	v := validator.Validate(`{"openapi":"3.0.0"}`)
//	fmt.Println(v.Display()) // Warning: No paths found in the Swagger document
//
// Input is strict JSON by default; pass WithFormat(document.FormatYAML) to
// accept YAML as well.
package validator
