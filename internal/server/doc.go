// Package server serves the oaspick browser page and its JSON API.
//
// The page is a two-panel editor: the left panel takes a document and a
// selector and shows the extracted text, the right panel renders the result
// in an interactive viewer loaded from Config.ViewerURL. Edits to the
// document are validated as they happen and, once the document is valid and
// a selector is present, extraction runs after the configured debounce delay.
// A later edit cancels a pending extraction, so the last one to run wins.
//
// Routes:
//
//	GET  /              the page
//	POST /              form submission for browsers without scripts
//	POST /api/validate  {document, format?} → verdict
//	POST /api/extract   {document, selector, format?, unmatched?} → result
//	GET  /api/version   static build and endpoint information
//	GET  /healthz       liveness probe
//
// Every response carries an X-Request-Id header and every request is logged.
package server
