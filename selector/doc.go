// Package selector parses the compact operation selector grammar.
//
// A selector is either the wildcard "*" or a comma-separated list of
// method:path tokens:
//
//	sel := selector.Parse("PUT:/pet, get:/user/{username}")
//	for _, p := range sel.Pairs {
//		fmt.Println(p.Method, p.Path) // "put /pet", then "get /user/{username}"
//	}
//
// Methods are case-insensitive and normalized to lowercase. Paths must match
// a key of the document's paths object exactly, template placeholders
// included. Parsing never fails; tokens that cannot match simply don't.
package selector
