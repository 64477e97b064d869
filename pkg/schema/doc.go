// Package schema checks the shape of generic machine documents before they are
// decoded into a domain.Definition.
//
// Loaders decode YAML, TOML, JSON or Markdown front matter into map[string]any.
// Each decoder produces its own numeric and slice types, so the validators here
// accept every integer flavor and both token lists and plain strings:
//
//	if err := schema.ValidateMachine(raw); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
//
// Every problem of a document is reported at once through an AggregateError.
package schema
