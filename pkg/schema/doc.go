// Package schema validates the auxiliary fields a logic operation carries next to
// its expression.
//
// A binding kind such as "copy value" needs more than an expression: it needs the
// question to copy into and the question to copy from. Kinds describe those extra
// fields with a Schema, mapping field names to Types:
//
//	s := schema.Schema{
//	    "setToName": schema.NonEmpty(),
//	    "setValue":  schema.String(),
//	}
//
//	if err := schema.Validate(s, map[string]any{"setToName": "", "setValue": "1"}); err != nil {
//	    // err is an *AggregateError listing "setToName"
//	}
//
// Schemas can be parsed from type names, which is how custom kinds declared in
// configuration files describe their fields:
//
//	s, err := schema.ParseTypeMap(map[string]string{"gotoName": "nonempty"})
//
// Types that depend on the document (a field must name an existing question) are
// built with Custom and a closure over the lookup.
package schema
