// Package registry defines binding kinds and the ordered registry that holds them.
//
// A binding kind names one way an expression can be attached to the document tree:
// which owner nodes it applies to, which property carries the expression, whether it is
// offered to users, which auxiliary fields it needs and how it reads in plain text.
//
//	reg := registry.NewDefault()
//	k, _ := reg.ByName(registry.QuestionVisibility)
//	k.Matches(q)   // true for any question
//	k.Property     // "visibleIf"
//
// Registering a kind whose name is already taken replaces the earlier one in place,
// which lets tests and embedders customise individual built-ins.
package registry
