// Package expression is the parse-and-validate service for survey expressions.
//
// Survey expressions reference answers with braces and read like plain sentences:
//
//	{age} >= 18 and {country} anyof ['us', 'ca']
//	{q1} notempty or not ({q2} contains 'x')
//
// The package never evaluates expressions. It checks them against the expression
// grammar, lists the variables they reference and rewrites variable references.
package expression
