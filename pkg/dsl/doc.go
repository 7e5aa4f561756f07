/*
Package dsl provides a fluent builder for survey documents.

It is meant for tests, fixtures and programs that generate surveys, where a JSON
file would be noisy:

	b := dsl.New().Title("Feedback")
	page := b.Page("page1")
	page.Question("q1", survey.QuestionRadiogroup).Choices("yes", "no")
	page.Question("q2", survey.QuestionComment).VisibleIf("{q1} = 'no'")
	b.Trigger(survey.TriggerComplete).When("{q1} = 'yes'")

	doc, err := b.Build()

Build reports every misuse at once: unknown properties, duplicate names and
triggers without a type.
*/
package dsl
