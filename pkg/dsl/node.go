package dsl

import "github.com/aretw0/logica/pkg/survey"

// NodeBuilder sets the properties of one node.
type NodeBuilder struct {
	node    survey.Node
	builder *Builder
}

// Node returns the node under construction.
func (nb *NodeBuilder) Node() survey.Node {
	return nb.node
}

// Set writes any declared property.
func (nb *NodeBuilder) Set(prop, value string) *NodeBuilder {
	nb.builder.set(nb.node, prop, value)
	return nb
}

// Title sets the display title.
func (nb *NodeBuilder) Title(title string) *NodeBuilder {
	return nb.Set(survey.PropTitle, title)
}

// VisibleIf sets the visibility condition.
func (nb *NodeBuilder) VisibleIf(expr string) *NodeBuilder {
	return nb.Set(survey.PropVisibleIf, expr)
}

// EnableIf sets the enabling condition.
func (nb *NodeBuilder) EnableIf(expr string) *NodeBuilder {
	return nb.Set(survey.PropEnableIf, expr)
}

// RequiredIf sets the requirement condition.
func (nb *NodeBuilder) RequiredIf(expr string) *NodeBuilder {
	return nb.Set(survey.PropRequiredIf, expr)
}

// When sets the expression of triggers, calculated values and expression questions.
func (nb *NodeBuilder) When(expr string) *NodeBuilder {
	return nb.Set(survey.PropExpression, expr)
}

// ContainerBuilder builds a page or panel and its elements.
type ContainerBuilder struct {
	NodeBuilder
	container survey.Container
}

// Question appends a question.
func (cb *ContainerBuilder) Question(name, typ string) *QuestionBuilder {
	q := survey.NewQuestion(typ, name)
	cb.container.AddElement(q)
	return &QuestionBuilder{NodeBuilder: NodeBuilder{node: q, builder: cb.builder}, question: q}
}

// Panel appends a nested panel.
func (cb *ContainerBuilder) Panel(name string) *ContainerBuilder {
	p := survey.NewPanel(name)
	cb.container.AddElement(p)
	return &ContainerBuilder{NodeBuilder: NodeBuilder{node: p, builder: cb.builder}, container: p}
}

// VisibleIf sets the visibility condition.
func (cb *ContainerBuilder) VisibleIf(expr string) *ContainerBuilder {
	cb.NodeBuilder.VisibleIf(expr)
	return cb
}

// EnableIf sets the enabling condition.
func (cb *ContainerBuilder) EnableIf(expr string) *ContainerBuilder {
	cb.NodeBuilder.EnableIf(expr)
	return cb
}

// QuestionBuilder builds a question and its columns, choices and validators.
type QuestionBuilder struct {
	NodeBuilder
	question *survey.Question
}

// Question returns the question under construction.
func (qb *QuestionBuilder) Question() *survey.Question {
	return qb.question
}

// VisibleIf sets the visibility condition.
func (qb *QuestionBuilder) VisibleIf(expr string) *QuestionBuilder {
	qb.NodeBuilder.VisibleIf(expr)
	return qb
}

// EnableIf sets the enabling condition.
func (qb *QuestionBuilder) EnableIf(expr string) *QuestionBuilder {
	qb.NodeBuilder.EnableIf(expr)
	return qb
}

// RequiredIf sets the requirement condition.
func (qb *QuestionBuilder) RequiredIf(expr string) *QuestionBuilder {
	qb.NodeBuilder.RequiredIf(expr)
	return qb
}

// Title sets the display title.
func (qb *QuestionBuilder) Title(title string) *QuestionBuilder {
	qb.NodeBuilder.Title(title)
	return qb
}

// Choices appends plain choices.
func (qb *QuestionBuilder) Choices(values ...string) *QuestionBuilder {
	if !qb.question.HasChoices() {
		qb.builder.fail("question %q of type %s has no choices", qb.question.Name(), qb.question.QType)
		return qb
	}
	for _, v := range values {
		qb.question.AddChoice(survey.NewChoice(v))
	}
	return qb
}

// Choice appends a choice and returns its builder.
func (qb *QuestionBuilder) Choice(value string) *NodeBuilder {
	if !qb.question.HasChoices() {
		qb.builder.fail("question %q of type %s has no choices", qb.question.Name(), qb.question.QType)
	}
	c := qb.question.AddChoice(survey.NewChoice(value))
	return &NodeBuilder{node: c, builder: qb.builder}
}

// Column appends a matrix column and returns its builder.
func (qb *QuestionBuilder) Column(name string) *NodeBuilder {
	if !qb.question.HasColumns() {
		qb.builder.fail("question %q of type %s has no columns", qb.question.Name(), qb.question.QType)
	}
	c := qb.question.AddColumn(survey.NewColumn(name))
	return &NodeBuilder{node: c, builder: qb.builder}
}

// Validate appends an expression validator.
func (qb *QuestionBuilder) Validate(expr, text string) *QuestionBuilder {
	v := survey.NewValidator(survey.ValidatorExpression)
	v.Expression = expr
	v.Text = text
	qb.question.AddValidator(v)
	return qb
}
