package registry

import (
	"fmt"

	"github.com/aretw0/logica/pkg/schema"
	"github.com/aretw0/logica/pkg/survey"
)

// Names of the built-in kinds.
const (
	PageVisibility              = "page_visibility"
	PanelVisibility             = "panel_visibility"
	PanelEnable                 = "panel_enable"
	QuestionVisibility          = "question_visibility"
	QuestionEnable              = "question_enable"
	QuestionRequire             = "question_require"
	TriggerComplete             = "trigger_complete"
	TriggerSetValue             = "trigger_setvalue"
	TriggerCopyValue            = "trigger_copyvalue"
	TriggerSkip                 = "trigger_skip"
	TriggerRunExpression        = "trigger_runExpression"
	CompletedHTMLOnCondition    = "completedHtmlOnCondition"
	QuestionExpression          = "question_expression"
	QuestionExpressionValidator = "question_expressionValidator"
	ColumnVisibility            = "column_visibility"
	ColumnEnable                = "column_enable"
	ColumnRequire               = "column_require"
	ColumnTotal                 = "column_total"
	ChoiceVisibility            = "choice_visibility"
	ChoiceEnable                = "choice_enable"
	QuestionChoicesVisibility   = "question_choicesVisibility"
	QuestionChoicesEnable       = "question_choicesEnable"
	QuestionRowsVisibility      = "question_rowsVisibility"
	QuestionColumnsVisibility   = "question_columnsVisibility"
	CalculatedValue             = "calculatedValue"
)

func hasPages(n int) func(*survey.Document) bool {
	return func(d *survey.Document) bool { return len(d.Pages) >= n }
}

func hasPanels(d *survey.Document) bool { return len(d.AllPanels()) > 0 }

func hasQuestions(d *survey.Document) bool { return len(d.AllQuestions()) > 0 }

func ownerText(format string) func(RenderContext) string {
	return func(c RenderContext) string {
		if c.Owner == nil {
			return ""
		}
		return fmt.Sprintf(format, c.OwnerLabel())
	}
}

func parentText(format string) func(RenderContext) string {
	return func(c RenderContext) string {
		if c.Owner == nil || c.Owner.Parent() == nil {
			return ""
		}
		return fmt.Sprintf(format, c.Owner.Parent().Title())
	}
}

func triggerOfType(typ string) func(survey.Node) bool {
	return func(n survey.Node) bool { return n.Type() == typ }
}

func newTrigger(typ string) func() survey.Node {
	return func() survey.Node { return survey.NewTrigger(typ) }
}

func questionOfType(typ string) func(survey.Node) bool {
	return func(n survey.Node) bool { return n.Type() == typ }
}

func selected(name, display string, owner survey.Kind, prop string, available func(*survey.Document) bool, text string) Kind {
	return Kind{
		Name:        name,
		DisplayName: display,
		Property:    prop,
		OwnerKind:   owner,
		ShowInUI:    true,
		Owner:       OwnerSelected,
		Available:   available,
		Text:        ownerText(text),
	}
}

func hidden(name string, owner survey.Kind, prop string, match func(survey.Node) bool, text func(RenderContext) string) Kind {
	return Kind{
		Name:      name,
		Property:  prop,
		OwnerKind: owner,
		Match:     match,
		Owner:     OwnerSelected,
		Text:      text,
	}
}

// Builtins returns the built-in kinds in their registration order.
func Builtins() []Kind {
	return []Kind{
		selected(PageVisibility, "Show (hide) page", survey.KindPage, survey.PropVisibleIf, hasPages(2), "Make page {%s} visible"),
		selected(PanelVisibility, "Show (hide) panel", survey.KindPanel, survey.PropVisibleIf, hasPanels, "Make panel {%s} visible"),
		selected(PanelEnable, "Enable (disable) panel", survey.KindPanel, survey.PropEnableIf, hasPanels, "Make panel {%s} enable"),
		selected(QuestionVisibility, "Show (hide) question", survey.KindQuestion, survey.PropVisibleIf, hasQuestions, "Make question {%s} visible"),
		selected(QuestionEnable, "Enable (disable) question", survey.KindQuestion, survey.PropEnableIf, hasQuestions, "Make question {%s} enable"),
		selected(QuestionRequire, "Make question required", survey.KindQuestion, survey.PropRequiredIf, hasQuestions, "Make question {%s} required"),
		{
			Name:          TriggerComplete,
			DisplayName:   "Complete survey",
			Property:      survey.PropExpression,
			OwnerKind:     survey.KindTrigger,
			Match:         triggerOfType(survey.TriggerComplete),
			ShowInUI:      true,
			HideWhenInUse: true,
			Owner:         OwnerCreated,
			Create:        newTrigger(survey.TriggerComplete),
			Text:          func(RenderContext) string { return "Survey becomes completed" },
		},
		{
			Name:        TriggerSetValue,
			DisplayName: "Set question value",
			Property:    survey.PropExpression,
			OwnerKind:   survey.KindTrigger,
			Match:       triggerOfType(survey.TriggerSetValue),
			ShowInUI:    true,
			Owner:       OwnerCreated,
			Create:      newTrigger(survey.TriggerSetValue),
			Extras: []ExtraField{
				{Name: survey.PropSetToName, Type: schema.NonEmpty(), Ref: true},
				{Name: survey.PropSetValue, Type: schema.String()},
			},
			Available: hasQuestions,
			Text: func(c RenderContext) string {
				if c.Extras[survey.PropSetToName] == "" {
					return ""
				}
				return fmt.Sprintf("Set into question: {%s} value %s", c.Ref(survey.PropSetToName), c.Extras[survey.PropSetValue])
			},
		},
		{
			Name:        TriggerCopyValue,
			DisplayName: "Copy question value",
			Property:    survey.PropExpression,
			OwnerKind:   survey.KindTrigger,
			Match:       triggerOfType(survey.TriggerCopyValue),
			ShowInUI:    true,
			Owner:       OwnerCreated,
			Create:      newTrigger(survey.TriggerCopyValue),
			Extras: []ExtraField{
				{Name: survey.PropSetToName, Type: schema.NonEmpty(), Ref: true},
				{Name: survey.PropFromName, Type: schema.NonEmpty(), Ref: true},
			},
			Available: hasQuestions,
			Text: func(c RenderContext) string {
				if c.Extras[survey.PropSetToName] == "" || c.Extras[survey.PropFromName] == "" {
					return ""
				}
				return fmt.Sprintf("Copy into question: {%s} value from question {%s}", c.Ref(survey.PropSetToName), c.Ref(survey.PropFromName))
			},
		},
		{
			Name:        TriggerSkip,
			DisplayName: "Skip to question",
			Property:    survey.PropExpression,
			OwnerKind:   survey.KindTrigger,
			Match:       triggerOfType(survey.TriggerSkip),
			ShowInUI:    true,
			Owner:       OwnerCreated,
			Create:      newTrigger(survey.TriggerSkip),
			Extras: []ExtraField{
				{Name: survey.PropGotoName, Type: schema.NonEmpty(), Ref: true},
			},
			Available: hasQuestions,
			Text: func(c RenderContext) string {
				if c.Extras[survey.PropGotoName] == "" {
					return ""
				}
				return fmt.Sprintf("Survey skip to the question {%s}", c.Ref(survey.PropGotoName))
			},
		},
		{
			Name:        TriggerRunExpression,
			DisplayName: "Run expression",
			Property:    survey.PropExpression,
			OwnerKind:   survey.KindTrigger,
			Match:       triggerOfType(survey.TriggerRunExpression),
			ShowInUI:    true,
			Owner:       OwnerCreated,
			Create:      newTrigger(survey.TriggerRunExpression),
			Extras: []ExtraField{
				{Name: survey.PropRunExpression, Type: schema.NonEmpty()},
				{Name: survey.PropSetToName, Type: schema.String(), Ref: true},
			},
			Text: func(c RenderContext) string {
				run := c.Extras[survey.PropRunExpression]
				if run == "" {
					return ""
				}
				text := fmt.Sprintf("Run expression: '%s'", c.Formula(run))
				if c.Extras[survey.PropSetToName] != "" {
					text += fmt.Sprintf(" and set it's result into question: {%s}", c.Ref(survey.PropSetToName))
				}
				return text
			},
		},
		{
			Name:        CompletedHTMLOnCondition,
			DisplayName: "Show custom text for the 'Thank you page'",
			Property:    survey.PropExpression,
			OwnerKind:   survey.KindHTMLCondition,
			ShowInUI:    true,
			Owner:       OwnerCreated,
			Create:      func() survey.Node { return survey.NewHTMLCondition() },
			Extras: []ExtraField{
				{Name: survey.PropHTML, Type: schema.NonEmpty()},
			},
			Text: func(RenderContext) string { return "Show custom text for the 'Thank you page'." },
		},
		hidden(QuestionExpression, survey.KindQuestion, survey.PropExpression, questionOfType(survey.QuestionExpression), ownerText("Calculate value of question {%s}")),
		hidden(QuestionExpressionValidator, survey.KindValidator, survey.PropExpression, nil, parentText("Validate question {%s}")),
		hidden(ColumnVisibility, survey.KindColumn, survey.PropVisibleIf, nil, ownerText("Make column {%s} visible")),
		hidden(ColumnEnable, survey.KindColumn, survey.PropEnableIf, nil, ownerText("Make column {%s} enable")),
		hidden(ColumnRequire, survey.KindColumn, survey.PropRequiredIf, nil, ownerText("Make column {%s} required")),
		hidden(ColumnTotal, survey.KindColumn, survey.PropTotalExpression, nil, ownerText("Calculate total of column {%s}")),
		hidden(ChoiceVisibility, survey.KindChoice, survey.PropVisibleIf, nil, ownerText("Make choice {%s} visible")),
		hidden(ChoiceEnable, survey.KindChoice, survey.PropEnableIf, nil, ownerText("Make choice {%s} enable")),
		hidden(QuestionChoicesVisibility, survey.KindQuestion, survey.PropChoicesVisibleIf, nil, ownerText("Filter visible choices of question {%s}")),
		hidden(QuestionChoicesEnable, survey.KindQuestion, survey.PropChoicesEnableIf, nil, ownerText("Filter enabled choices of question {%s}")),
		hidden(QuestionRowsVisibility, survey.KindQuestion, survey.PropRowsVisibleIf, nil, ownerText("Filter visible rows of question {%s}")),
		hidden(QuestionColumnsVisibility, survey.KindQuestion, survey.PropColumnsVisibleIf, nil, ownerText("Filter visible columns of question {%s}")),
		{
			Name:      CalculatedValue,
			Property:  survey.PropExpression,
			OwnerKind: survey.KindCalculatedValue,
			Owner:     OwnerSelected,
			Text:      ownerText("Calculate value {%s}"),
		},
	}
}
