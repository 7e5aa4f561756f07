package survey

// Question types with dedicated logic properties.
const (
	QuestionText           = "text"
	QuestionComment        = "comment"
	QuestionExpression     = "expression"
	QuestionRadiogroup     = "radiogroup"
	QuestionCheckbox       = "checkbox"
	QuestionDropdown       = "dropdown"
	QuestionTagbox         = "tagbox"
	QuestionRanking        = "ranking"
	QuestionMatrix         = "matrix"
	QuestionMatrixDropdown = "matrixdropdown"
	QuestionMatrixDynamic  = "matrixdynamic"
)

// Question is a leaf element of the tree.
type Question struct {
	base
	named
	conditions

	QType string

	Expression             string
	DefaultValueExpression string
	MinValueExpression     string
	MaxValueExpression     string
	ChoicesVisibleIf       string
	ChoicesEnableIf        string
	RowsVisibleIf          string
	ColumnsVisibleIf       string

	Columns    []*Column
	Choices    []*Choice
	Validators []*Validator
}

// NewQuestion creates a detached question of the given type.
func NewQuestion(typ, name string) *Question {
	if typ == "" {
		typ = QuestionText
	}
	return &Question{base: newBase(), QType: typ, named: named{NodeName: name}}
}

func (q *Question) element()        {}
func (q *Question) Kind() Kind      { return KindQuestion }
func (q *Question) Type() string    { return q.QType }
func (q *Question) Props() []string { return fieldNames(q.fields()) }

func (q *Question) Prop(name string) (string, bool) { return getField(q.fields(), name) }

func (q *Question) SetProp(name, value string) bool { return setField(q.fields(), name, value) }

// HasChoices reports whether the question type carries a choice list.
func (q *Question) HasChoices() bool {
	switch q.QType {
	case QuestionRadiogroup, QuestionCheckbox, QuestionDropdown, QuestionTagbox, QuestionRanking:
		return true
	}
	return false
}

// HasColumns reports whether the question type carries column nodes.
func (q *Question) HasColumns() bool {
	return q.QType == QuestionMatrixDropdown || q.QType == QuestionMatrixDynamic
}

// IsMatrix reports whether the question is any matrix type.
func (q *Question) IsMatrix() bool {
	return q.QType == QuestionMatrix || q.HasColumns()
}

// The declared property set depends on the question type.
func (q *Question) fields() []field {
	fs := append([]field{{PropName, &q.NodeName}, {PropTitle, &q.NodeTitle}}, q.conditionFields()...)
	fs = append(fs, field{PropDefaultValueExpression, &q.DefaultValueExpression})
	switch {
	case q.QType == QuestionExpression:
		fs = append(fs, field{PropExpression, &q.Expression})
	case q.QType == QuestionText:
		fs = append(fs,
			field{PropMinValueExpression, &q.MinValueExpression},
			field{PropMaxValueExpression, &q.MaxValueExpression},
		)
	case q.HasChoices():
		fs = append(fs,
			field{PropChoicesVisibleIf, &q.ChoicesVisibleIf},
			field{PropChoicesEnableIf, &q.ChoicesEnableIf},
		)
	case q.QType == QuestionMatrix:
		fs = append(fs,
			field{PropRowsVisibleIf, &q.RowsVisibleIf},
			field{PropColumnsVisibleIf, &q.ColumnsVisibleIf},
		)
	case q.HasColumns():
		fs = append(fs, field{PropRowsVisibleIf, &q.RowsVisibleIf})
	}
	return fs
}

// AddColumn appends a column to a matrix question.
func (q *Question) AddColumn(c *Column) *Column {
	c.parent = q
	q.Columns = append(q.Columns, c)
	notify(q, Event{Type: EventElementAdded, Node: c})
	return c
}

// RemoveColumn detaches c.
func (q *Question) RemoveColumn(c *Column) bool {
	for i, cur := range q.Columns {
		if cur == c {
			q.Columns = append(q.Columns[:i:i], q.Columns[i+1:]...)
			notify(q, Event{Type: EventElementRemoved, Node: c})
			c.parent = nil
			return true
		}
	}
	return false
}

// ColumnByName looks a column up by exact name.
func (q *Question) ColumnByName(name string) *Column {
	for _, c := range q.Columns {
		if c.NodeName == name {
			return c
		}
	}
	return nil
}

// AddChoice appends a choice.
func (q *Question) AddChoice(c *Choice) *Choice {
	c.parent = q
	q.Choices = append(q.Choices, c)
	notify(q, Event{Type: EventElementAdded, Node: c})
	return c
}

// AddValidator appends a validator.
func (q *Question) AddValidator(v *Validator) *Validator {
	v.parent = q
	q.Validators = append(q.Validators, v)
	notify(q, Event{Type: EventElementAdded, Node: v})
	return v
}

// Column is a column of a dropdown or dynamic matrix.
type Column struct {
	base
	named
	conditions
	TotalExpression string
}

// NewColumn creates a detached column.
func NewColumn(name string) *Column {
	return &Column{base: newBase(), named: named{NodeName: name}}
}

func (c *Column) Kind() Kind      { return KindColumn }
func (c *Column) Type() string    { return "" }
func (c *Column) Props() []string { return fieldNames(c.fields()) }

func (c *Column) Prop(name string) (string, bool) { return getField(c.fields(), name) }

func (c *Column) SetProp(name, value string) bool { return setField(c.fields(), name, value) }

func (c *Column) fields() []field {
	fs := append([]field{{PropName, &c.NodeName}, {PropTitle, &c.NodeTitle}}, c.conditionFields()...)
	return append(fs, field{PropTotalExpression, &c.TotalExpression})
}

// Choice is one item of a choice list. Its name is its value.
type Choice struct {
	base
	Value     string
	Text      string
	VisibleIf string
	EnableIf  string
}

// NewChoice creates a detached choice.
func NewChoice(value string) *Choice {
	return &Choice{base: newBase(), Value: value}
}

func (c *Choice) Kind() Kind      { return KindChoice }
func (c *Choice) Type() string    { return "" }
func (c *Choice) Name() string    { return c.Value }
func (c *Choice) Title() string   { return titleOr(c.Text, c.Value) }
func (c *Choice) Props() []string { return fieldNames(c.fields()) }

func (c *Choice) Prop(name string) (string, bool) { return getField(c.fields(), name) }

func (c *Choice) SetProp(name, value string) bool { return setField(c.fields(), name, value) }

func (c *Choice) fields() []field {
	return []field{
		{PropValue, &c.Value},
		{PropText, &c.Text},
		{PropVisibleIf, &c.VisibleIf},
		{PropEnableIf, &c.EnableIf},
	}
}

// ValidatorExpression is the only validator type carrying an expression.
const ValidatorExpression = "expression"

// Validator is a question validator.
type Validator struct {
	base
	VType      string
	Text       string
	Expression string
}

// NewValidator creates a detached validator.
func NewValidator(typ string) *Validator {
	return &Validator{base: newBase(), VType: typ}
}

func (v *Validator) Kind() Kind      { return KindValidator }
func (v *Validator) Type() string    { return v.VType }
func (v *Validator) Name() string    { return "" }
func (v *Validator) Title() string   { return v.Text }
func (v *Validator) Props() []string { return fieldNames(v.fields()) }

func (v *Validator) Prop(name string) (string, bool) { return getField(v.fields(), name) }

func (v *Validator) SetProp(name, value string) bool { return setField(v.fields(), name, value) }

func (v *Validator) fields() []field {
	fs := []field{{PropText, &v.Text}}
	if v.VType == ValidatorExpression {
		fs = append(fs, field{PropExpression, &v.Expression})
	}
	return fs
}
