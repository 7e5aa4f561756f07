package survey

// Trigger types.
const (
	TriggerComplete      = "complete"
	TriggerSetValue      = "setvalue"
	TriggerCopyValue     = "copyvalue"
	TriggerSkip          = "skip"
	TriggerRunExpression = "runexpression"
)

// Trigger runs an action when its expression turns true.
type Trigger struct {
	base
	TType         string
	Expression    string
	SetToName     string
	FromName      string
	GotoName      string
	SetValue      string
	RunExpression string
}

// NewTrigger creates a detached trigger of the given type.
func NewTrigger(typ string) *Trigger {
	return &Trigger{base: newBase(), TType: typ}
}

func (t *Trigger) Kind() Kind      { return KindTrigger }
func (t *Trigger) Type() string    { return t.TType }
func (t *Trigger) Name() string    { return t.TType + "trigger" }
func (t *Trigger) Title() string   { return t.Name() }
func (t *Trigger) Props() []string { return fieldNames(t.fields()) }

func (t *Trigger) Prop(name string) (string, bool) { return getField(t.fields(), name) }

func (t *Trigger) SetProp(name, value string) bool { return setField(t.fields(), name, value) }

// The declared property set depends on the trigger type.
func (t *Trigger) fields() []field {
	fs := []field{{PropExpression, &t.Expression}}
	switch t.TType {
	case TriggerSetValue:
		fs = append(fs, field{PropSetToName, &t.SetToName}, field{PropSetValue, &t.SetValue})
	case TriggerCopyValue:
		fs = append(fs, field{PropSetToName, &t.SetToName}, field{PropFromName, &t.FromName})
	case TriggerSkip:
		fs = append(fs, field{PropGotoName, &t.GotoName})
	case TriggerRunExpression:
		fs = append(fs, field{PropSetToName, &t.SetToName}, field{PropRunExpression, &t.RunExpression})
	}
	return fs
}

// CalculatedValue is a named expression evaluated on the survey data.
type CalculatedValue struct {
	base
	named
	Expression string
}

// NewCalculatedValue creates a detached calculated value.
func NewCalculatedValue(name string) *CalculatedValue {
	return &CalculatedValue{base: newBase(), named: named{NodeName: name}}
}

func (v *CalculatedValue) Kind() Kind      { return KindCalculatedValue }
func (v *CalculatedValue) Type() string    { return "" }
func (v *CalculatedValue) Props() []string { return fieldNames(v.fields()) }

func (v *CalculatedValue) Prop(name string) (string, bool) { return getField(v.fields(), name) }

func (v *CalculatedValue) SetProp(name, value string) bool { return setField(v.fields(), name, value) }

func (v *CalculatedValue) fields() []field {
	return []field{{PropName, &v.NodeName}, {PropExpression, &v.Expression}}
}

// HTMLCondition replaces the completed page markup when its expression is true.
type HTMLCondition struct {
	base
	Expression string
	HTML       string
}

// NewHTMLCondition creates a detached completed-html condition.
func NewHTMLCondition() *HTMLCondition {
	return &HTMLCondition{base: newBase()}
}

func (c *HTMLCondition) Kind() Kind      { return KindHTMLCondition }
func (c *HTMLCondition) Type() string    { return "" }
func (c *HTMLCondition) Name() string    { return "" }
func (c *HTMLCondition) Title() string   { return "" }
func (c *HTMLCondition) Props() []string { return fieldNames(c.fields()) }

func (c *HTMLCondition) Prop(name string) (string, bool) { return getField(c.fields(), name) }

func (c *HTMLCondition) SetProp(name, value string) bool { return setField(c.fields(), name, value) }

func (c *HTMLCondition) fields() []field {
	return []field{{PropExpression, &c.Expression}, {PropHTML, &c.HTML}}
}
