package validator_test

import (
	"errors"
	"testing"

	"github.com/aretw0/logica/internal/validator"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/aretw0/logica/pkg/survey/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) *survey.Document {
	t.Helper()
	doc, err := codec.Decode([]byte(src), codec.JSON)
	require.NoError(t, err)
	return doc
}

func TestCheck_CleanDocument(t *testing.T) {
	doc := decode(t, `{
		"elements": [
			{"type": "text", "name": "q1", "visibleIf": "{q2} = 1 and {total} > 3"},
			{"type": "matrixdynamic", "name": "m", "columns": [{"name": "c1", "visibleIf": "{row.c2} = 1"}, {"name": "c2"}]},
			{"type": "text", "name": "q2"}
		],
		"calculatedValues": [{"name": "total", "expression": "{Q2} * 2"}],
		"triggers": [{"type": "copyvalue", "expression": "{q1} notempty", "setToName": "q2", "fromName": "q1"}]
	}`)

	issues := validator.New(nil).Check(doc)
	assert.Empty(t, issues)
	assert.NoError(t, validator.Err(issues))
}

func TestCheck_Findings(t *testing.T) {
	doc := decode(t, `{
		"elements": [
			{"type": "text", "name": "q1", "visibleIf": "{q2} = = 1"},
			{"type": "text", "name": "q2", "enableIf": "{ghost} = 1 or {alpha.x} > 2"}
		],
		"triggers": [{"type": "setvalue", "expression": "{q1} = 1", "setToName": "missing"}]
	}`)

	issues := validator.New(nil).Check(doc)
	require.Len(t, issues, 4)

	assert.Equal(t, validator.SeverityError, issues[0].Severity)
	assert.Equal(t, "q1", issues[0].Node)
	assert.Equal(t, survey.PropVisibleIf, issues[0].Property)

	assert.Equal(t, validator.Issue{
		Severity: validator.SeverityWarning,
		Node:     "q2",
		Property: survey.PropEnableIf,
		Message:  "unknown variable {alpha.x}",
	}, issues[1])
	assert.Equal(t, "unknown variable {ghost}", issues[2].Message)

	assert.Equal(t, validator.SeverityError, issues[3].Severity)
	assert.Equal(t, "setvaluetrigger", issues[3].Node)
	assert.Equal(t, survey.PropSetToName, issues[3].Property)

	assert.Equal(t, 2, validator.Errors(issues))
	err := validator.Err(issues)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 errors")
}

func TestCheck_CustomSyntax(t *testing.T) {
	doc := decode(t, `{"elements": [{"type": "comment", "name": "q1", "validators": [{"type": "expression", "expression": "{q1} notempty"}]}]}`)

	reject := validator.WithSyntaxCheck(func(string) error { return errors.New("nope") })
	issues := validator.New(nil, reject).Check(doc)
	require.Len(t, issues, 1)
	assert.Equal(t, "q1.validators", issues[0].Node)
	assert.Equal(t, "nope", issues[0].Message)
}
