package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/logica/internal/presentation/graph"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		rules    []graph.Rule
		contains []string
	}{
		{
			name: "Question Chain",
			rules: []graph.Rule{
				{Expression: "{q1} = 1", Variables: []string{"q1"}, Targets: []graph.Target{{Kind: "question", Name: "Q2", Label: "Question visibility"}}},
				{Expression: "{q2} = 2", Variables: []string{"q2"}, Targets: []graph.Target{{Kind: "question", Name: "q3", Label: "Question visibility"}}},
			},
			contains: []string{
				`q_q1[/"q1"/]`,
				`rule_1{"{q1} = 1"}`,
				"q_q1 --> rule_1",
				`rule_1 -- "Question visibility" --> q_q2`,
				"q_q2 --> rule_2",
			},
		},
		{
			name: "Page And Trigger Shapes",
			rules: []graph.Rule{
				{Expression: "{a} = 1", Targets: []graph.Target{
					{Kind: "page", Name: "page 1", Label: "Page visibility"},
					{Kind: "trigger", Name: "copyvaluetrigger", Label: "Copy", Refs: map[string]string{"setToName": "b", "fromName": "a"}},
				}},
			},
			contains: []string{
				`page_page_1[["page 1"]]`,
				`rule_1_2(("copyvaluetrigger"))`,
				`rule_1_2 -. "fromName" .-> q_a`,
				`rule_1_2 -. "setToName" .-> q_b`,
			},
		},
		{
			name: "Label Escaping",
			rules: []graph.Rule{
				{Expression: `{a} = "yes"`, Targets: []graph.Target{{Kind: "question", Name: "b", Label: "x"}}},
			},
			contains: []string{
				`rule_1{"{a} = 'yes'"}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.rules, nil)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestGenerateMermaid_DeclaresNodesOnce(t *testing.T) {
	rules := []graph.Rule{
		{Expression: "{q1} = 1", Variables: []string{"q1"}, Targets: []graph.Target{{Kind: "question", Name: "q2", Label: "v"}}},
		{Expression: "{Q1} = 2", Variables: []string{"Q1"}, Targets: []graph.Target{{Kind: "question", Name: "q2", Label: "e"}}},
	}
	got := graph.GenerateMermaid(rules, nil)
	assert.Equal(t, 1, strings.Count(got, `q_q1[/`))
	assert.Equal(t, 1, strings.Count(got, `q_q2[/`))
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	rules := []graph.Rule{
		{Expression: "{q1} = 1", Variables: []string{"q1"}},
		{Expression: "{q2} = 1", Variables: []string{"q2"}},
	}
	got := graph.GenerateMermaid(rules, &graph.GraphOverlay{Focus: "Q1"})
	assert.Contains(t, got, "class q_q1 focus;")
	assert.Contains(t, got, "class rule_1 affected;")
	assert.NotContains(t, got, "class rule_2 affected;")
}

func TestFromItems(t *testing.T) {
	doc, err := codec.Decode([]byte(`{
		"elements": [
			{"type": "text", "name": "q1"},
			{"type": "text", "name": "q2", "visibleIf": "{q1.a} = 1 and {q1} > 0"}
		],
		"triggers": [{"type": "setvalue", "expression": "{q1.a} = 1", "setToName": "q2", "setValue": "x"}]
	}`), codec.JSON)
	require.NoError(t, err)

	items, _ := logic.Scan(doc, registry.NewDefault())
	rules := graph.FromItems(items)
	require.Len(t, rules, 2)

	assert.Equal(t, []string{"q1"}, rules[0].Variables)
	require.Len(t, rules[1].Targets, 1)
	trigger := rules[1].Targets[0]
	assert.Equal(t, map[string]string{"setToName": "q2"}, trigger.Refs)
	assert.NotEmpty(t, trigger.Label)
}
