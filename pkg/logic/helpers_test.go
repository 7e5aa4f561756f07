package logic_test

import (
	"testing"

	"github.com/aretw0/logica/pkg/survey"
)

// textDoc builds one page holding text questions with the given names.
func textDoc(t *testing.T, names ...string) (*survey.Document, map[string]*survey.Question) {
	t.Helper()
	doc := survey.NewDocument()
	page := doc.AddPage(survey.NewPage("page1"))
	qs := make(map[string]*survey.Question, len(names))
	for _, n := range names {
		qs[n] = page.AddElement(survey.NewQuestion(survey.QuestionText, n)).(*survey.Question)
	}
	return doc, qs
}

// snapshot captures every property of every node for byte-for-byte comparisons.
func snapshot(doc *survey.Document) []string {
	var out []string
	survey.Walk(doc, func(n survey.Node) bool {
		out = append(out, string(n.Kind())+":"+n.Name())
		for _, p := range n.Props() {
			v, _ := n.Prop(p)
			out = append(out, "  "+p+"="+v)
		}
		return true
	})
	return out
}

