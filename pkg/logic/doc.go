// Package logic is the rule engine behind the logic tab of a survey editor.
//
// It finds every expression attached to a survey document, groups the attachments
// (bindings) that share an expression into rule items, stages edits to one item at a
// time, and propagates identifier renames through every expression of the document.
//
//	ed := logic.New(doc, registry.NewDefault())
//	ed.AddNew()
//	ed.SetExpression("{q1} = 1")
//	b, _ := ed.AddOperation(registry.QuestionVisibility, doc.QuestionByName("q2"))
//	if !ed.Save() {
//	    fmt.Println(ed.ErrorText())
//	}
//	fmt.Println(ed.ItemSummary(ed.Items()[0]), ed.BindingText(b))
//
// The engine is synchronous and not safe for concurrent use. Nothing touches the
// document except Save, RemoveItem and RenamePropagate.
package logic
