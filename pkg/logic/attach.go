package logic

import (
	"strings"

	"github.com/aretw0/logica/pkg/survey"
)

// Attach keeps the editor in sync with its document: structural changes trigger a
// rescan, and renames of questions, calculated values and matrix columns are
// propagated through the expressions, including those of the staged item, before
// the rescan. Changes made by the editor itself are ignored. The returned function
// detaches.
func (e *Editor) Attach() (detach func()) {
	return e.doc.Subscribe(func(ev survey.Event) {
		if e.committing {
			return
		}
		if ev.Type == survey.EventRenamed {
			switch ev.Node.Kind() {
			case survey.KindQuestion, survey.KindCalculatedValue:
				e.RenamePropagate(ev.OldName, ev.NewName)
				if old := strings.TrimSpace(ev.OldName); old != "" && old != ev.NewName {
					e.renameStaged(referencePattern("", old), old, ev.NewName)
				}
			case survey.KindColumn:
				if q, ok := ev.Node.Parent().(*survey.Question); ok {
					RenameColumn(q, ev.OldName, ev.NewName)
					if old := strings.TrimSpace(ev.OldName); old != "" && e.stagesColumnOf(q) {
						e.renameStaged(referencePattern(`row\s*\.\s*`, old), "", ev.NewName)
					}
				}
			}
		}
		e.Rescan()
	})
}

// stagesColumnOf reports whether the staged item binds a column of matrix.
func (e *Editor) stagesColumnOf(matrix *survey.Question) bool {
	if e.editable == nil {
		return false
	}
	for _, b := range e.editable.bindings {
		if b.owner != nil && b.owner.Parent() == survey.Node(matrix) {
			return true
		}
	}
	return false
}
