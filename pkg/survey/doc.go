/*
Package survey contains the document model the logic engine works on.

A survey document is a tree: pages hold elements (panels and questions), panels hold
further elements, questions hold matrix columns, choices and validators. Next to the
tree the document keeps three flat collections: triggers, calculated values and
completed-html conditions.

Every node kind is a concrete struct with a closed set of named string properties.
Properties are reachable through the Node interface (Prop, SetProp), which only accepts
the names the variant declares, so the logic engine can address "visibleIf" or
"setToName" generically without ever creating unknown keys.

# Key Entities

  - Document: the root; owns pages and the document-level collections and fans out
    structural change events.
  - Page, Panel, Question: containers and elements of the visual tree.
  - Column, Choice, Validator: per-question sub-lists.
  - Trigger, CalculatedValue, HTMLCondition: document-level collections.
*/
package survey
