/*
Package logica is a logic rule engine for survey documents.

A survey document is a tree of pages, panels and questions plus document-level
collections (triggers, calculated values, conditional completion pages). Many of
its properties hold expressions such as "{age} >= 18". Logica finds every such
expression, groups the ones that share an expression into rule items, lets a
caller edit an item transactionally and keeps references consistent when a
question is renamed.

# Packages

  - pkg/survey: the document tree; pkg/survey/codec reads and writes it as JSON or YAML.
  - pkg/registry: the binding kinds, i.e. which property of which node holds logic.
  - pkg/logic: scanning, the edit session, rename propagation and texts.
  - pkg/ports and pkg/adapters: document stores (memory, file, Redis) and transports (HTTP, MCP).

# Usage

Edit a single file:

	ed, err := logica.Open("survey.json", nil)
	if err != nil {
		log.Fatal(err)
	}
	for _, item := range ed.Items() {
		fmt.Println(ed.ItemSummary(item))
	}

Serve a directory of surveys:

	ws := logica.New(file.New("./surveys"))
	items, err := ws.Items(ctx, "feedback", false)
*/
package logica
