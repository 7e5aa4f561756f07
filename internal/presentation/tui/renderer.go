// Package tui renders rule listings for terminals.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/logica/pkg/ports"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a terminal on stdout the markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	if !IsTerminal(os.Stdout) {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ItemsMarkdown formats logic items as a markdown document.
func ItemsMarkdown(title string, items []ports.RuleItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(items) == 0 {
		sb.WriteString("_No logic items._\n")
		return sb.String()
	}
	for _, it := range items {
		hidden := ""
		if it.Hidden {
			hidden = " _(hidden)_"
		}
		fmt.Fprintf(&sb, "## %d. `%s`%s\n\n", it.Index, it.Expression, hidden)
		for _, line := range strings.Split(it.Text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(&sb, "- %s\n", line)
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// IssuesMarkdown formats lint findings as a markdown table.
func IssuesMarkdown(title string, issues []ports.LintIssue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(issues) == 0 {
		sb.WriteString("No problems found.\n")
		return sb.String()
	}
	sb.WriteString("| Severity | Node | Property | Message |\n|---|---|---|---|\n")
	for _, i := range issues {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", i.Severity, i.Node, i.Property, strings.ReplaceAll(i.Message, "|", `\|`))
	}
	return sb.String()
}
