package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/logica/internal/cli"
	"github.com/aretw0/logica/internal/presentation/tui"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/spf13/cobra"
)

var errLint = errors.New("lint found errors")

var lintCmd = &cobra.Command{
	Use:   "lint <document>",
	Short: "Check the logic of a document",
	Long: `Parses every logic expression and reports syntax errors, invalid operation
settings and references to unknown questions. Exits non-zero when errors are
found. With --watch the survey file is checked again on every change.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		asJSON, _ := cmd.Flags().GetBool("json")

		app, id, err := openApp(cmd, args[0])
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		lint := func(ctx context.Context) error {
			issues, err := app.Workspace.Lint(ctx, id)
			if err != nil {
				return err
			}
			return printIssues(out, id, issues, asJSON)
		}

		if !watch {
			return lint(cmd.Context())
		}
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()
		fmt.Fprintf(cmd.ErrOrStderr(), ">>> Watching '%s'.\n", args[0])
		return cli.Watch(sigCtx, args[0], app.Logger, func(ctx context.Context) error {
			if err := lint(ctx); err != nil && !errors.Is(err, errLint) {
				return err
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().Bool("watch", false, "Check again whenever the survey file changes")
	lintCmd.Flags().Bool("json", false, "Print JSON instead of text")
}

func printIssues(w io.Writer, id string, issues []ports.LintIssue, asJSON bool) error {
	var err error
	if asJSON {
		if issues == nil {
			issues = []ports.LintIssue{}
		}
		err = writeJSON(w, issues)
	} else {
		err = render(w, tui.IssuesMarkdown(id, issues))
	}
	if err != nil {
		return err
	}
	for _, i := range issues {
		if i.Severity == "error" {
			return errLint
		}
	}
	return nil
}
