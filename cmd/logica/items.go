package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/logica/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var itemsCmd = &cobra.Command{
	Use:   "items <document>",
	Short: "List the logic items of a document",
	Long: `Groups every expression of the document into logic items and prints the
operations each one drives. Calculated values and validators are listed with
--hidden.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hidden, _ := cmd.Flags().GetBool("hidden")
		asJSON, _ := cmd.Flags().GetBool("json")

		app, id, err := openApp(cmd, args[0])
		if err != nil {
			return err
		}
		defer app.Close()

		items, err := app.Workspace.Items(cmd.Context(), id, hidden)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), items)
		}
		return render(cmd.OutOrStdout(), tui.ItemsMarkdown(id, items))
	},
}

func init() {
	rootCmd.AddCommand(itemsCmd)
	itemsCmd.Flags().Bool("hidden", false, "Include calculated values and validators")
	itemsCmd.Flags().Bool("json", false, "Print JSON instead of text")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// render prints markdown, styled when stdout is a terminal.
func render(w io.Writer, markdown string) error {
	out, err := tui.NewRenderer()(markdown)
	if err != nil {
		out = markdown
	}
	_, err = fmt.Fprint(w, out)
	return err
}
