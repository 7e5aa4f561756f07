package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document>",
	Short: "Export the rule dependency graph",
	Long:  `Outputs a Mermaid diagram (graph LR) linking questions to the rules that read them and the elements those rules drive.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		focus, _ := cmd.Flags().GetString("focus")

		app, id, err := openApp(cmd, args[0])
		if err != nil {
			return err
		}
		defer app.Close()

		out, err := app.Workspace.GraphFocus(cmd.Context(), id, focus)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the registered operation kinds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		reg, err := cfg.Registry()
		if err != nil {
			return err
		}
		for _, k := range reg.All() {
			shown := ""
			if !k.ShowInUI {
				shown = " (hidden)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-18s %s%s\n", k.Name, k.Property, k.DisplayName, shown)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(kindsCmd)
	graphCmd.Flags().String("focus", "", "Highlight the rules reading this question")
}
