package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename <document> <old> <new>",
	Short: "Rename a question and rewrite every reference to it",
	Long: `Renames the question or calculated value <old> and rewrites the expressions,
triggers and validators that reference it. When no element is called <old>,
only the references are rewritten, which repairs expressions left behind by an
earlier manual rename.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, id, err := openApp(cmd, args[0])
		if err != nil {
			return err
		}
		defer app.Close()

		changed, err := app.Workspace.Rename(cmd.Context(), id, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s: %d properties rewritten.\n", args[1], args[2], changed)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <document> <index>",
	Short: "Delete a logic item",
	Long:  `Deletes the logic item at <index>, as numbered by 'logica items', clearing every property it wrote.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}
		app, id, err := openApp(cmd, args[0])
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.Workspace.RemoveItem(cmd.Context(), id, index); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d.\n", index)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(removeCmd)
}
