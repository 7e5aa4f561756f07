package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/logica"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of logica",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "logica version %s\n", strings.TrimSpace(logica.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
