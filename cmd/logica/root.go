package main

import (
	"fmt"
	"os"

	"github.com/aretw0/logica/internal/cli"
	"github.com/aretw0/logica/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "logica",
	Short: "Logica inspects and refactors the logic of survey documents",
	Long: `Logica groups the conditions of a survey (visibleIf, enableIf, triggers,
calculated values...) into logic items, and renames questions without
breaking the expressions that reference them.

Documents are read from a directory of JSON/YAML files by default; a Redis
store can be selected with --store redis or logica.yaml.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "Config file (default logica.yaml when present)")
	f.String("store", "", "Document store: file, memory or redis")
	f.String("dir", "", "Directory of the file store")
	f.String("format", "", "Format of new files in the file store: json or yaml")
	f.String("redis-addr", "", "Redis address")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.String("log-format", "", "Log format: text or json")
	f.Bool("show-titles", false, "Show question titles instead of names")
	f.Bool("read-only", false, "Reject every change to the documents")
}

// loadConfig reads the config file and environment, then applies the flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	str := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	boolean := func(name string, dst *bool) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetBool(name)
		}
	}
	str("store", &cfg.Store.Driver)
	str("dir", &cfg.Store.Path)
	str("format", &cfg.Store.Format)
	str("redis-addr", &cfg.Store.Redis.Addr)
	str("log-level", &cfg.Log.Level)
	str("log-format", &cfg.Log.Format)
	boolean("show-titles", &cfg.Editor.ShowTitles)
	boolean("read-only", &cfg.Editor.ReadOnly)

	return cfg, cfg.Validate()
}

// openApp builds the application for a command working on one document.
// The argument may be a document ID or, with the file store, a survey file.
func openApp(cmd *cobra.Command, arg string) (*cli.App, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}
	id := cli.ResolveDocument(cfg, arg)
	app, err := cli.NewApp(cfg, os.Stderr)
	if err != nil {
		return nil, "", err
	}
	return app, id, nil
}
