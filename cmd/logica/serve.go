package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/logica"
	"github.com/aretw0/logica/internal/cli"
	"github.com/aretw0/logica/internal/presentation/tui"
	httpAdapter "github.com/aretw0/logica/pkg/adapters/http"
	"github.com/aretw0/logica/pkg/adapters/mcp"
	"github.com/aretw0/logica/pkg/observability"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes the documents of the configured store as a JSON API. The API description is served at /openapi.json and browsable at /swagger.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("metrics") {
			cfg.Server.Metrics, _ = cmd.Flags().GetBool("metrics")
		}

		app, err := cli.NewApp(cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close()
		if err := seed(cmd, app); err != nil {
			return err
		}

		opts := []httpAdapter.Option{httpAdapter.WithLogger(app.Logger)}
		if app.Gatherer != nil {
			opts = append(opts, httpAdapter.WithMetrics(observability.Handler(app.Gatherer)))
		}
		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: httpAdapter.NewHandler(app.Workspace, opts...),
		}

		tui.PrintBanner(cmd.ErrOrStderr())
		sigCtx := cli.NewSignalContext(cmd.Context())
		defer sigCtx.Cancel()

		serverErrors := make(chan error, 1)
		go func() {
			app.Logger.Info("server listening", "address", srv.Addr, "store", cfg.Store.Driver, "metrics", cfg.Server.Metrics)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)
		case <-sigCtx.Done():
			app.Logger.Info("shutting down", "signal", sigCtx.Signal())
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			return nil
		}
	},
}

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the documents of the configured store as MCP tools, so AI agents can
list, lint and refactor survey logic.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		baseURL, _ := cmd.Flags().GetString("base-url")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app, err := cli.NewApp(cfg, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close()
		if err := seed(cmd, app); err != nil {
			return err
		}

		srv := mcp.NewServer(app.Workspace, logica.Version, mcp.WithLogger(app.Logger))
		switch transport {
		case "stdio":
			app.Logger.Info("starting MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			if baseURL == "" {
				baseURL = "http://localhost" + addr
			}
			sigCtx := cli.NewSignalContext(cmd.Context())
			defer sigCtx.Cancel()
			if err := srv.ServeSSE(sigCtx, addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			app.Logger.Info("MCP server stopped gracefully")
			return nil
		}
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default :8080)")
	serveCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics at /metrics")
	serveCmd.Flags().StringSlice("seed", nil, "Survey files copied into the store at startup, named after the file")

	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringP("transport", "t", "stdio", "Transport: stdio or sse")
	mcpCmd.Flags().String("addr", ":8081", "Address of the SSE transport")
	mcpCmd.Flags().String("base-url", "", "Public URL of the SSE transport")
	mcpCmd.Flags().StringSlice("seed", nil, "Survey files copied into the store at startup, named after the file")
}

// seed loads the --seed files, mostly useful with the memory store.
func seed(cmd *cobra.Command, app *cli.App) error {
	paths, _ := cmd.Flags().GetStringSlice("seed")
	for _, p := range paths {
		id := strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		if err := app.Seed(cmd.Context(), id, p); err != nil {
			return fmt.Errorf("failed to seed %s: %w", p, err)
		}
		app.Logger.Info("document seeded", "document_id", id, "path", p)
	}
	return nil
}
