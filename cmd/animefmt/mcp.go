package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/animefmt/pkg/adapters/anilist"
	"github.com/aretw0/animefmt/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the formatter and the AniList catalog as MCP tools.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup(cmd)
		if err != nil {
			return err
		}
		renderer, err := cfg.Renderer()
		if err != nil {
			return err
		}
		gateway := anilist.New(
			anilist.WithEndpoint(cfg.AniList.Endpoint),
			anilist.WithTimeout(cfg.AniList.Timeout),
			anilist.WithLogger(logger),
		)
		srv := mcp.NewServer(renderer, gateway, logger)

		transport, _ := cmd.Flags().GetString("transport")
		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting animefmt MCP server (stdio)")
			return srv.ServeStdio()
		case "sse":
			addr, _ := cmd.Flags().GetString("addr")
			baseURL, _ := cmd.Flags().GetString("base-url")
			if baseURL == "" {
				baseURL = "http://localhost" + addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL for SSE clients (default http://localhost<addr>)")
}
