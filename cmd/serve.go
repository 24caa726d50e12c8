package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing input source tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the list, current,
get and select commands as tools.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  inputsource serve
  inputsource serve --transport streamable-http --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config, else stdio)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config, else 8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	mcpCfg := MCPConfig{
		Transport: cfg.Serve.Transport,
		Port:      cfg.Serve.Port,
	}
	if cmd.Flags().Changed("transport") {
		mcpCfg.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		mcpCfg.Port, _ = cmd.Flags().GetInt("port")
	}

	srv, err := newMCPServer()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	logger.Infow("serving MCP", "transport", mcpCfg.Transport, "port", mcpCfg.Port)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.run(ctx, mcpCfg)
}

// run serves the MCP transport on a separate goroutine while the calling
// goroutine drives the provider's run loop. Input source lookups from tool
// handlers are executed on the main thread, which needs the loop running.
// It returns when the transport stops or ctx is done.
func (s *mcpServer) run(ctx context.Context, cfg MCPConfig) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.serve(cfg)
		cancel()
	}()

	if err := s.provider.RunLoop.Run(ctx); err != nil {
		return err
	}
	select {
	case err := <-serveErr:
		return err
	default:
		return nil
	}
}
