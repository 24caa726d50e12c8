package cmd

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/inputsource/internal/platform"
	"github.com/mj1618/inputsource/internal/version"
	"gopkg.in/yaml.v3"
)

// mcpServer wraps the MCP server with the platform provider.
type mcpServer struct {
	provider   *platform.Provider
	providerMu sync.Mutex
	mcp        *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all input source tools.
func newMCPServer() (*mcpServer, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return newMCPServerWithProvider(provider), nil
}

func newMCPServerWithProvider(provider *platform.Provider) *mcpServer {
	s := &mcpServer{provider: provider}
	s.mcp = mcpserver.NewMCPServer(
		"inputsource",
		version.Version,
	)
	s.registerTools()
	return s
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_input_sources",
			mcp.WithDescription("List keyboard input sources (layouts, input methods, palettes) with their IDs, names, categories and languages"),
			mcp.WithBoolean("installed", mcp.Description("Only list installed (enabled) sources")),
			mcp.WithString("category", mcp.Description("Filter by category: keyboard, palette, ink")),
			mcp.WithString("lang", mcp.Description("Filter by BCP 47 language tag (e.g. 'de', 'pt-BR')")),
			mcp.WithString("text", mcp.Description("Filter by substring of ID or name")),
			mcp.WithBoolean("selectable", mcp.Description("Only list sources that can be selected")),
			mcp.WithBoolean("enabled", mcp.Description("Only list enabled sources")),
		),
		s.handleList,
	)

	s.mcp.AddTool(
		mcp.NewTool("current_input_source",
			mcp.WithDescription("Return the currently selected keyboard input source"),
			mcp.WithBoolean("layout", mcp.Description("Return the keyboard layout in use instead of the selected source")),
		),
		s.handleCurrent,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_input_source",
			mcp.WithDescription("Return the input source whose ID matches exactly"),
			mcp.WithString("id", mcp.Description("Input source ID (e.g. 'com.apple.keylayout.US')"), mcp.Required()),
		),
		s.handleGet,
	)

	s.mcp.AddTool(
		mcp.NewTool("select_input_source",
			mcp.WithDescription("Switch the selected keyboard input source. Returns the source before and after the switch."),
			mcp.WithString("id", mcp.Description("Input source ID to select"), mcp.Required()),
		),
		s.handleSelect,
	)
}

// toolResult serializes v to YAML, or returns a tool error for err.
func toolResult(v interface{}, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func (s *mcpServer) handleList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	f, err := buildFilter(
		stringParam(params, "category", ""),
		stringParam(params, "lang", ""),
		stringParam(params, "text", ""),
		boolParam(params, "selectable", false),
		boolParam(params, "enabled", false),
	)
	if err != nil {
		return toolResult(nil, err)
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	return toolResult(listSources(s.provider.Manager, boolParam(params, "installed", false), f))
}

func (s *mcpServer) handleCurrent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()

	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	return toolResult(currentSource(s.provider.Manager, boolParam(params, "layout", false)))
}

func (s *mcpServer) handleGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringParam(request.GetArguments(), "id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	return toolResult(s.provider.Manager.InputSource(id))
}

func (s *mcpServer) handleSelect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringParam(request.GetArguments(), "id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	return toolResult(selectSource(s.provider.Manager, id))
}
