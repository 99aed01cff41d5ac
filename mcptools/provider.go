// Package mcptools connects to an MCP tool server and exposes its
// catalog as agent tools.
package mcptools

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/omniagent-io/omniagent/tools"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "mcptools")

const (
	protocolVersion = "2025-06-18"

	// DefaultCallTimeout bounds a single tool invocation.
	DefaultCallTimeout = 60 * time.Second
)

// Option configures the Provider.
type Option func(*Provider)

// WithCallTimeout sets the per-call timeout for tool invocations.
func WithCallTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.callTimeout = d
	}
}

// WithClientInfo sets the client name and version announced to the server.
func WithClientInfo(name, version string) Option {
	return func(p *Provider) {
		p.clientName = name
		p.clientVersion = version
	}
}

// Provider holds a connected MCP client and the tool catalog it
// advertised at connection time.
type Provider struct {
	mcpClient     *client.Client
	tools         []tools.ITool
	callTimeout   time.Duration
	clientName    string
	clientVersion string
}

// ConnectStdio launches the tool server as a child process and connects
// over stdio. The catalog is fetched once; a failure here is fatal for
// the conversation, there is no degraded mode.
func ConnectStdio(ctx context.Context, entryPoint string, env, args []string, opts ...Option) (*Provider, error) {
	mcpClient, err := client.NewStdioMCPClientWithOptions(entryPoint, env, args)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to start tool server: %s", entryPoint)
	}
	p, err := connect(ctx, mcpClient, opts...)
	if err != nil {
		_ = mcpClient.Close()
		return nil, err
	}
	return p, nil
}

// ConnectInProcess connects to an MCP server in the same process.
// Used by tests and by the single-binary mode.
func ConnectInProcess(ctx context.Context, srv *server.MCPServer, opts ...Option) (*Provider, error) {
	mcpClient, err := client.NewInProcessClient(srv)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create in-process client")
	}
	if err := mcpClient.Start(ctx); err != nil {
		_ = mcpClient.Close()
		return nil, errors.WithMessage(err, "failed to start in-process client")
	}
	p, err := connect(ctx, mcpClient, opts...)
	if err != nil {
		_ = mcpClient.Close()
		return nil, err
	}
	return p, nil
}

func connect(ctx context.Context, mcpClient *client.Client, opts ...Option) (*Provider, error) {
	p := &Provider{
		mcpClient:     mcpClient,
		callTimeout:   DefaultCallTimeout,
		clientName:    "omniagent",
		clientVersion: "1.0.0",
	}
	for _, opt := range opts {
		opt(p)
	}

	initReq := mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: protocolVersion,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    p.clientName,
				Version: p.clientVersion,
			},
		},
	}
	initRes, err := mcpClient.Initialize(ctx, initReq)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to initialize tool server")
	}

	toolsRes, err := mcpClient.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, errors.WithMessage(err, "failed to list tools")
	}

	p.tools = make([]tools.ITool, 0, len(toolsRes.Tools))
	for _, mcpTool := range toolsRes.Tools {
		p.tools = append(p.tools, newBridgeTool(mcpClient, mcpTool, p.callTimeout))
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"server", initRes.ServerInfo.Name,
		"tools", len(p.tools))

	return p, nil
}

// Tools returns the catalog advertised by the server.
func (p *Provider) Tools() []tools.ITool {
	return p.tools
}

// Close shuts down the connection and, for stdio, the child process.
func (p *Provider) Close() error {
	return p.mcpClient.Close()
}
