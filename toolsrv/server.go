package toolsrv

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/omniagent-io/omniagent/tools"
)

// ServerName identifies the tool server to MCP clients.
const ServerName = "omniagent-tools"

// NewMCPServer assembles an MCP server exposing every tool in the toolset.
func NewMCPServer(ts *Toolset, version string) (*server.MCPServer, error) {
	srv := server.NewMCPServer(ServerName, version)
	for _, tool := range ts.Tools() {
		rawSchema, err := json.Marshal(tool.Parameters())
		if err != nil {
			return nil, errors.WithMessagef(err, "failed to marshal schema for tool: %s", tool.Name())
		}
		srv.AddTool(
			mcp.NewToolWithRawSchema(tool.Name(), tool.Description(), rawSchema),
			toolHandler(tool),
		)
	}
	return srv, nil
}

// toolHandler adapts a tool to the MCP call contract. Tool failures are
// reported as tool results, not protocol errors, so the model can see them.
func toolHandler(tool tools.ITool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		res, err := tool.Call(ctx, string(args))
		if err != nil {
			logger.ContextKV(ctx, xlog.WARNING,
				"tool", tool.Name(),
				"err", err.Error())
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(res), nil
	}
}
