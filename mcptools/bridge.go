package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/tools"
)

// bridgeTool adapts one MCP catalog entry to the agent tool contract.
// Calls are delegated to the MCP server over the shared client.
type bridgeTool struct {
	mcpClient   *client.Client
	name        string
	description string
	parameters  map[string]any
	callTimeout time.Duration
}

var _ tools.ITool = (*bridgeTool)(nil)

func newBridgeTool(mcpClient *client.Client, mcpTool mcp.Tool, callTimeout time.Duration) *bridgeTool {
	return &bridgeTool{
		mcpClient:   mcpClient,
		name:        mcpTool.Name,
		description: mcpTool.Description,
		parameters:  inputSchemaToMap(mcpTool.InputSchema),
		callTimeout: callTimeout,
	}
}

func (t *bridgeTool) Name() string {
	return t.name
}

func (t *bridgeTool) Description() string {
	return t.description
}

func (t *bridgeTool) Parameters() any {
	return t.parameters
}

func (t *bridgeTool) Call(ctx context.Context, input string) (string, error) {
	args := map[string]any{}
	input = strings.TrimSpace(input)
	if input != "" {
		if err := json.Unmarshal(llmutils.CleanJSON([]byte(input)), &args); err != nil {
			return "", errors.WithMessage(err, "failed to unmarshal input")
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, t.callTimeout)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = t.name
	req.Params.Arguments = args

	result, err := t.mcpClient.CallTool(callCtx, req)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return "", errors.Newf("tool %q timed out after %s", t.name, t.callTimeout)
		}
		return "", errors.WithMessagef(err, "tool call failed: %s", t.name)
	}

	text := extractTextContent(result)
	if result.IsError {
		return "", errors.Newf("tool %q failed: %s", t.name, text)
	}
	return text, nil
}

// inputSchemaToMap converts the advertised input schema to the generic
// map form used in tool declarations.
func inputSchemaToMap(schema mcp.ToolInputSchema) map[string]any {
	m := map[string]any{
		"type": schema.Type,
	}
	if schema.Type == "" {
		m["type"] = "object"
	}
	if len(schema.Properties) > 0 {
		m["properties"] = schema.Properties
	}
	if len(schema.Required) > 0 {
		m["required"] = schema.Required
	}
	return m
}

// extractTextContent concatenates all text content from a tool result.
func extractTextContent(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	var parts []string
	for _, c := range result.Content {
		switch v := c.(type) {
		case mcp.TextContent:
			parts = append(parts, v.Text)
		case *mcp.TextContent:
			parts = append(parts, v.Text)
		default:
			parts = append(parts, fmt.Sprintf("[non-text content: %T]", c))
		}
	}
	return strings.Join(parts, "\n")
}
