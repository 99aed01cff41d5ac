package llms_test

import (
	"testing"

	"github.com/omniagent-io/omniagent/pkg/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MessageFromTextParts(t *testing.T) {
	msg := llms.MessageFromTextParts(llms.RoleHuman, "hello", "world")
	assert.Equal(t, llms.RoleHuman, msg.Role)
	require.Len(t, msg.Parts, 2)
	assert.Equal(t, "hello", msg.Parts[0].(llms.TextContent).Text)
	assert.Empty(t, msg.ToolCalls())
}

func Test_MessageFromToolCalls(t *testing.T) {
	msg := llms.MessageFromToolCalls(llms.RoleAI,
		llms.ToolCall{
			ID:   "call_1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      "get_weather",
				Arguments: `{"location":"Tokyo"}`,
			},
		},
		llms.ToolCall{
			ID:   "call_2",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      "convert_currency",
				Arguments: `{"from_currency":"USD","to_currency":"EUR","amount":100}`,
			},
		},
	)
	assert.Equal(t, llms.RoleAI, msg.Role)

	calls := msg.ToolCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "call_1", calls[0].ID)
	assert.Equal(t, "get_weather", calls[0].FunctionCall.Name)
	assert.Equal(t, "call_2", calls[1].ID)
	assert.Equal(t, `ToolCall: call_1 (get_weather), input: {"location":"Tokyo"}`, calls[0].String())
}

func Test_MessageFromToolResponse(t *testing.T) {
	msg := llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
		ToolCallID: "call_1",
		Name:       "get_weather",
		Content:    "Sunny",
	})
	assert.Equal(t, llms.RoleTool, msg.Role)
	require.Len(t, msg.Parts, 1)
	tr, ok := msg.Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call_1", tr.ToolCallID)
	assert.Equal(t, "Sunny", tr.Content)
}

func Test_Message_GetContent(t *testing.T) {
	msg := llms.MessageFromTextParts(llms.RoleAI, "line one", "line two")
	assert.Equal(t, "line one\nline two\n", msg.GetContent())

	msg = llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
		ToolCallID: "call_1",
		Name:       "get_weather",
		Content:    "Sunny",
	})
	assert.Contains(t, msg.GetContent(), "Response: ")
	assert.Contains(t, msg.GetContent(), `"Sunny"`)
}

func Test_ProviderCapabilities(t *testing.T) {
	assert.True(t, llms.ProviderOpenAI.Supports(llms.CapabilityFunctionCalling))
	assert.True(t, llms.ProviderAzure.Supports(llms.CapabilityMultiToolCalling))
	assert.False(t, llms.ProviderType("UNKNOWN").Supports(llms.CapabilityText))
}
