// Package tools defines the contract between the agent and callable tools.
package tools

import (
	"context"

	"github.com/omniagent-io/omniagent/pkg/llms"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
)

//go:generate mockgen -destination=../mocks/mocktools/tools_mock.gen.go -package mocktools github.com/omniagent-io/omniagent/tools ITool,Callback

// ITool is a named remote operation the agent can invoke on behalf of
// the model. A tool receives its arguments as a JSON string and returns
// a textual result; errors are reported to the caller, never panicked.
type ITool interface {
	// Name returns the name of the Tool, unique across the catalog.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	// Should not exceed the model limit.
	Description() string
	// Parameters returns the JSON schema of the accepted arguments.
	Parameters() any

	// Call executes the tool with the given JSON arguments and returns
	// the textual result.
	Call(context.Context, string) (string, error)
}

// Callback receives tool lifecycle notifications.
type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

// Tool is a typed tool with a structured request and response.
type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// Definitions converts the tools to model tool declarations.
func Definitions(list ...ITool) []llms.Tool {
	defs := make([]llms.Tool, 0, len(list))
	for _, tool := range list {
		defs = append(defs, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		})
	}
	return defs
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

// GetDescriptions returns a JSON block listing the tools, for prompts.
func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}
