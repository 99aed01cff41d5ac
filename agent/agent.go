// Package agent implements the reasoning and tool-execution loop and the
// interactive session driving it.
package agent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
	"github.com/omniagent-io/omniagent/pkg/llms"
	"github.com/omniagent-io/omniagent/pkg/llmutils"
	"github.com/omniagent-io/omniagent/pkg/metricskey"
	"github.com/omniagent-io/omniagent/tools"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "agent")

const (
	// DefaultMaxToolRounds bounds reasoning/tool-execution cycles per turn.
	DefaultMaxToolRounds = 10
	// DefaultMaxToolCalls bounds the total tool calls per turn.
	DefaultMaxToolCalls = 50
	// DefaultMaxMessages bounds the message history sent to the LLM.
	DefaultMaxMessages = 200
	// DefaultMaxContentSize bounds the content bytes sent to the LLM.
	DefaultMaxContentSize = 2 * 1024 * 1024
	// DefaultMaxRetries bounds retries on an empty LLM response.
	DefaultMaxRetries = 3
	// DefaultTemperature biases the model toward deterministic tool selection.
	DefaultTemperature = 0.3

	maxConsecutiveNotFound = 3
)

// CallInput is the input of one user turn.
type CallInput struct {
	// Input is the user's request.
	Input string
	// Messages is the prior conversation transcript, without the
	// system prompt.
	Messages []llms.Message
	// Options are per-call overrides.
	Options []Option
}

// PromptFunc produces the system prompt for a turn.
type PromptFunc func(ctx context.Context, input string) (string, error)

// Agent runs one user turn at a time: it sends the transcript to the
// reasoning model, executes requested tool calls, feeds results back,
// and repeats until the model produces a final text answer.
type Agent struct {
	LLM llms.Model

	toolsByName map[string]tools.ITool
	toolsNames  []string
	tools       []tools.ITool
	llmToolDefs []llms.Tool

	cfg         *Config
	name        string
	description string
	sysprompt   PromptFunc
	runMessages []llms.Message
}

// New initializes the Agent.
func New(llmModel llms.Model, sysprompt PromptFunc, options ...Option) *Agent {
	return &Agent{
		cfg:         NewConfig(options...),
		LLM:         llmModel,
		sysprompt:   sysprompt,
		name:        "OmniAgent",
		description: "A multi-domain personal assistant.",
	}
}

// WithName sets the name of the Agent, used in logs and metrics.
func (a *Agent) WithName(name string) *Agent {
	a.name = name
	return a
}

// WithDescription sets the description of the Agent.
func (a *Agent) WithDescription(description string) *Agent {
	a.description = description
	return a
}

// Name returns the name of the Agent.
func (a *Agent) Name() string {
	return a.name
}

// Description returns the description of the Agent.
func (a *Agent) Description() string {
	return a.description
}

// GetTools returns the registered tools.
func (a *Agent) GetTools() []tools.ITool {
	return a.tools
}

// WithTools adds new tools to the Agent, existing tools are not replaced.
func (a *Agent) WithTools(list ...tools.ITool) *Agent {
	if a.toolsByName == nil {
		a.toolsByName = make(map[string]tools.ITool)
	}
	for _, tool := range list {
		name := tool.Name()
		// use lowercase for the key
		nameLowerCase := strings.ToLower(name)
		if a.toolsByName[nameLowerCase] == nil {
			a.toolsByName[nameLowerCase] = tool
			a.toolsNames = append(a.toolsNames, name)
			a.tools = append(a.tools, tool)
			a.llmToolDefs = append(a.llmToolDefs, llms.Tool{
				Type: "function",
				Function: &llms.FunctionDefinition{
					Name:        name,
					Description: tool.Description(),
					Parameters:  tool.Parameters(),
				},
			})
		}
	}
	return a
}

// LastRunMessages returns the messages produced by the last turn: the
// user message, tool call requests and responses, and the final answer.
func (a *Agent) LastRunMessages() []llms.Message {
	return a.runMessages
}

// Call runs one user turn.
func (a *Agent) Call(ctx context.Context, input *CallInput) (*llms.ContentResponse, error) {
	started := time.Now()
	defer metricskey.PerfAgentTurn.MeasureSince(started, a.name)

	// reset the run messages
	a.runMessages = nil
	// create a per call config
	cfg := a.cfg.Apply(input.Options...)

	callback := cfg.CallbackHandler
	if callback != nil {
		callback.OnAgentStart(ctx, a, input.Input)
	}

	resp, _, err := a.run(ctx, cfg, input)
	if err != nil {
		metricskey.StatsAgentTurnsFailed.IncrCounter(1, a.name)
		if callback != nil {
			callback.OnAgentError(ctx, a, input.Input, err)
		}
		return nil, err
	}
	metricskey.StatsAgentTurnsSucceeded.IncrCounter(1, a.name)
	if callback != nil {
		callback.OnAgentEnd(ctx, a, input.Input, resp)
	}
	return resp, nil
}

// run executes the main loop of the Agent for one turn.
func (a *Agent) run(ctx context.Context, cfg *Config, input *CallInput) (*llms.ContentResponse, []llms.Message, error) {
	systemPrompt, err := a.sysprompt(ctx, input.Input)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "failed to format system prompt")
	}

	messageHistory := []llms.Message{
		llms.MessageFromTextParts(llms.RoleSystem, systemPrompt),
	}
	messageHistory = append(messageHistory, input.Messages...)

	if input.Input != "" {
		userMessage := llms.MessageFromTextParts(llms.RoleHuman, input.Input)
		a.runMessages = append(a.runMessages, userMessage)
		messageHistory = append(messageHistory, userMessage)
	}

	callOpts := []llms.CallOption{
		llms.WithTemperature(temperature(cfg)),
	}
	if cfg.Model != "" {
		callOpts = append(callOpts, llms.WithModel(cfg.Model))
	}
	if cfg.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(cfg.MaxTokens))
	}
	if cfg.Seed > 0 {
		callOpts = append(callOpts, llms.WithSeed(cfg.Seed))
	}
	if len(a.llmToolDefs) > 0 {
		if !a.LLM.GetProviderType().Supports(llms.CapabilityFunctionCalling) {
			return nil, messageHistory, errors.Newf("agent %s: the LLM does not support function calling", a.name)
		}
		callOpts = append(callOpts, llms.WithTools(a.llmToolDefs))
	}

	agentName := a.name
	modelName := a.LLM.GetName()

	var resp *llms.ContentResponse
	var totalToolExecuted int
	rounds := 0
	retryCount := 0
	consecutiveNotFound := 0

	maxRounds := values.NumbersCoalesce(cfg.MaxToolRounds, DefaultMaxToolRounds)
	maxMessages := values.NumbersCoalesce(cfg.MaxMessages, DefaultMaxMessages)
	bytesLimit := uint64(values.NumbersCoalesce(cfg.MaxContentSize, DefaultMaxContentSize))
	toolsLimit := values.NumbersCoalesce(cfg.MaxToolCalls, DefaultMaxToolCalls)

	for {
		if len(messageHistory) >= maxMessages {
			return nil, messageHistory, errors.Newf("agent %s: the messages count exceeded limit", agentName)
		}
		bytesSent := llmutils.CountMessagesContentSize(messageHistory)
		if bytesSent > bytesLimit {
			return nil, messageHistory, errors.Newf("agent %s: the content size exceeded limit", agentName)
		}

		metricskey.StatsLLMMessagesSent.IncrCounter(float64(len(messageHistory)), agentName, modelName)
		metricskey.StatsLLMBytesSent.IncrCounter(float64(bytesSent), agentName, modelName)

		resp, err = a.LLM.GenerateContent(ctx, messageHistory, callOpts...)
		if err != nil {
			return nil, messageHistory, errors.WithMessage(err, "failed to generate content from LLM")
		}

		bytesReceived := llmutils.CountResponseContentSize(resp)
		metricskey.StatsLLMBytesReceived.IncrCounter(float64(bytesReceived), agentName, modelName)

		tokensIn, tokensOut, _ := llmutils.CountTokens(resp)
		metricskey.StatsLLMInputTokens.IncrCounter(float64(tokensIn), agentName, modelName)
		metricskey.StatsLLMOutputTokens.IncrCounter(float64(tokensOut), agentName, modelName)

		// Retry on an empty response before giving up.
		if len(resp.Choices) == 0 {
			retryCount++
			if retryCount >= DefaultMaxRetries {
				logger.ContextKV(ctx, xlog.ERROR,
					"agent", agentName,
					"status", "max_retries_exceeded",
					"input", slices.StringUpto(input.Input, 64),
					"retry_count", retryCount,
				)
				return nil, messageHistory, errors.Newf("agent %s: LLM returned empty response after %d retries", agentName, retryCount)
			}
			logger.ContextKV(ctx, xlog.WARNING,
				"agent", agentName,
				"status", "retrying_empty_response",
				"retry_count", retryCount,
			)
			continue
		}

		if countToolCalls(resp) == 0 {
			break
		}
		if rounds >= maxRounds {
			return nil, messageHistory, errors.Newf("agent %s: could not complete the request within %d tool rounds", agentName, maxRounds)
		}

		var toolExecuted, notFoundCount int
		toolExecuted, notFoundCount, messageHistory, err = a.executeToolCalls(ctx, cfg, messageHistory, resp)
		if err != nil {
			return nil, messageHistory, err
		}
		rounds++
		totalToolExecuted += toolExecuted

		if notFoundCount > 0 {
			consecutiveNotFound += notFoundCount
			if consecutiveNotFound > maxConsecutiveNotFound {
				return nil, messageHistory, errors.Newf("agent %s: the number of not found tools is exceeded", agentName)
			}
		} else {
			consecutiveNotFound = 0
		}
		if totalToolExecuted >= toolsLimit {
			return nil, messageHistory, errors.Newf("agent %s: the tool calls limit is exceeded", agentName)
		}
	}

	choices := resp.Choices

	logger.ContextKV(ctx, xlog.DEBUG,
		"agent", agentName,
		"status", "turn_complete",
		"choices_count", len(choices),
		"tool_calls", totalToolExecuted,
		"rounds", rounds,
	)

	result := choices[0].Content
	if len(choices) > 1 {
		// Handle multiple choices by combining their content
		var combinedContent strings.Builder
		for i, choice := range choices {
			if i > 0 {
				combinedContent.WriteString("\n\n")
			}
			combinedContent.WriteString(choice.Content)
		}
		result = combinedContent.String()
	}

	finalMessage := llms.MessageFromTextParts(llms.RoleAI, result)
	messageHistory = append(messageHistory, finalMessage)
	a.runMessages = append(a.runMessages, finalMessage)

	return resp, messageHistory, nil
}

func temperature(cfg *Config) float64 {
	if cfg.temperatureSet {
		return cfg.Temperature
	}
	return DefaultTemperature
}

func countToolCalls(resp *llms.ContentResponse) int {
	count := 0
	for _, choice := range resp.Choices {
		count += len(choice.ToolCalls)
	}
	return count
}

// executeToolCalls executes the tool calls in the response and returns the
// updated message history.
func (a *Agent) executeToolCalls(ctx context.Context, cfg *Config, messageHistory []llms.Message, resp *llms.ContentResponse) (int, int, []llms.Message, error) {
	executedCount := 0
	notFoundCount := 0

	// Create a type to hold tool call results
	type toolCallResult struct {
		toolCall llms.ToolCall
		response string
		err      error
		index    int // Index in the original toolCalls slice
	}

	var toolCalls []llms.ToolCall

	// Collect all tool calls first and add them to message history
	for _, choice := range resp.Choices {
		var choiceToolCalls []llms.ToolCall

		for i, toolCall := range choice.ToolCalls {
			executedCount++

			if toolCall.ID == "" {
				toolCall.ID = fmt.Sprintf("%s_%d", toolCall.FunctionCall.Name, i)
			}
			toolCall.Type = values.StringsCoalesce(toolCall.Type, "function")

			choiceToolCalls = append(choiceToolCalls, toolCall)

			logger.ContextKV(ctx, xlog.DEBUG,
				"agent", a.name,
				"status", "tool_call_found",
				"tool_call_id", toolCall.ID,
				"tool_call_name", toolCall.FunctionCall.Name,
			)
		}

		if len(choiceToolCalls) == 0 {
			continue
		}

		toolCalls = append(toolCalls, choiceToolCalls...)
		assistantResponse := llms.MessageFromToolCalls(llms.RoleAI, choiceToolCalls...)
		messageHistory = append(messageHistory, assistantResponse)
		a.runMessages = append(a.runMessages, assistantResponse)
	}

	if executedCount == 0 {
		return executedCount, notFoundCount, messageHistory, nil
	}

	// Channel to collect results - buffered to prevent deadlock
	resultChan := make(chan toolCallResult, len(toolCalls))

	var notFoundMu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(len(toolCalls))

	// Launch goroutines for each tool call
	for i, toolCall := range toolCalls {
		go func(index int, tc llms.ToolCall) {
			defer wg.Done()
			toolName := tc.FunctionCall.Name
			toolArgs := tc.FunctionCall.Arguments

			// use lowercase for the key
			tool := a.toolsByName[strings.ToLower(toolName)]
			if tool == nil {
				notFoundMu.Lock()
				notFoundCount++
				notFoundMu.Unlock()
				metricskey.StatsToolCallsNotFound.IncrCounter(1, toolName)
				if cfg.CallbackHandler != nil {
					cfg.CallbackHandler.OnToolNotFound(ctx, a, toolName)
				}

				availableTools := strings.Join(a.toolsNames, ", ")
				logger.ContextKV(ctx, xlog.WARNING,
					"agent", a.name,
					"status", "tool_not_found",
					"tool_name", toolName,
					"available_tools", availableTools,
				)

				resultChan <- toolCallResult{
					toolCall: tc,
					response: fmt.Sprintf("Tool `%s` not found. Please check the tool name and try again with exact match. Available tools: %s", toolName, availableTools),
					index:    index,
				}
				return
			}

			if cfg.CallbackHandler != nil {
				cfg.CallbackHandler.OnToolStart(ctx, tool, toolArgs)
			}

			started := time.Now()
			res, err := tool.Call(ctx, toolArgs)
			metricskey.PerfToolCall.MeasureSince(started, toolName)

			if err != nil {
				metricskey.StatsToolCallsFailed.IncrCounter(1, toolName)
				if cfg.CallbackHandler != nil {
					cfg.CallbackHandler.OnToolError(ctx, tool, toolArgs, err)
				}

				resultChan <- toolCallResult{
					toolCall: tc,
					err:      errors.WithMessagef(err, "failed to call tool %s", toolName),
					index:    index,
				}
				return
			}
			metricskey.StatsToolCallsSucceeded.IncrCounter(1, toolName)

			if cfg.CallbackHandler != nil {
				cfg.CallbackHandler.OnToolEnd(ctx, tool, toolArgs, res)
			}

			resultChan <- toolCallResult{
				toolCall: tc,
				response: res,
				index:    index,
			}
		}(i, toolCall)
	}

	// Wait for all tool calls to complete
	wg.Wait()
	close(resultChan)

	// Collect results in order using the index
	results := make([]toolCallResult, len(toolCalls))
	for result := range resultChan {
		if result.index >= 0 && result.index < len(results) {
			results[result.index] = result
		}
	}

	// Process results in the same order as the original tool calls
	for i, result := range results {
		if result.toolCall.ID == "" {
			// A missing result still gets a tool message so the model
			// sees the outcome of every call it requested.
			result = toolCallResult{
				toolCall: toolCalls[i],
				err:      errors.New("no response received from tool"),
				index:    i,
			}
			logger.ContextKV(ctx, xlog.WARNING,
				"agent", a.name,
				"status", "tool_call_missing_response",
				"tool_call_id", toolCalls[i].ID,
				"tool_name", toolCalls[i].FunctionCall.Name,
			)
		}

		var content string
		if result.err != nil {
			// Format error as a message for the LLM
			content = fmt.Sprintf("Tool call failed: %s", result.err.Error())
			logger.ContextKV(ctx, xlog.WARNING,
				"agent", a.name,
				"status", "tool_call_failed",
				"tool", result.toolCall.FunctionCall.Name,
				"err", result.err.Error(),
			)
		} else {
			content = result.response
		}

		toolCallResponse := llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
			ToolCallID: result.toolCall.ID,
			Name:       result.toolCall.FunctionCall.Name,
			Content:    content,
		})

		logger.ContextKV(ctx, xlog.DEBUG,
			"agent", a.name,
			"status", "tool_call_response",
			"tool_call_id", result.toolCall.ID,
			"tool_name", result.toolCall.FunctionCall.Name,
			"content_length", len(content),
		)

		// Add the response immediately after its corresponding tool call
		messageHistory = append(messageHistory, toolCallResponse)
		a.runMessages = append(a.runMessages, toolCallResponse)
	}

	return executedCount, notFoundCount, messageHistory, nil
}
