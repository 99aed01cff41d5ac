// Package openai implements the chat model contract over the OpenAI
// chat completions API, including Azure-hosted deployments.
package openai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/omniagent-io/omniagent/pkg/llms"
	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "openai")

// Config describes one OpenAI-compatible endpoint.
type Config struct {
	// APIType is OPEN_AI or AZURE.
	APIType string `json:"api_type,omitempty" yaml:"api_type,omitempty"`
	// BaseURL is the endpoint URL. For Azure this is the resource endpoint.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	// APIVersion is required for Azure deployments.
	APIVersion string `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	// Token is the API key.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`
	// DefaultModel is used when a call does not specify a model.
	DefaultModel string `json:"default_model,omitempty" yaml:"default_model,omitempty"`
}

// LLM is a chat model backed by the OpenAI API.
type LLM struct {
	client       oai.Client
	providerType llms.ProviderType
	defaultModel string
}

var _ llms.Model = (*LLM)(nil)

// New creates a chat model for the configured endpoint.
func New(cfg *Config) (*LLM, error) {
	if cfg.Token == "" {
		return nil, errors.New("API token is required")
	}

	var opts []option.RequestOption
	providerType := llms.ProviderOpenAI

	switch strings.ToUpper(cfg.APIType) {
	case "AZURE":
		if cfg.BaseURL == "" || cfg.APIVersion == "" {
			return nil, errors.New("Azure requires base_url and api_version")
		}
		providerType = llms.ProviderAzure
		opts = append(opts,
			azure.WithEndpoint(cfg.BaseURL, cfg.APIVersion),
			azure.WithAPIKey(cfg.Token),
		)
	default:
		opts = append(opts, option.WithAPIKey(cfg.Token))
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
	}

	return &LLM{
		client:       oai.NewClient(opts...),
		providerType: providerType,
		defaultModel: cfg.DefaultModel,
	}, nil
}

// GetProviderType returns the type of provider.
func (m *LLM) GetProviderType() llms.ProviderType {
	return m.providerType
}

// GetName returns the default model name.
func (m *LLM) GetName() string {
	return m.defaultModel
}

// GenerateContent implements llms.Model.
func (m *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{
		Model: m.defaultModel,
	}
	for _, opt := range options {
		opt(&opts)
	}

	msgs, err := toMessages(messages)
	if err != nil {
		return nil, err
	}

	params := oai.ChatCompletionNewParams{
		Messages: msgs,
		Model:    oai.ChatModel(opts.Model),
	}
	if opts.Temperature > 0 {
		params.Temperature = oai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = oai.Int(int64(opts.MaxTokens))
	}
	if opts.Seed > 0 {
		params.Seed = oai.Int(int64(opts.Seed))
	}
	if len(opts.Tools) > 0 {
		params.Tools, err = toTools(opts.Tools)
		if err != nil {
			return nil, err
		}
	}

	completion, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, errors.WithMessage(err, "completion request failed")
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("no completion choices returned")
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"model", opts.Model,
		"choices", len(completion.Choices),
		"total_tokens", completion.Usage.TotalTokens)

	choices := make([]*llms.ContentChoice, len(completion.Choices))
	for i, c := range completion.Choices {
		choice := &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: string(c.FinishReason),
			GenerationInfo: map[string]any{
				"PromptTokens":     completion.Usage.PromptTokens,
				"CompletionTokens": completion.Usage.CompletionTokens,
				"TotalTokens":      completion.Usage.TotalTokens,
			},
		}
		for _, tc := range c.Message.ToolCalls {
			choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
				ID:   tc.ID,
				Type: "function",
				FunctionCall: &llms.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		choices[i] = choice
	}
	return &llms.ContentResponse{Choices: choices}, nil
}

func toMessages(messages []llms.Message) ([]oai.ChatCompletionMessageParamUnion, error) {
	res := make([]oai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case llms.RoleSystem:
			res = append(res, oai.SystemMessage(textOfParts(msg.Parts)))
		case llms.RoleHuman:
			res = append(res, oai.UserMessage(textOfParts(msg.Parts)))
		case llms.RoleAI:
			if calls := msg.ToolCalls(); len(calls) > 0 {
				res = append(res, assistantToolCallMessage(textOfParts(msg.Parts), calls))
			} else {
				res = append(res, oai.AssistantMessage(textOfParts(msg.Parts)))
			}
		case llms.RoleTool:
			for _, part := range msg.Parts {
				tr, ok := part.(llms.ToolCallResponse)
				if !ok {
					return nil, errors.Newf("unexpected part in tool message: %T", part)
				}
				res = append(res, oai.ToolMessage(tr.Content, tr.ToolCallID))
			}
		default:
			return nil, errors.Newf("unsupported message role: %s", msg.Role)
		}
	}
	return res, nil
}

func assistantToolCallMessage(content string, calls []llms.ToolCall) oai.ChatCompletionMessageParamUnion {
	toolCalls := make([]oai.ChatCompletionMessageToolCallUnionParam, 0, len(calls))
	for _, tc := range calls {
		toolCalls = append(toolCalls, oai.ChatCompletionMessageToolCallUnionParam{
			OfFunction: &oai.ChatCompletionMessageFunctionToolCallParam{
				ID: tc.ID,
				Function: oai.ChatCompletionMessageFunctionToolCallFunctionParam{
					Name:      tc.FunctionCall.Name,
					Arguments: tc.FunctionCall.Arguments,
				},
			},
		})
	}
	assistant := &oai.ChatCompletionAssistantMessageParam{
		ToolCalls: toolCalls,
	}
	if content != "" {
		assistant.Content = oai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: oai.String(content),
		}
	}
	return oai.ChatCompletionMessageParamUnion{OfAssistant: assistant}
}

func toTools(list []llms.Tool) ([]oai.ChatCompletionToolUnionParam, error) {
	res := make([]oai.ChatCompletionToolUnionParam, 0, len(list))
	for _, tool := range list {
		if tool.Function == nil {
			return nil, errors.Newf("unsupported tool type: %s", tool.Type)
		}
		params, err := toFunctionParameters(tool.Function.Parameters)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid parameters for tool: %s", tool.Function.Name)
		}
		res = append(res, oai.ChatCompletionFunctionTool(
			oai.FunctionDefinitionParam{
				Name:        tool.Function.Name,
				Description: oai.String(tool.Function.Description),
				Parameters:  params,
			},
		))
	}
	return res, nil
}

// toFunctionParameters renders any schema shape to the generic map the
// API client expects.
func toFunctionParameters(params any) (oai.FunctionParameters, error) {
	if params == nil {
		return oai.FunctionParameters{"type": "object"}, nil
	}
	if m, ok := params.(map[string]any); ok {
		return oai.FunctionParameters(m), nil
	}
	bs, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(bs, &m); err != nil {
		return nil, err
	}
	return oai.FunctionParameters(m), nil
}

func textOfParts(parts []llms.ContentPart) string {
	var sb strings.Builder
	for _, p := range parts {
		if tc, ok := p.(llms.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}
