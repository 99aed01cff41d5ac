package llms

import (
	"context"
)

//go:generate mockgen -destination=../../mocks/mockllms/llms_mock.gen.go -package mockllms github.com/omniagent-io/omniagent/pkg/llms Model

// ProviderType is the type of reasoning provider.
type ProviderType string

const (
	// ProviderOpenAI is the OpenAI chat completions API.
	ProviderOpenAI ProviderType = "OPENAI"
	// ProviderAzure is an Azure-hosted OpenAI deployment.
	ProviderAzure ProviderType = "AZURE"
)

// Model is the interface reasoning backends implement.
// A response choice either carries final text content, or one or more
// tool calls the caller is expected to execute.
type Model interface {
	// GetProviderType returns the type of provider.
	GetProviderType() ProviderType
	// GetName returns the model name used for calls.
	GetName() string
	// GenerateContent asks the model to generate content from a sequence of
	// messages, optionally offering the given tools.
	GenerateContent(ctx context.Context, messages []Message, options ...CallOption) (*ContentResponse, error)
}

// Capability is a bitmask indicating supported features of a provider.
type Capability uint64

const (
	// CapabilityText is basic chat generation.
	CapabilityText Capability = 1 << iota

	// CapabilityFunctionCalling is function/tool calling.
	CapabilityFunctionCalling
	// CapabilityMultiToolCalling allows several tool calls in one turn.
	CapabilityMultiToolCalling

	// CapabilitySystemPrompt is system prompt support.
	CapabilitySystemPrompt
)

var providerCapabilities = map[ProviderType]Capability{
	ProviderOpenAI: CapabilityText |
		CapabilityFunctionCalling |
		CapabilityMultiToolCalling |
		CapabilitySystemPrompt,

	ProviderAzure: CapabilityText |
		CapabilityFunctionCalling |
		CapabilityMultiToolCalling |
		CapabilitySystemPrompt,
}

// ProviderCapabilities returns the capability mask of a provider.
func ProviderCapabilities(pt ProviderType) Capability {
	return providerCapabilities[pt]
}

// Supports reports whether the provider supports the capability.
func (p ProviderType) Supports(cap Capability) bool {
	return ProviderCapabilities(p)&cap != 0
}
