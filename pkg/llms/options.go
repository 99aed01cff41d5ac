package llms

// CallOption is a function that configures a CallOptions.
type CallOption func(*CallOptions)

// CallOptions is a set of options for calling models.
type CallOptions struct {
	// Model is the model to use.
	Model string `json:"model"`
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int `json:"max_tokens"`
	// Temperature is the temperature for sampling, between 0 and 1.
	// The agent keeps this low to bias toward deterministic tool selection.
	Temperature float64 `json:"temperature"`
	// Seed is a seed for deterministic sampling.
	Seed int `json:"seed"`
	// Tools is a list of tools offered to the model.
	Tools []Tool `json:"tools,omitempty"`
	// ToolChoice is "none", "auto" (the default), or a specific tool.
	ToolChoice any `json:"tool_choice"`
}

// Tool is a tool definition offered to the model.
type Tool struct {
	// Type is the type of the tool, only "function" is supported.
	Type string `json:"type"`
	// Function is the function definition, if Type is "function".
	Function *FunctionDefinition `json:"function,omitempty"`
}

// FunctionDefinition is the definition of a function that can be called.
type FunctionDefinition struct {
	// Name is the name of the function.
	Name string `json:"name"`
	// Description is a description of the function, guiding the model.
	Description string `json:"description"`
	// Parameters is the JSON schema of the accepted arguments.
	Parameters any `json:"parameters,omitempty"`
}

// WithModel specifies the model name for the call.
func WithModel(model string) CallOption {
	return func(o *CallOptions) {
		o.Model = model
	}
}

// WithMaxTokens specifies the max number of tokens to generate.
func WithMaxTokens(maxTokens int) CallOption {
	return func(o *CallOptions) {
		o.MaxTokens = maxTokens
	}
}

// WithTemperature specifies the model temperature.
func WithTemperature(temperature float64) CallOption {
	return func(o *CallOptions) {
		o.Temperature = temperature
	}
}

// WithSeed specifies a seed for deterministic sampling.
func WithSeed(seed int) CallOption {
	return func(o *CallOptions) {
		o.Seed = seed
	}
}

// WithTools specifies the tools offered to the model.
func WithTools(tools []Tool) CallOption {
	return func(o *CallOptions) {
		o.Tools = tools
	}
}

// WithToolChoice specifies the tool choice behavior.
func WithToolChoice(choice any) CallOption {
	return func(o *CallOptions) {
		o.ToolChoice = choice
	}
}
