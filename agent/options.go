package agent

// Option is a function that can be used to modify the behavior of the Agent Config.
type Option func(*Config)

type Config struct {
	// Model overrides the LLM default model for a call.
	Model string

	// MaxTokens is the maximum number of tokens to generate in an LLM call.
	MaxTokens int

	// Temperature is the sampling temperature, between 0 and 1.
	// Kept low by default to bias toward deterministic tool selection.
	Temperature    float64
	temperatureSet bool

	// Seed is a seed for deterministic sampling.
	Seed int

	// MaxToolRounds bounds reasoning/tool-execution cycles per turn.
	MaxToolRounds int

	// MaxToolCalls bounds the total tool calls per turn.
	MaxToolCalls int

	// MaxMessages bounds the message history sent to the LLM.
	MaxMessages int

	// MaxContentSize bounds the total content bytes sent to the LLM.
	MaxContentSize int

	// CallbackHandler receives turn and tool lifecycle notifications.
	CallbackHandler Callback
}

func NewConfig(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Apply returns a copy of the config with per-call overrides applied.
func (c *Config) Apply(opts ...Option) *Config {
	cfg := *c
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithModel overrides the model for a call.
func WithModel(model string) Option {
	return func(o *Config) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Config) {
		o.MaxTokens = maxTokens
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(temperature float64) Option {
	return func(o *Config) {
		o.Temperature = temperature
		o.temperatureSet = true
	}
}

// WithSeed sets a seed for deterministic sampling.
func WithSeed(seed int) Option {
	return func(o *Config) {
		o.Seed = seed
	}
}

// WithMaxToolRounds bounds reasoning/tool-execution cycles per turn.
func WithMaxToolRounds(rounds int) Option {
	return func(o *Config) {
		o.MaxToolRounds = rounds
	}
}

// WithMaxToolCalls bounds the total tool calls per turn.
func WithMaxToolCalls(calls int) Option {
	return func(o *Config) {
		o.MaxToolCalls = calls
	}
}

// WithMaxMessages bounds the message history sent to the LLM.
func WithMaxMessages(messages int) Option {
	return func(o *Config) {
		o.MaxMessages = messages
	}
}

// WithMaxContentSize bounds the total content bytes sent to the LLM.
func WithMaxContentSize(size int) Option {
	return func(o *Config) {
		o.MaxContentSize = size
	}
}

// WithCallback allows setting a custom Callback Handler.
func WithCallback(callbackHandler Callback) Option {
	return func(o *Config) {
		o.CallbackHandler = callbackHandler
	}
}
