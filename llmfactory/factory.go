// Package llmfactory creates chat models from yaml configuration.
package llmfactory

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/omniagent-io/omniagent/pkg/llms"
	"github.com/omniagent-io/omniagent/pkg/llms/openai"
)

var logger = xlog.NewPackageLogger("github.com/omniagent-io/omniagent", "llmfactory")

type Factory interface {
	DefaultModel() (llms.Model, error)
	ModelByName(name string) (llms.Model, error)
}

// Load returns a factory from a yaml config file
func Load(location string) (Factory, error) {
	cfg, err := LoadConfig(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

type factory struct {
	cfg *Config

	byName map[string]llms.Model
	lock   sync.Mutex
}

// New creates a new LLM factory
func New(cfg *Config) Factory {
	return &factory{
		cfg:    cfg,
		byName: make(map[string]llms.Model),
	}
}

// NewLLM creates a chat model from one provider config.
// It is a variable so tests can substitute a fake constructor.
var NewLLM = CreateLLM

// CreateLLM is the default NewLLM implementation.
func CreateLLM(cfg *ProviderConfig) (llms.Model, error) {
	return openai.New(&openai.Config{
		APIType:      cfg.OpenAI.APIType,
		BaseURL:      cfg.OpenAI.BaseURL,
		APIVersion:   cfg.OpenAI.APIVersion,
		Token:        cfg.Token,
		DefaultModel: cfg.DefaultModel,
	})
}

// DefaultModel returns the model of the first configured provider.
func (f *factory) DefaultModel() (llms.Model, error) {
	if len(f.cfg.Providers) == 0 {
		return nil, errors.New("no providers configured")
	}
	return f.ModelByName(f.cfg.Providers[0].Name)
}

func (f *factory) ModelByName(name string) (llms.Model, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if model, ok := f.byName[name]; ok {
		return model, nil
	}

	for _, cfg := range f.cfg.Providers {
		if cfg.Name == name {
			model, err := NewLLM(cfg)
			if err != nil {
				return nil, err
			}

			logger.KV(xlog.DEBUG,
				"status", "created_llm",
				"type", cfg.OpenAI.APIType,
				"version", cfg.OpenAI.APIVersion,
				"name", cfg.Name)

			f.byName[name] = model
			return model, nil
		}
	}
	return nil, errors.Errorf("provider not found for name: %s", name)
}
