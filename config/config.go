package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chethanchannaveer/agentcore/logging"
	"github.com/chethanchannaveer/agentcore/memory"
	"github.com/chethanchannaveer/agentcore/model"
	"github.com/chethanchannaveer/agentcore/registry"
)

// Environment variables holding provider credentials. Keys are never read
// from the config file.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
)

// Config is the startup configuration of the agentcore server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	LLM    LLMConfig    `yaml:"llm"`
	Memory MemoryConfig `yaml:"memory"`
	Agents AgentsConfig `yaml:"agents"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig selects level and handler format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LLMConfig configures the model access layer.
type LLMConfig struct {
	// Provider optionally pins the preferred backend (local, openai, anthropic).
	Provider       string  `yaml:"provider"`
	OpenAIModel    string  `yaml:"openai_model"`
	AnthropicModel string  `yaml:"anthropic_model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int64   `yaml:"max_tokens"`
	// Stream requests incremental output from external providers.
	Stream bool `yaml:"stream"`

	OpenAIKey    string `yaml:"-"`
	AnthropicKey string `yaml:"-"`
}

// MemoryConfig sizes each agent's memory.
type MemoryConfig struct {
	ShortTermCapacity int `yaml:"short_term_capacity"`
}

// AgentsConfig lists the agents created at startup.
type AgentsConfig struct {
	Defaults []string `yaml:"defaults"`
}

// LoadOptions tunes Load.
type LoadOptions struct {
	// Getenv resolves environment variables; os.Getenv by default.
	Getenv func(string) string
}

// DefaultTemperature is the sampling temperature used when the file sets none.
const DefaultTemperature = 0.7

// Default returns the built-in configuration without credentials.
func Default() *Config {
	cfg := &Config{LLM: LLMConfig{Temperature: DefaultTemperature}}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path (optional: an empty path uses defaults
// only) over the built-in defaults, fills fields left blank, overlays
// credentials from the environment and validates the result. A temperature
// of 0 in the file is kept.
func Load(path string, optFns ...func(o *LoadOptions)) (*Config, error) {
	opts := LoadOptions{Getenv: os.Getenv}
	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := Default()
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.LLM.OpenAIKey = strings.TrimSpace(opts.Getenv(EnvOpenAIKey))
	cfg.LLM.AnthropicKey = strings.TrimSpace(opts.Getenv(EnvAnthropicKey))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.LLM.OpenAIModel == "" {
		c.LLM.OpenAIModel = "gpt-4o-mini"
	}
	if c.LLM.AnthropicModel == "" {
		c.LLM.AnthropicModel = "claude-3-5-sonnet-20241022"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.Memory.ShortTermCapacity == 0 {
		c.Memory.ShortTermCapacity = memory.DefaultShortTermCapacity
	}
	if c.Agents.Defaults == nil {
		c.Agents.Defaults = append([]string(nil), registry.DefaultAgents...)
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: must be json or text, got %q", c.Log.Format))
	}
	if c.LLM.Provider != "" {
		if _, err := model.ParseProvider(c.LLM.Provider); err != nil {
			errs = append(errs, fmt.Errorf("llm.provider: %w", err))
		}
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errs = append(errs, fmt.Errorf("llm.temperature: must be within [0, 2], got %v", c.LLM.Temperature))
	}
	if c.LLM.MaxTokens < 0 {
		errs = append(errs, fmt.Errorf("llm.max_tokens: must be positive, got %d", c.LLM.MaxTokens))
	}
	if c.Memory.ShortTermCapacity < 0 {
		errs = append(errs, fmt.Errorf("memory.short_term_capacity: must be positive, got %d", c.Memory.ShortTermCapacity))
	}
	for i, name := range c.Agents.Defaults {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("agents.defaults[%d]: name is empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// PreferredProvider returns the parsed llm.provider override, or "" when unset.
func (c *Config) PreferredProvider() model.Provider {
	p, err := model.ParseProvider(c.LLM.Provider)
	if err != nil {
		return ""
	}
	return p
}
