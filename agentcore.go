// Package agentcore is the façade over the agent registry and the model
// access layer. It exposes the operations a transport needs: managing
// agents, running tasks, chatting, and reporting the active provider.
//
// A Core is usually built from a loaded config.Config:
//
//	cfg, err := config.Load(path)
//	...
//	c, err := agentcore.NewFromConfig(cfg, logger)
//
// Without credentials every call is answered by the offline simulator.
package agentcore

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/chethanchannaveer/agentcore/agent"
	"github.com/chethanchannaveer/agentcore/config"
	"github.com/chethanchannaveer/agentcore/core"
	"github.com/chethanchannaveer/agentcore/llm"
	"github.com/chethanchannaveer/agentcore/logging"
	"github.com/chethanchannaveer/agentcore/memory"
	"github.com/chethanchannaveer/agentcore/model"
	anthropicmodel "github.com/chethanchannaveer/agentcore/model/anthropic"
	openaimodel "github.com/chethanchannaveer/agentcore/model/openai"
	"github.com/chethanchannaveer/agentcore/registry"
)

// ChatReply is the answer of an agent chat turn together with the preferred
// provider at the time of the call.
type ChatReply struct {
	Response string         `json:"response"`
	Provider model.Provider `json:"provider"`
}

// Options configures a Core.
type Options struct {
	// Logger defaults to NoOp.
	Logger logging.Logger
	// Router replaces the router built from RouterOptions.
	Router          *llm.Router
	RouterOptions   []func(o *llm.Options)
	RegistryOptions []func(o *registry.Options)
	// Seed lists agents created on construction.
	Seed []string
}

// Core wires the registry to the model access layer.
type Core struct {
	router   *llm.Router
	registry *registry.Registry
	logger   logging.Logger
}

// New creates a Core.
func New(optFns ...func(o *Options)) (*Core, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	router := opts.Router
	if router == nil {
		routerOpts := append([]func(o *llm.Options){func(o *llm.Options) { o.Logger = opts.Logger }}, opts.RouterOptions...)
		var err error
		router, err = llm.New(routerOpts...)
		if err != nil {
			return nil, err
		}
	}

	regOpts := append([]func(o *registry.Options){func(o *registry.Options) { o.Logger = opts.Logger }}, opts.RegistryOptions...)
	c := &Core{
		router:   router,
		registry: registry.New(router, regOpts...),
		logger:   opts.Logger,
	}
	c.registry.Seed(opts.Seed...)
	return c, nil
}

// NewFromConfig creates a Core from a loaded configuration.
func NewFromConfig(cfg *config.Config, logger logging.Logger) (*Core, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return New(func(o *Options) {
		o.Logger = logger
		o.Seed = cfg.Agents.Defaults
		o.RouterOptions = append(o.RouterOptions, func(o *llm.Options) {
			o.OpenAIKey = cfg.LLM.OpenAIKey
			o.AnthropicKey = cfg.LLM.AnthropicKey
			o.Preferred = cfg.PreferredProvider()
			o.Stream = cfg.LLM.Stream
			o.OpenAIOptions = append(o.OpenAIOptions, func(o *openaimodel.Options) {
				o.Model = cfg.LLM.OpenAIModel
				o.Temperature = cfg.LLM.Temperature
				o.MaxCompletionTokens = cfg.LLM.MaxTokens
			})
			o.AnthropicOptions = append(o.AnthropicOptions, func(o *anthropicmodel.Options) {
				o.Model = anthropic.Model(cfg.LLM.AnthropicModel)
				o.Temperature = cfg.LLM.Temperature
				o.MaxTokens = cfg.LLM.MaxTokens
			})
		})
		o.RegistryOptions = append(o.RegistryOptions, func(o *registry.Options) {
			o.AgentOptions = append(o.AgentOptions, func(o *agent.Options) {
				o.Logger = logger
				o.MemoryOptions = append(o.MemoryOptions, func(o *memory.Options) {
					o.ShortTermCapacity = cfg.Memory.ShortTermCapacity
				})
			})
		})
	})
}

// Registry exposes the underlying agent registry.
func (c *Core) Registry() *registry.Registry { return c.registry }

// Router exposes the model access layer.
func (c *Core) Router() *llm.Router { return c.router }

// CreateAgent adds an agent.
func (c *Core) CreateAgent(name string) core.AgentInfo { return c.registry.CreateAgent(name) }

// ListAgents lists agents in creation order.
func (c *Core) ListAgents() []core.AgentInfo { return c.registry.ListAgents() }

// DeleteAgent removes an agent; false when it did not exist.
func (c *Core) DeleteAgent(id string) bool { return c.registry.DeleteAgent(id) }

// ExecuteTask runs a task on an agent. Unknown ids yield core.ErrAgentNotFound.
func (c *Core) ExecuteTask(ctx context.Context, id, description string) (*core.Task, error) {
	return c.registry.ExecuteTask(ctx, id, description)
}

// ChatWithAgent sends a chat message to an agent. Unknown ids yield
// core.ErrAgentNotFound.
func (c *Core) ChatWithAgent(ctx context.Context, id, message string) (ChatReply, error) {
	reply, err := c.registry.ChatWithAgent(ctx, id, message)
	if err != nil {
		return ChatReply{}, err
	}
	return ChatReply{Response: reply, Provider: c.router.Provider()}, nil
}

// ProviderStatus reports the preferred backend.
func (c *Core) ProviderStatus() llm.ProviderStatus { return c.router.Status() }

// Complete sends a one-off prompt straight to the model access layer,
// bypassing any agent.
func (c *Core) Complete(ctx context.Context, system, user string) llm.Response {
	return c.router.Chat(ctx, []model.Message{model.SystemMessage(system), model.UserMessage(user)})
}
