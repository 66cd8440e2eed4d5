package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/chethanchannaveer/agentcore/agent"
	"github.com/chethanchannaveer/agentcore/core"
	"github.com/chethanchannaveer/agentcore/logging"
)

// DefaultAgents are the agents a fresh deployment starts with.
var DefaultAgents = []string{"Code Generator", "Booking Assistant", "Learning Coach"}

// Options configures a Registry.
type Options struct {
	Logger logging.Logger
	// AgentOptions are applied to every agent the registry creates.
	AgentOptions []func(o *agent.Options)
	// NewID generates agent ids; defaults to "agent-<uuid>".
	NewID func() string
	// Hooks receives lifecycle callbacks; a fresh manager when nil.
	Hooks *HookManager
}

type entry struct {
	agent          *agent.TaskAgent
	tasksCompleted int
}

// Registry owns the set of live agents and their completed-task counters.
//
// Concurrency:
//   - the agent map and creation order are guarded by an RWMutex
//   - task execution runs outside the lock; the agent serialises its own tasks
type Registry struct {
	backend   agent.Backend
	logger    logging.Logger
	agentOpts []func(o *agent.Options)
	newID     func() string
	hooks     *HookManager

	mu     sync.RWMutex
	agents map[string]*entry
	order  []string
}

// New creates an empty Registry whose agents talk to backend.
func New(backend agent.Backend, optFns ...func(o *Options)) *Registry {
	opts := Options{
		Logger: logging.NoOpLogger{},
		NewID:  func() string { return "agent-" + uuid.NewString() },
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Hooks == nil {
		opts.Hooks = NewHookManager()
	}
	return &Registry{
		backend:   backend,
		logger:    opts.Logger,
		agentOpts: opts.AgentOptions,
		newID:     opts.NewID,
		hooks:     opts.Hooks,
		agents:    make(map[string]*entry),
	}
}

// Hooks returns the lifecycle hook manager.
func (r *Registry) Hooks() *HookManager { return r.hooks }

// Seed creates one agent per name, in order.
func (r *Registry) Seed(names ...string) []core.AgentInfo {
	out := make([]core.AgentInfo, 0, len(names))
	for _, n := range names {
		out = append(out, r.CreateAgent(n))
	}
	return out
}

// CreateAgent adds a new idle agent and returns its info.
func (r *Registry) CreateAgent(name string) core.AgentInfo {
	r.mu.Lock()
	id := r.newID()
	for _, taken := r.agents[id]; taken; _, taken = r.agents[id] {
		id = r.newID()
	}
	a := agent.New(id, name, r.backend, r.agentOpts...)
	r.agents[id] = &entry{agent: a}
	r.order = append(r.order, id)
	info := infoFor(a, 0)
	r.mu.Unlock()

	r.logger.Info("Created agent", "agent_id", id, "name", name)
	r.runHook(context.Background(), &HookContext{Type: HookAgentCreated, Agent: info})
	return info
}

// Agent looks up an agent by id.
func (r *Registry) Agent(id string) (*agent.TaskAgent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.agents[id]
	if !ok {
		return nil, false
	}
	return e.agent, true
}

// ListAgents returns every agent in creation order.
func (r *Registry) ListAgents() []core.AgentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.AgentInfo, 0, len(r.order))
	for _, id := range r.order {
		e := r.agents[id]
		out = append(out, infoFor(e.agent, e.tasksCompleted))
	}
	return out
}

// DeleteAgent removes an agent and its counter. It reports whether the
// agent existed.
func (r *Registry) DeleteAgent(id string) bool {
	r.mu.Lock()
	e, ok := r.agents[id]
	if !ok {
		r.mu.Unlock()
		return false
	}
	delete(r.agents, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	info := infoFor(e.agent, e.tasksCompleted)
	r.mu.Unlock()

	r.logger.Info("Deleted agent", "agent_id", id)
	r.runHook(context.Background(), &HookContext{Type: HookAgentDeleted, Agent: info})
	return true
}

// ExecuteTask runs description on agent id and counts it as completed.
func (r *Registry) ExecuteTask(ctx context.Context, id, description string) (*core.Task, error) {
	a, ok := r.Agent(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrAgentNotFound, id)
	}
	if err := r.hooks.Execute(ctx, &HookContext{Type: HookBeforeTask, Agent: r.info(id, a), Description: description}); err != nil {
		return nil, err
	}

	task := a.ProcessTask(ctx, description)

	r.mu.Lock()
	if e, ok := r.agents[id]; ok {
		e.tasksCompleted++
	}
	r.mu.Unlock()

	r.runHook(ctx, &HookContext{Type: HookAfterTask, Agent: r.info(id, a), Description: description, Task: task.Clone()})
	return task, nil
}

// ChatWithAgent forwards message to agent id.
func (r *Registry) ChatWithAgent(ctx context.Context, id, message string) (string, error) {
	a, ok := r.Agent(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrAgentNotFound, id)
	}
	return a.Chat(ctx, message), nil
}

func (r *Registry) info(id string, a *agent.TaskAgent) core.AgentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	if e, ok := r.agents[id]; ok {
		n = e.tasksCompleted
	}
	return infoFor(a, n)
}

// runHook executes hooks whose failure must not undo the operation.
func (r *Registry) runHook(ctx context.Context, hc *HookContext) {
	if err := r.hooks.Execute(ctx, hc); err != nil {
		r.logger.Warn("Hook failed", "hook", string(hc.Type), "agent_id", hc.Agent.ID, "error", err)
	}
}

// infoFor builds the listing snapshot. Status is always idle and the success
// rate is the share of executed tasks that completed, which is every task
// today since no path marks one failed.
func infoFor(a *agent.TaskAgent, tasksCompleted int) core.AgentInfo {
	return core.AgentInfo{
		ID:             a.ID(),
		Name:           a.Name(),
		Status:         core.AgentStatusIdle,
		TasksCompleted: tasksCompleted,
		SuccessRate:    successRate(tasksCompleted, tasksCompleted),
	}
}

func successRate(succeeded, executed int) int {
	if executed == 0 {
		return 100
	}
	return succeeded * 100 / executed
}
