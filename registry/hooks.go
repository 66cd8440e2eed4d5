package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/chethanchannaveer/agentcore/core"
)

// HookType names a lifecycle point of the registry.
type HookType string

const (
	// HookAgentCreated fires after an agent has been added.
	HookAgentCreated HookType = "agent_created"
	// HookAgentDeleted fires after an agent has been removed.
	HookAgentDeleted HookType = "agent_deleted"
	// HookBeforeTask fires before a task is handed to an agent. An error
	// aborts ExecuteTask.
	HookBeforeTask HookType = "before_task"
	// HookAfterTask fires once a task has finished and been counted.
	HookAfterTask HookType = "after_task"
)

// HookContext carries what a hook may inspect. Task is set for
// HookAfterTask only and is a private copy.
type HookContext struct {
	Type        HookType
	Agent       core.AgentInfo
	Description string
	Task        *core.Task
}

// Hook is a lifecycle callback.
type Hook interface {
	Type() HookType
	Execute(ctx context.Context, hc *HookContext) error
}

// FunctionHook wraps a function as a Hook.
type FunctionHook struct {
	hookType HookType
	fn       func(ctx context.Context, hc *HookContext) error
}

// NewFunctionHook creates a function-based hook.
func NewFunctionHook(t HookType, fn func(ctx context.Context, hc *HookContext) error) *FunctionHook {
	return &FunctionHook{hookType: t, fn: fn}
}

// Type implements Hook.
func (h *FunctionHook) Type() HookType { return h.hookType }

// Execute implements Hook.
func (h *FunctionHook) Execute(ctx context.Context, hc *HookContext) error { return h.fn(ctx, hc) }

// HookManager runs hooks in registration order; the first error stops the chain.
// Safe for concurrent registration and execution.
type HookManager struct {
	mu    sync.RWMutex
	hooks map[HookType][]Hook
}

// NewHookManager creates an empty manager.
func NewHookManager() *HookManager {
	return &HookManager{hooks: make(map[HookType][]Hook)}
}

// Register adds a hook.
func (m *HookManager) Register(h Hook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks[h.Type()] = append(m.hooks[h.Type()], h)
}

// Execute runs every hook registered for hc.Type.
func (m *HookManager) Execute(ctx context.Context, hc *HookContext) error {
	m.mu.RLock()
	hooks := append([]Hook(nil), m.hooks[hc.Type]...)
	m.mu.RUnlock()
	for _, h := range hooks {
		if err := h.Execute(ctx, hc); err != nil {
			return fmt.Errorf("%s hook failed: %w", hc.Type, err)
		}
	}
	return nil
}
