package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chethanchannaveer/agentcore/core"
	"github.com/chethanchannaveer/agentcore/llm"
	"github.com/chethanchannaveer/agentcore/logging"
	"github.com/chethanchannaveer/agentcore/memory"
	"github.com/chethanchannaveer/agentcore/model"
)

// DefaultChatInstruction is the persona template used for chat turns.
const DefaultChatInstruction = "You are {{.Name}}, an intelligent task automation agent with memory, reasoning, and creativity. You help users accomplish tasks efficiently."

const (
	planningInstruction  = "You are an intelligent task automation agent. Break down tasks into clear, actionable steps. Be creative and thorough."
	executionInstruction = "You are executing a task automation step. Be creative and provide detailed results."

	// chatContextSize is how many earlier conversation entries accompany a chat turn.
	chatContextSize = 5
)

// Backend is the model access layer as seen by an agent. *llm.Router
// satisfies it.
type Backend interface {
	Chat(ctx context.Context, messages []model.Message, optFns ...func(o *llm.ChatOptions)) llm.Response
	Provider() model.Provider
}

// Options configures a TaskAgent.
type Options struct {
	Logger        logging.Logger
	MemoryOptions []func(o *memory.Options)
	// NewTaskID generates task ids; defaults to "task-<uuid>".
	NewTaskID func() string
	Clock     func() time.Time
	// ChatInstruction overrides DefaultChatInstruction.
	ChatInstruction Instruction
}

// Status is a read-only snapshot of an agent.
type Status struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	CurrentTask   *core.Task     `json:"currentTask"`
	MemorySummary string         `json:"memorySummary"`
	Provider      model.Provider `json:"provider"`
}

// TaskAgent plans a task into steps and executes them one by one through
// the Backend, recording what it did in its own memory.
//
// ProcessTask calls on the same agent are serialised; chat turns are
// serialised among themselves. Status may be read at any time.
type TaskAgent struct {
	id      string
	name    string
	backend Backend
	memory  *memory.Store
	logger  logging.Logger
	newID   func() string
	clock   func() time.Time
	persona Instruction

	runMu  sync.Mutex
	chatMu sync.Mutex

	stateMu     sync.RWMutex
	currentTask *core.Task
}

// New creates a TaskAgent with an empty memory.
func New(id, name string, backend Backend, optFns ...func(o *Options)) *TaskAgent {
	opts := Options{
		Logger:    logging.NoOpLogger{},
		NewTaskID: func() string { return "task-" + uuid.NewString() },
		Clock:     time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ChatInstruction.IsZero() {
		opts.ChatInstruction = NewInstructionFromText(DefaultChatInstruction)
	}
	return &TaskAgent{
		id:      id,
		name:    name,
		backend: backend,
		memory:  memory.NewStore(opts.MemoryOptions...),
		logger:  opts.Logger,
		newID:   opts.NewTaskID,
		clock:   opts.Clock,
		persona: opts.ChatInstruction,
	}
}

// ID returns the agent id.
func (a *TaskAgent) ID() string { return a.id }

// Name returns the display name.
func (a *TaskAgent) Name() string { return a.name }

// Memory exposes the agent's memory store.
func (a *TaskAgent) Memory() *memory.Store { return a.memory }

// ProcessTask replaces the current task with a new one for description,
// plans it, executes every step and returns the finished task.
func (a *TaskAgent) ProcessTask(ctx context.Context, description string) *core.Task {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	start := a.clock()
	task := core.NewTask(a.newID(), description, start)
	a.stateMu.Lock()
	a.currentTask = task
	a.stateMu.Unlock()

	a.logger.Info("Processing task", "agent_id", a.id, "task_id", task.ID)
	a.plan(ctx, task)
	a.execute(ctx, task)

	a.stateMu.RLock()
	result := task.Clone()
	a.stateMu.RUnlock()

	a.memory.AddTask(description, &memory.TaskMetadata{
		TaskID:    result.ID,
		StepCount: len(result.Steps),
		Status:    result.Status,
	})

	if tl, ok := a.logger.(logging.TaskLogger); ok {
		tl.LogTaskExecution(result.ID, len(result.Steps), a.clock().Sub(start), string(result.Status))
	}
	return result
}

func (a *TaskAgent) plan(ctx context.Context, task *core.Task) {
	resp := a.backend.Chat(ctx, []model.Message{
		model.SystemMessage(planningInstruction),
		model.UserMessage("Break down this task into 3-5 specific steps:\n" + task.Description),
	})
	steps := ParseSteps(resp.Content)

	a.stateMu.Lock()
	task.Steps = steps
	a.stateMu.Unlock()

	a.logger.Debug("Plan created", "agent_id", a.id, "task_id", task.ID, "steps", len(steps), "provider", string(resp.Provider))
	a.memory.AddConversation("Planned: "+task.Description, &memory.PlanningMetadata{
		TaskID:       task.ID,
		StepsCreated: len(steps),
	})
}

func (a *TaskAgent) execute(ctx context.Context, task *core.Task) {
	a.stateMu.Lock()
	task.Status = core.TaskStatusExecuting
	a.stateMu.Unlock()

	for i := range task.Steps {
		a.stateMu.Lock()
		task.Steps[i].Status = core.StepStatusInProgress
		desc := task.Steps[i].Description
		a.stateMu.Unlock()

		resp := a.backend.Chat(ctx, []model.Message{
			model.SystemMessage(executionInstruction),
			model.UserMessage(fmt.Sprintf("Task: %s\nExecute this step: %s\nProvide a brief result.", task.Description, desc)),
		})

		a.stateMu.Lock()
		task.Steps[i].Result = truncate(resp.Content, core.MaxStepResultLength)
		task.Steps[i].Status = core.StepStatusCompleted
		a.stateMu.Unlock()

		a.logger.Debug("Completed step", "agent_id", a.id, "task_id", task.ID, "step", i+1, "provider", string(resp.Provider))
	}

	a.stateMu.Lock()
	task.Status = core.TaskStatusCompleted
	a.stateMu.Unlock()
}

// Chat answers message using up to five earlier conversation entries as
// context and records both sides of the exchange in memory.
func (a *TaskAgent) Chat(ctx context.Context, message string) string {
	a.chatMu.Lock()
	defer a.chatMu.Unlock()

	a.memory.AddConversation("User: "+message, nil)
	history := a.memory.ConversationHistory(chatContextSize + 1)
	if len(history) > 0 {
		history = history[:len(history)-1] // drop the turn just added
	}

	messages := make([]model.Message, 0, len(history)+2)
	messages = append(messages, model.SystemMessage(a.chatInstruction()))
	for _, h := range history {
		messages = append(messages, model.UserMessage(h))
	}
	messages = append(messages, model.UserMessage(message))

	resp := a.backend.Chat(ctx, messages)
	a.memory.AddConversation("Assistant: "+resp.Content, nil)
	a.logger.Debug("Chat reply", "agent_id", a.id, "provider", string(resp.Provider))
	return resp.Content
}

// Status returns a snapshot of the agent.
func (a *TaskAgent) Status() Status {
	a.stateMu.RLock()
	current := a.currentTask.Clone()
	a.stateMu.RUnlock()
	return Status{
		ID:            a.id,
		Name:          a.name,
		CurrentTask:   current,
		MemorySummary: a.memory.Summary(),
		Provider:      a.backend.Provider(),
	}
}

func (a *TaskAgent) chatInstruction() string {
	data := InstructionData{ID: a.id, Name: a.name, MemorySummary: a.memory.Summary()}
	text, err := a.persona.Resolve(data)
	if err != nil {
		a.logger.Warn("Chat instruction failed, using default", "agent_id", a.id, "error", err)
		text, _ = NewInstructionFromText(DefaultChatInstruction).Resolve(data)
	}
	return text
}
