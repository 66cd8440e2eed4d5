package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chethanchannaveer/agentcore/core"
	"github.com/chethanchannaveer/agentcore/internal/testutil"
	"github.com/chethanchannaveer/agentcore/llm"
	"github.com/chethanchannaveer/agentcore/memory"
	"github.com/chethanchannaveer/agentcore/model"
	"github.com/chethanchannaveer/agentcore/model/local"
)

var _ Backend = (*llm.Router)(nil)

func sequentialIDs() func(o *Options) {
	var n int
	return func(o *Options) {
		o.NewTaskID = func() string {
			n++
			return fmt.Sprintf("task-%d", n)
		}
	}
}

func TestTaskAgent_ProcessTask(t *testing.T) {
	backend := testutil.NewBackend(model.ProviderOpenAI,
		"1. Research destinations\n2. Book flights and hotel\n3. Plan daily itinerary",
		"Shortlisted Paris", "Booked", "Itinerary ready",
	)
	a := New("agent-1", "Planner", backend, sequentialIDs())

	task := a.ProcessTask(context.Background(), "Plan a trip to Paris")

	require.NotNil(t, task)
	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, core.TaskStatusCompleted, task.Status)
	assert.Equal(t, []core.Step{
		{Description: "Research destinations", Status: core.StepStatusCompleted, Result: "Shortlisted Paris"},
		{Description: "Book flights and hotel", Status: core.StepStatusCompleted, Result: "Booked"},
		{Description: "Plan daily itinerary", Status: core.StepStatusCompleted, Result: "Itinerary ready"},
	}, task.Steps)

	calls := backend.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, model.SystemMessage(planningInstruction), calls[0][0])
	assert.Equal(t, "Break down this task into 3-5 specific steps:\nPlan a trip to Paris", calls[0][1].Content)
	assert.Equal(t, model.SystemMessage(executionInstruction), calls[2][0])
	assert.Equal(t, "Task: Plan a trip to Paris\nExecute this step: Book flights and hotel\nProvide a brief result.", calls[2][1].Content)
}

func TestTaskAgent_ProcessTaskRecordsMemory(t *testing.T) {
	backend := testutil.NewBackend(model.ProviderLocal, "no steps here")
	a := New("agent-1", "Planner", backend, sequentialIDs())

	task := a.ProcessTask(context.Background(), "Organise the offsite")
	assert.Len(t, task.Steps, 3) // generic fallback

	convs := a.Memory().Context(memory.TypeConversation)
	require.Len(t, convs, 1)
	assert.Equal(t, "Planned: Organise the offsite", convs[0].Content)
	assert.Equal(t, memory.PlanningMetadata{TaskID: "task-1", StepsCreated: 3}, convs[0].Metadata)

	tasks := a.Memory().Context(memory.TypeTask)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Organise the offsite", tasks[0].Content)
	assert.Equal(t, memory.TaskMetadata{TaskID: "task-1", StepCount: 3, Status: core.TaskStatusCompleted}, tasks[0].Metadata)
	assert.Equal(t, "Memory: 1 conversations, 1 tasks completed", a.Memory().Summary())
}

func TestTaskAgent_StepResultsAreTruncated(t *testing.T) {
	backend := testutil.NewBackend(model.ProviderOpenAI, "1. Write the long report")
	backend.Respond = func([]model.Message) string { return strings.Repeat("ä", 500) }
	a := New("agent-1", "Writer", backend)

	task := a.ProcessTask(context.Background(), "report")
	require.Len(t, task.Steps, 1)
	assert.Equal(t, core.MaxStepResultLength, len([]rune(task.Steps[0].Result)))
}

func TestTaskAgent_NewTaskReplacesCurrent(t *testing.T) {
	a := New("agent-1", "Planner", testutil.NewBackend(model.ProviderLocal), sequentialIDs())
	assert.Nil(t, a.Status().CurrentTask)

	a.ProcessTask(context.Background(), "first")
	a.ProcessTask(context.Background(), "second")

	st := a.Status()
	require.NotNil(t, st.CurrentTask)
	assert.Equal(t, "task-2", st.CurrentTask.ID)
	assert.Equal(t, "second", st.CurrentTask.Description)
	assert.Len(t, a.Memory().Context(memory.TypeTask), 2)
}

func TestTaskAgent_StatusReturnsCopy(t *testing.T) {
	a := New("agent-1", "Planner", testutil.NewBackend(model.ProviderAnthropic))
	a.ProcessTask(context.Background(), "anything")

	st := a.Status()
	st.CurrentTask.Steps[0].Description = "mutated"
	assert.NotEqual(t, "mutated", a.Status().CurrentTask.Steps[0].Description)
	assert.Equal(t, model.ProviderAnthropic, st.Provider)
	assert.Equal(t, "agent-1", st.ID)
	assert.Equal(t, "Planner", st.Name)
	assert.Equal(t, "Memory: 1 conversations, 1 tasks completed", st.MemorySummary)
}

func TestTaskAgent_ChatUsesPriorTurnsAsContext(t *testing.T) {
	backend := testutil.NewBackend(model.ProviderLocal, "Hi! How can I help?", "You said hello earlier.")
	a := New("agent-1", "Helper", backend)
	ctx := context.Background()

	assert.Equal(t, "Hi! How can I help?", a.Chat(ctx, "hello"))
	assert.Equal(t, "You said hello earlier.", a.Chat(ctx, "what did I say?"))

	calls := backend.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []model.Message{
		model.SystemMessage("You are Helper, an intelligent task automation agent with memory, reasoning, and creativity. You help users accomplish tasks efficiently."),
		model.UserMessage("hello"),
	}, calls[0])
	assert.Equal(t, []model.Message{
		calls[0][0],
		model.UserMessage("User: hello"),
		model.UserMessage("Assistant: Hi! How can I help?"),
		model.UserMessage("what did I say?"),
	}, calls[1])

	assert.Equal(t, []string{
		"User: hello", "Assistant: Hi! How can I help?",
		"User: what did I say?", "Assistant: You said hello earlier.",
	}, a.Memory().ConversationHistory(10))
}

func TestTaskAgent_ChatContextIsBounded(t *testing.T) {
	backend := testutil.NewBackend(model.ProviderLocal)
	a := New("agent-1", "Helper", backend)
	for i := 0; i < 8; i++ {
		a.Chat(context.Background(), fmt.Sprintf("msg %d", i))
	}
	calls := backend.Calls()
	last := calls[len(calls)-1]
	// system + at most five context entries + the new message
	require.Len(t, last, 7)
	assert.Equal(t, model.UserMessage("Assistant: echo: msg 4"), last[1])
	assert.Equal(t, model.UserMessage("msg 7"), last[6])
}

func TestTaskAgent_CustomChatInstruction(t *testing.T) {
	backend := testutil.NewBackend(model.ProviderLocal, "ok", "ok")
	a := New("agent-7", "Coach", backend, func(o *Options) {
		o.ChatInstruction = NewInstructionFromText("{{ .Name | upper }} ({{ .ID }})")
	})
	a.Chat(context.Background(), "hi")
	assert.Equal(t, "COACH (agent-7)", backend.Calls()[0][0].Content)

	b := New("agent-8", "Coach", backend, func(o *Options) {
		o.ChatInstruction = NewInstructionFromFunc(func(InstructionData) (string, error) {
			return "", errors.New("unavailable")
		})
	})
	b.Chat(context.Background(), "hi")
	assert.True(t, strings.HasPrefix(backend.Calls()[1][0].Content, "You are Coach,"))
}

func TestTaskAgent_ConcurrentTasksAreSerialised(t *testing.T) {
	a := New("agent-1", "Planner", testutil.NewBackend(model.ProviderLocal))
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			task := a.ProcessTask(context.Background(), fmt.Sprintf("task %d", i))
			assert.Equal(t, core.TaskStatusCompleted, task.Status)
			_ = a.Status()
		}(i)
	}
	wg.Wait()

	tasks := a.Memory().Context(memory.TypeTask)
	require.Len(t, tasks, 4)
	// Each plan entry is immediately followed by the matching task entry.
	short := a.Memory().ShortTerm()
	for i := 0; i < len(short); i += 2 {
		assert.Equal(t, "Planned: "+short[i+1].Content, short[i].Content)
	}
}

// servedBy records which backend served every call passing through it.
type servedBy struct {
	Backend

	mu     sync.Mutex
	served []model.Provider
}

func (s *servedBy) Chat(ctx context.Context, messages []model.Message, optFns ...func(o *llm.ChatOptions)) llm.Response {
	resp := s.Backend.Chat(ctx, messages, optFns...)
	s.mu.Lock()
	s.served = append(s.served, resp.Provider)
	s.mu.Unlock()
	return resp
}

func TestTaskAgent_OfflineScenario(t *testing.T) {
	router, err := llm.New(func(o *llm.Options) {
		o.Local = local.New(func(o *local.Options) { o.Picker = local.FixedPicker(0) })
	})
	require.NoError(t, err)
	rec := &servedBy{Backend: router}
	a := New("agent-1", "Planner", rec)

	task := a.ProcessTask(context.Background(), "Plan a trip to Paris")
	assert.Equal(t, core.TaskStatusCompleted, task.Status)
	assert.Equal(t, []string{
		"Understand the requirements and constraints",
		"Execute the main task components",
		"Verify results and make improvements",
	}, descriptions(task.Steps))
	for _, s := range task.Steps {
		assert.Equal(t, core.StepStatusCompleted, s.Status)
		assert.NotEmpty(t, s.Result)
		assert.LessOrEqual(t, len([]rune(s.Result)), core.MaxStepResultLength)
	}
	assert.Equal(t, model.ProviderLocal, a.Status().Provider)

	// one planning call plus one call per step
	require.Len(t, rec.served, 1+len(task.Steps))
	for i, p := range rec.served {
		assert.Equal(t, model.ProviderLocal, p, "call %d", i)
	}
}
