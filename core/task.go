package core

import "time"

// TaskStatus represents the lifecycle state of a Task.
type TaskStatus string

const (
	TaskStatusPlanning  TaskStatus = "planning"
	TaskStatusExecuting TaskStatus = "executing"
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed is declared for clients but no code path produces it yet.
	TaskStatusFailed TaskStatus = "failed"
)

// StepStatus represents the lifecycle state of a single Step.
type StepStatus string

const (
	StepStatusPending    StepStatus = "pending"
	StepStatusInProgress StepStatus = "in_progress"
	StepStatusCompleted  StepStatus = "completed"
	StepStatusFailed     StepStatus = "failed"
)

// MaxStepResultLength bounds Step.Result, counted in runes.
const MaxStepResultLength = 200

// Step is one atomic unit of a Task's plan.
type Step struct {
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
	Result      string     `json:"result,omitempty"`
}

// Task is a decomposed unit of work. Steps are fixed once planning finishes;
// only their status and result change afterwards.
type Task struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Steps       []Step     `json:"steps"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// NewTask returns a task in the planning state with no steps.
func NewTask(id, description string, createdAt time.Time) *Task {
	return &Task{
		ID:          id,
		Description: description,
		Steps:       []Step{},
		Status:      TaskStatusPlanning,
		CreatedAt:   createdAt,
	}
}

// Clone returns a deep copy safe to hand to readers while the original keeps
// being mutated.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Steps = make([]Step, len(t.Steps))
	copy(cp.Steps, t.Steps)
	return &cp
}

// CompletedSteps counts steps in the completed state.
func (t *Task) CompletedSteps() int {
	n := 0
	for _, s := range t.Steps {
		if s.Status == StepStatusCompleted {
			n++
		}
	}
	return n
}
