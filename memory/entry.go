package memory

import (
	"time"

	"github.com/chethanchannaveer/agentcore/core"
)

// EntryType categorises a memory entry and selects its long-term bucket.
type EntryType string

const (
	// AnyType is the zero EntryType; Context treats it as "no filter".
	AnyType EntryType = ""

	TypeConversation EntryType = "conversation"
	TypeTask         EntryType = "task"
	TypeLearning     EntryType = "learning"
	TypePreference   EntryType = "preference"
)

// entryTypes fixes the bucket order used when scanning the long-term tier.
var entryTypes = []EntryType{TypeConversation, TypeTask, TypeLearning, TypePreference}

// Metadata is the closed set of per-type metadata variants. Concrete types
// implement the unexported marker, so only this package can add variants.
type Metadata interface{ isMetadata() }

// PlanningMetadata annotates the conversation entry written when a task is planned.
type PlanningMetadata struct {
	TaskID       string `json:"taskId"`
	StepsCreated int    `json:"stepsCreated"`
}

func (PlanningMetadata) isMetadata() {}

// TaskMetadata annotates a task entry with the outcome of the run.
type TaskMetadata struct {
	TaskID    string          `json:"taskId"`
	StepCount int             `json:"stepsCount"`
	Status    core.TaskStatus `json:"status"`
}

func (TaskMetadata) isMetadata() {}

// LearningMetadata annotates a learned fact.
type LearningMetadata struct {
	Topic string `json:"topic,omitempty"`
}

func (LearningMetadata) isMetadata() {}

// PreferenceMetadata annotates a user preference.
type PreferenceMetadata struct {
	Key string `json:"key,omitempty"`
}

func (PreferenceMetadata) isMetadata() {}

// Entry is an immutable memory record.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EntryType `json:"type"`
	Content   string    `json:"content"`
	Metadata  Metadata  `json:"metadata,omitempty"`
}
