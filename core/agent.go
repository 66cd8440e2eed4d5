package core

// AgentStatus is the coarse state reported for an agent in listings.
type AgentStatus string

const (
	// AgentStatusIdle is reported for every agent today; real tracking of
	// active/executing agents is not wired yet.
	AgentStatusIdle AgentStatus = "idle"
	// AgentStatusActive marks an agent engaged in a conversation.
	AgentStatusActive AgentStatus = "active"
	// AgentStatusExecuting marks an agent running a task pipeline.
	AgentStatusExecuting AgentStatus = "executing"
)

// AgentInfo is the snapshot of an agent returned by create and list
// operations. Field names on the wire match what dashboard clients expect.
type AgentInfo struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Status         AgentStatus `json:"status"`
	TasksCompleted int         `json:"tasksCompleted"`
	SuccessRate    int         `json:"successRate"`
}
