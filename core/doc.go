// Package core provides the foundational domain types shared by the
// agentcore packages:
//
//   - Task and Step (the plan-then-execute unit of work and its lifecycle)
//   - AgentInfo (the listing snapshot handed to transports)
//   - Sentinel errors such as ErrAgentNotFound
//
// The package intentionally keeps behaviour (planning, memory, model access)
// out of scope so that every other package can depend on it without cycles.
package core
