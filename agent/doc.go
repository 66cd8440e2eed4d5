// Package agent implements the task agent: a stateful worker that turns a
// task description into a short plan, executes the plan step by step through
// a model backend and remembers what it did.
//
// ParseSteps is the pure plan parser; it is exported so the heuristics can be
// tested and reused in isolation. Instruction lets callers replace the chat
// persona with template text or a dynamic provider.
package agent
