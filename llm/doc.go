// Package llm implements the model access layer: a Router that picks a
// preferred backend from the configured credentials and dispatches chat
// requests to it.
//
// Selection happens once, at construction:
//
//	both keys      -> anthropic
//	openai key     -> openai
//	no keys        -> local
//
// Options.Preferred may override the rule with any configured backend.
// Failures of external backends are absorbed: the Router logs a warning,
// records the fallback on the active span and counter, and answers with the
// offline simulator instead.
package llm
