// Package model defines the provider-agnostic abstractions for interacting
// with language models inside agentcore.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Keep request/response shapes minimal (role-tagged text turns)
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic, the offline simulator in model/local)
// implement the Model interface so the router in package llm stays decoupled
// from vendor SDKs.
package model
