package testutil

import (
	"context"
	"sync"

	"github.com/chethanchannaveer/agentcore/llm"
	"github.com/chethanchannaveer/agentcore/model"
)

// Backend is a scripted chat backend. Queued replies are served in order;
// once they run out, Respond answers (or, when nil, an echo of the last
// message).
type Backend struct {
	Respond func(messages []model.Message) string

	mu       sync.Mutex
	provider model.Provider
	replies  []string
	calls    [][]model.Message
}

// NewBackend returns a Backend reporting provider and serving replies.
func NewBackend(provider model.Provider, replies ...string) *Backend {
	return &Backend{provider: provider, replies: replies}
}

// Queue appends replies.
func (b *Backend) Queue(replies ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies = append(b.replies, replies...)
}

// Chat records the call and returns the next reply.
func (b *Backend) Chat(_ context.Context, messages []model.Message, _ ...func(o *llm.ChatOptions)) llm.Response {
	b.mu.Lock()
	cp := make([]model.Message, len(messages))
	copy(cp, messages)
	b.calls = append(b.calls, cp)
	var text string
	queued := len(b.replies) > 0
	if queued {
		text = b.replies[0]
		b.replies = b.replies[1:]
	}
	b.mu.Unlock()

	if !queued {
		switch {
		case b.Respond != nil:
			text = b.Respond(messages)
		case len(messages) > 0:
			text = "echo: " + messages[len(messages)-1].Content
		}
	}
	return llm.Response{Content: text, Provider: b.provider}
}

// Provider implements the agent backend contract.
func (b *Backend) Provider() model.Provider { return b.provider }

// Calls returns copies of every message list received so far.
func (b *Backend) Calls() [][]model.Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]model.Message, len(b.calls))
	copy(out, b.calls)
	return out
}
