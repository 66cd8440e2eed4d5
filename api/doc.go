// Package api exposes an agentcore.Core over HTTP and a WebSocket endpoint.
//
// REST routes live under /api; /ws accepts agent_chat messages and pushes
// agent lifecycle events to every connected client. The server shuts down
// gracefully when the context passed to Start is cancelled.
package api
