package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chethanchannaveer/agentcore"
	"github.com/chethanchannaveer/agentcore/logging"
	"github.com/chethanchannaveer/agentcore/registry"
)

// Options configures a Server.
type Options struct {
	Logger            logging.Logger
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
	// CheckOrigin guards WebSocket upgrades; every origin is accepted when nil.
	CheckOrigin func(r *http.Request) bool
}

// Server serves the REST and WebSocket API.
type Server struct {
	addr     string
	core     *agentcore.Core
	opts     Options
	logger   logging.Logger
	upgrader websocket.Upgrader
	hub      *hub
}

// NewServer builds a Server for c listening on addr.
func NewServer(addr string, c *agentcore.Core, optFns ...func(o *Options)) *Server {
	opts := Options{
		Logger:            logging.NoOpLogger{},
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}

	s := &Server{
		addr:   addr,
		core:   c,
		opts:   opts,
		logger: opts.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
		hub: newHub(opts.Logger),
	}
	s.registerHooks(c.Registry().Hooks())
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/agents", s.handleListAgents)
	mux.HandleFunc("POST /api/agents", s.handleCreateAgent)
	mux.HandleFunc("DELETE /api/agents/{id}", s.handleDeleteAgent)
	mux.HandleFunc("POST /api/agents/{id}/task", s.handleExecuteTask)
	mux.HandleFunc("POST /api/agents/{id}/chat", s.handleChat)
	mux.HandleFunc("GET /api/system/llm-provider", s.handleProviderStatus)
	mux.HandleFunc("POST /api/learning/generate-quiz", s.handleGenerateQuiz)
	mux.HandleFunc("POST /api/booking/detect-intent", s.handleDetectIntent)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           withContext(ctx, s.Handler()),
		ReadHeaderTimeout: s.opts.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	s.logger.Info("API server listening", "address", ln.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		s.hub.closeAll()
		_ = server.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerHooks(hooks *registry.HookManager) {
	hooks.Register(registry.NewFunctionHook(registry.HookAgentCreated, func(_ context.Context, hc *registry.HookContext) error {
		s.hub.broadcast(event{Type: eventAgentCreated, AgentID: hc.Agent.ID, Agent: &hc.Agent})
		return nil
	}))
	hooks.Register(registry.NewFunctionHook(registry.HookAgentDeleted, func(_ context.Context, hc *registry.HookContext) error {
		s.hub.broadcast(event{Type: eventAgentDeleted, AgentID: hc.Agent.ID})
		return nil
	}))
	hooks.Register(registry.NewFunctionHook(registry.HookAfterTask, func(_ context.Context, hc *registry.HookContext) error {
		s.hub.broadcast(event{Type: eventTaskCompleted, AgentID: hc.Agent.ID, Task: hc.Task})
		return nil
	}))
}

// withContext rejects requests once the root context is done.
func withContext(ctx context.Context, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-ctx.Done():
			writeError(w, http.StatusServiceUnavailable, "server is shutting down")
			return
		default:
		}
		handler.ServeHTTP(w, r)
	})
}
