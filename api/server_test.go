package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chethanchannaveer/agentcore"
	"github.com/chethanchannaveer/agentcore/core"
	"github.com/chethanchannaveer/agentcore/llm"
	"github.com/chethanchannaveer/agentcore/model/local"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	c, err := agentcore.New(func(o *agentcore.Options) {
		o.RouterOptions = append(o.RouterOptions, func(o *llm.Options) {
			o.Local = local.New(func(o *local.Options) { o.Picker = local.FixedPicker(0) })
		})
	})
	require.NoError(t, err)
	s := NewServer("127.0.0.1:0", c)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doJSON(t *testing.T, method, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestServer_AgentLifecycle(t *testing.T) {
	_, ts := newTestServer(t)

	var created core.AgentInfo
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/agents", map[string]string{"name": "Helper"}, &created))
	assert.Equal(t, "Helper", created.Name)
	assert.Equal(t, 100, created.SuccessRate)

	var list []core.AgentInfo
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/agents", nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	var deleted map[string]bool
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodDelete, ts.URL+"/api/agents/"+created.ID, nil, &deleted))
	assert.True(t, deleted["success"])

	var errBody map[string]string
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodDelete, ts.URL+"/api/agents/"+created.ID, nil, &errBody))
	assert.Equal(t, "Agent not found", errBody["error"])
}

func TestServer_Validation(t *testing.T) {
	_, ts := newTestServer(t)
	var errBody map[string]string

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/agents", map[string]string{"name": " "}, &errBody))
	assert.Equal(t, "Agent name is required", errBody["error"])

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/agents/x/task", map[string]string{}, &errBody))
	assert.Equal(t, "Task description is required", errBody["error"])

	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/agents/x/chat", map[string]string{}, &errBody))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/learning/generate-quiz", map[string]string{}, &errBody))
	assert.Equal(t, http.StatusBadRequest, doJSON(t, http.MethodPost, ts.URL+"/api/booking/detect-intent", map[string]string{}, &errBody))

	resp, err := http.Post(ts.URL+"/api/agents", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_TaskAndChat(t *testing.T) {
	_, ts := newTestServer(t)
	var created core.AgentInfo
	doJSON(t, http.MethodPost, ts.URL+"/api/agents", map[string]string{"name": "Planner"}, &created)

	var task core.Task
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/agents/"+created.ID+"/task", map[string]string{"task": "Plan a trip to Paris"}, &task))
	assert.Equal(t, core.TaskStatusCompleted, task.Status)
	assert.Len(t, task.Steps, 3)

	var reply agentcore.ChatReply
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/agents/"+created.ID+"/chat", map[string]string{"message": "hello"}, &reply))
	assert.NotEmpty(t, reply.Response)
	assert.Equal(t, "local", string(reply.Provider))

	var errBody map[string]string
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, ts.URL+"/api/agents/agent-missing/task", map[string]string{"task": "x"}, &errBody))
	assert.Equal(t, http.StatusNotFound, doJSON(t, http.MethodPost, ts.URL+"/api/agents/agent-missing/chat", map[string]string{"message": "x"}, &errBody))

	var list []core.AgentInfo
	doJSON(t, http.MethodGet, ts.URL+"/api/agents", nil, &list)
	assert.Equal(t, 1, list[0].TasksCompleted)
}

func TestServer_ProviderQuizAndBooking(t *testing.T) {
	_, ts := newTestServer(t)

	var status llm.ProviderStatus
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodGet, ts.URL+"/api/system/llm-provider", nil, &status))
	assert.Equal(t, llm.ProviderStatus{Provider: "local", HasRealLLM: false}, status)

	var quiz map[string]string
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/learning/generate-quiz", map[string]string{"topic": "python"}, &quiz))
	assert.NotEmpty(t, quiz["content"])
	assert.Equal(t, "local", quiz["provider"])

	var intent map[string]string
	require.Equal(t, http.StatusOK, doJSON(t, http.MethodPost, ts.URL+"/api/booking/detect-intent", map[string]string{"query": "cheap trip", "budget": "500"}, &intent))
	assert.Contains(t, intent["intent"], "flights")
	assert.Equal(t, "local", intent["provider"])
}

func TestPrompts(t *testing.T) {
	out, err := renderPrompt(quizPrompt, quizRequest{Topic: " Go ", Goals: "concurrency"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Generate 3 multiple-choice quiz questions about Go. Focus on: concurrency\n"))

	out, err = renderPrompt(quizPrompt, quizRequest{Topic: "Go"})
	require.NoError(t, err)
	assert.NotContains(t, out, "Focus on")

	out, err = renderPrompt(bookingPrompt, bookingRequest{Query: "hotel in Rome", Dates: "May"})
	require.NoError(t, err)
	assert.Contains(t, out, "Analyze this booking request:\nhotel in Rome\n")
	assert.Contains(t, out, "Dates: May")
	assert.NotContains(t, out, "Budget:")
}

func dialWS(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestServer_WebSocketChat(t *testing.T) {
	s, ts := newTestServer(t)
	info := s.core.CreateAgent("Helper")
	conn := dialWS(t, ts)

	require.NoError(t, conn.WriteJSON(inbound{Type: "agent_chat", AgentID: info.ID, Message: "hello"}))
	var reply outbound
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, "agent_response", reply.Type)
	assert.NotEmpty(t, reply.Content)

	require.NoError(t, conn.WriteJSON(inbound{Type: "agent_chat", AgentID: "agent-missing", Message: "hello"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, outbound{Type: "error", Content: "Agent not found"}, reply)
}

func TestServer_WebSocketBroadcastsTaskEvents(t *testing.T) {
	s, ts := newTestServer(t)
	conn := dialWS(t, ts)

	// Wait until the hub has registered the connection.
	require.Eventually(t, func() bool {
		s.hub.mu.RLock()
		defer s.hub.mu.RUnlock()
		return len(s.hub.clients) == 1
	}, 2*time.Second, 10*time.Millisecond)

	info := s.core.CreateAgent("Worker")
	var ev event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "agent_created", ev.Type)
	assert.Equal(t, info.ID, ev.AgentID)

	_, err := s.core.ExecuteTask(context.Background(), info.ID, "write a report")
	require.NoError(t, err)
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "task_completed", ev.Type)
	require.NotNil(t, ev.Task)
	assert.Equal(t, core.TaskStatusCompleted, ev.Task.Status)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	c, err := agentcore.New()
	require.NoError(t, err)
	s := NewServer("127.0.0.1:0", c)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/api/agents")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
