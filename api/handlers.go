package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/chethanchannaveer/agentcore/core"
)

type createAgentRequest struct {
	Name string `json:"name"`
}

type taskRequest struct {
	Task string `json:"task"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type quizRequest struct {
	Topic string `json:"topic"`
	Goals string `json:"goals"`
}

type bookingRequest struct {
	Query       string `json:"query"`
	Budget      string `json:"budget"`
	Destination string `json:"destination"`
	Dates       string `json:"dates"`
}

func (s *Server) handleListAgents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.ListAgents())
}

func (s *Server) handleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var req createAgentRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "Agent name is required")
		return
	}
	writeJSON(w, http.StatusOK, s.core.CreateAgent(req.Name))
}

func (s *Server) handleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	if !s.core.DeleteAgent(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "Agent not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleExecuteTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Task) == "" {
		writeError(w, http.StatusBadRequest, "Task description is required")
		return
	}
	task, err := s.core.ExecuteTask(r.Context(), r.PathValue("id"), req.Task)
	if err != nil {
		s.writeCoreError(w, err, "Failed to execute task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	reply, err := s.core.ChatWithAgent(r.Context(), r.PathValue("id"), req.Message)
	if err != nil {
		s.writeCoreError(w, err, "Failed to chat with agent")
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) handleProviderStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.core.ProviderStatus())
}

func (s *Server) handleGenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}
	prompt, err := renderPrompt(quizPrompt, req)
	if err != nil {
		s.logger.Error("Quiz prompt failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate quiz")
		return
	}
	resp := s.core.Complete(r.Context(), quizInstruction, prompt)
	writeJSON(w, http.StatusOK, map[string]string{"content": resp.Content, "provider": string(resp.Provider)})
}

func (s *Server) handleDetectIntent(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}
	prompt, err := renderPrompt(bookingPrompt, req)
	if err != nil {
		s.logger.Error("Booking prompt failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to detect intent")
		return
	}
	resp := s.core.Complete(r.Context(), bookingInstruction, prompt)
	writeJSON(w, http.StatusOK, map[string]string{"intent": resp.Content, "provider": string(resp.Provider)})
}

func (s *Server) writeCoreError(w http.ResponseWriter, err error, msg string) {
	if errors.Is(err, core.ErrAgentNotFound) {
		writeError(w, http.StatusNotFound, "Agent not found")
		return
	}
	s.logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, msg)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
