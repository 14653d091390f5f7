// Package server exposes the chat and session-admin surfaces over HTTP. It
// is a thin adapter: request decoding, session ID minting, and JSON shaping
// around the orchestrator and session store.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"leavedesk/internal/chat"
	"leavedesk/internal/logging"
	"leavedesk/internal/session"
)

// Handler serves the chat API.
type Handler struct {
	orch *chat.Orchestrator
}

// NewHandler creates a handler over the orchestrator.
func NewHandler(orch *chat.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Router builds the HTTP route table.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Post("/api/chat", h.handleChat)
	r.Get("/api/sessions", h.handleListSessions)
	r.Delete("/api/sessions", h.handleClearAllSessions)
	r.Delete("/api/sessions/{id}", h.handleClearSession)

	return r
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// chatRequest is the inbound turn payload. UserInfo carries explicit,
// authoritative field values (e.g. from a profile form).
type chatRequest struct {
	Message   string            `json:"message"`
	SessionID string            `json:"session_id"`
	UserInfo  map[string]string `json:"user_info"`
}

// chatResponse augments the turn result with store-wide counters.
type chatResponse struct {
	chat.TurnResult
	TotalSessions int `json:"total_sessions"`
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		Error(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	explicit := session.Fields{}
	if req.UserInfo != nil {
		raw := make(map[string]interface{}, len(req.UserInfo))
		for k, v := range req.UserInfo {
			raw[k] = v
		}
		explicit = session.FieldsFromMap(raw)
	}

	result := h.orch.Invoke(r.Context(), req.SessionID, req.Message, explicit)

	logging.Server("chat turn session=%s status=%s", req.SessionID, result.Status)
	status := http.StatusOK
	if result.Status != "success" {
		status = http.StatusBadGateway
	}
	JSON(w, status, chatResponse{
		TurnResult:    result,
		TotalSessions: h.orch.Store().Count(),
	})
}

// sessionSummary is the admin view of one session.
type sessionSummary struct {
	SessionID   string         `json:"session_id"`
	Info        session.Fields `json:"info"`
	Turns       int            `json:"turns"`
	MissingInfo []string       `json:"missing_info"`
}

func (h *Handler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions := h.orch.Store().List()
	summaries := make([]sessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, sessionSummary{
			SessionID:   s.ID(),
			Info:        s.Info(),
			Turns:       s.HistoryLen(),
			MissingInfo: s.MissingInfo(),
		})
	}
	JSON(w, http.StatusOK, map[string]interface{}{
		"sessions":       summaries,
		"total_sessions": len(summaries),
	})
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	found := h.orch.Store().Get(id) != nil
	h.orch.Store().Clear(id)

	// Clearing an unknown session is reported, not failed.
	status := "cleared"
	if !found {
		status = "not found"
	}
	JSON(w, http.StatusOK, map[string]string{
		"session_id": id,
		"status":     status,
	})
}

func (h *Handler) handleClearAllSessions(w http.ResponseWriter, r *http.Request) {
	n := h.orch.Store().ClearAll()
	JSON(w, http.StatusOK, map[string]interface{}{
		"status":  "cleared",
		"dropped": n,
	})
}
