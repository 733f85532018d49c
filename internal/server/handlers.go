package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Conversation API

type transcribeRequest struct {
	Input          string `json:"input"`
	ConversationID string `json:"conversation_id"`
}

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Input == "" {
		respondError(w, http.StatusBadRequest, "No input provided.")
		return
	}

	conv := s.conversation(req.ConversationID)
	conv.mu.Lock()
	reply := conv.sess.SubmitInput(r.Context(), req.Input)
	conv.mu.Unlock()

	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConversationID string `json:"conversation_id"`
	}
	// Body is optional; an empty or absent body targets the default conversation.
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	conv := s.conversation(req.ConversationID)
	conv.mu.Lock()
	reply := conv.sess.ConfirmSchedule(r.Context())
	conv.mu.Unlock()

	respondJSON(w, http.StatusOK, reply)
}

// Health Check

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		respondError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	status := map[string]interface{}{
		"status": "healthy",
		"gemini": "not configured",
		"gcal":   "disconnected",
	}

	if c, ok := s.generator.(interface{ IsConfigured() bool }); ok && c.IsConfigured() {
		status["gemini"] = "configured"
	}

	if s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		status["gcal"] = "connected"
	}

	respondJSON(w, http.StatusOK, status)
}

// Meetings API

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := s.db.ListMeetings()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, meetings)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	meeting, err := s.db.GetMeetingByEventID(r.PathValue("eventId"))
	if err != nil {
		respondError(w, http.StatusNotFound, "meeting not found")
		return
	}

	respondJSON(w, http.StatusOK, meeting)
}

// Google Calendar API

func (s *Server) handleGCalStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"connected": false,
		"message":   "Not configured",
	}

	if s.gcalClient == nil {
		status["message"] = "Google Calendar client not initialized. Check credentials.json."
		respondJSON(w, http.StatusOK, status)
		return
	}

	if s.gcalClient.IsAuthenticated() {
		status["connected"] = true
		status["message"] = "Connected"
	} else {
		status["message"] = "Not authenticated. Click Connect to authorize."
	}

	respondJSON(w, http.StatusOK, status)
}

func (s *Server) handleGCalConnect(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not configured. Check credentials.json.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"auth_url": s.gcalClient.GetAuthURL(),
		"message":  "Open this URL to authorize Google Calendar access",
	})
}

func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not configured")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "No authorization code received")
		return
	}

	if err := s.gcalClient.ExchangeCode(r.Context(), code); err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to exchange code: %v", err))
		return
	}

	fmt.Println("Google Calendar connected successfully!")
	respondJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
