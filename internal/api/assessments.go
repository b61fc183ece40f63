package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avenirlabs/scorecard-ai/internal/core"
	"github.com/avenirlabs/scorecard-ai/internal/session"
)

// autoCompleteTimeout bounds a detached auto-complete run.
const autoCompleteTimeout = 10 * time.Minute

type createAssessmentRequest struct {
	Lead core.LeadInfo `json:"lead"`
}

type submitAnswerRequest struct {
	Answer core.AnswerValue `json:"answer"`
}

type autoCompleteRequest struct {
	Persona string `json:"persona"`
}

// assessmentResponse is the session view returned by the assessment
// endpoints. Done flips once questioning has finished.
type assessmentResponse struct {
	SessionID string                    `json:"sessionId"`
	State     session.State             `json:"state"`
	Done      bool                      `json:"done"`
	Question  *core.NextQuestion        `json:"question,omitempty"`
	History   []core.AnswerHistoryEntry `json:"questionAnswerHistory"`
	ReportID  string                    `json:"reportId,omitempty"`
	LastError string                    `json:"lastError,omitempty"`
}

func toAssessmentResponse(sess *session.Session) assessmentResponse {
	resp := assessmentResponse{
		SessionID: sess.ID,
		State:     sess.State,
		Question:  sess.Pending,
		History:   sess.History,
		ReportID:  sess.ReportID,
		LastError: sess.LastError,
	}
	if resp.History == nil {
		resp.History = []core.AnswerHistoryEntry{}
	}
	switch sess.State {
	case session.StateGeneratingReport, session.StateDone:
		resp.Done = true
	}
	return resp
}

// handleCreateAssessment starts a session and returns the first question.
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sess, err := s.controller.Start(r.Context(), req.Lead)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toAssessmentResponse(sess))
}

// handleGetAssessment returns the session state and history.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAssessmentResponse(sess))
}

// handleSubmitAnswer records an answer and returns the next question, or
// done:true once questioning has finished.
func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Answer.IsZero() {
		respondError(w, http.StatusBadRequest, "missing answer")
		return
	}

	sess, err := s.controller.Submit(r.Context(), chi.URLParam(r, "sessionID"), req.Answer)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toAssessmentResponse(sess))
}

// handleGenerateReport generates and persists the session's report.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.controller.GenerateReport(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"reportId": rep.ID,
		"tier":     rep.Tier.String(),
	})
}

// handleStartAutoComplete kicks off a persona auto-complete run detached
// from the request; progress arrives on the SSE stream.
func (s *Server) handleStartAutoComplete(w http.ResponseWriter, r *http.Request) {
	var req autoCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	persona := core.ParseTier(req.Persona)
	if !persona.Known() {
		respondError(w, http.StatusUnprocessableEntity, "persona must be one of Dabbler, Enabler, Leader")
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	// Validate the session up front so the caller gets a synchronous 404.
	if _, err := s.sessions.Get(sessionID); err != nil {
		respondDomainError(w, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), autoCompleteTimeout)
		defer cancel()
		if err := s.controller.AutoComplete(ctx, sessionID, persona); err != nil {
			s.logger.WithSession(sessionID).Error("auto-complete run failed", "error", err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "started",
		"persona": persona.String(),
	})
}

// handleStopAutoComplete requests a running auto-complete loop to halt.
func (s *Server) handleStopAutoComplete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := s.sessions.Get(sessionID); err != nil {
		respondDomainError(w, err)
		return
	}
	s.controller.Stop(sessionID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "stopping"})
}
