package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avoronin/interviewd/internal/completion"
	"github.com/avoronin/interviewd/internal/interview"
	"github.com/avoronin/interviewd/internal/store"
	"github.com/go-chi/chi/v5"
)

// InterviewHandler handles interview endpoints.
type InterviewHandler struct {
	svc *interview.Service
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(svc *interview.Service) *InterviewHandler {
	return &InterviewHandler{svc: svc}
}

// RegisterRoutes registers interview routes.
func (h *InterviewHandler) RegisterRoutes(r chi.Router) {
	r.Post("/start-interview", h.StartInterview)
	r.Post("/answer", h.Answer)
}

// StartInterviewRequest is the request body for POST /start-interview.
type StartInterviewRequest struct {
	Role         string `json:"role"`
	CustomRole   string `json:"customRole,omitempty"`
	Experience   string `json:"experience"`
	Style        string `json:"style"`
	MaxQuestions int    `json:"maxQuestions"`
	ResumeText   string `json:"resumeText,omitempty"`
}

// StartInterviewResponse is the response body for POST /start-interview.
type StartInterviewResponse struct {
	InterviewID string `json:"interviewId"`
	Question    string `json:"question"`
}

// AnswerRequest is the request body for POST /answer.
type AnswerRequest struct {
	InterviewID string `json:"interviewId"`
	Answer      string `json:"answer,omitempty"`
	End         bool   `json:"end,omitempty"`
}

// AnswerResponse is the response body for POST /answer.
type AnswerResponse struct {
	Done             bool    `json:"done"`
	NextQuestion     *string `json:"nextQuestion"`
	FeedbackMarkdown *string `json:"feedbackMarkdown"`
}

// StartInterview creates a new interview session and returns the first question.
func (h *InterviewHandler) StartInterview(w http.ResponseWriter, r *http.Request) {
	var req StartInterviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Role) == "" {
		Error(w, http.StatusBadRequest, "role is required")
		return
	}
	if strings.TrimSpace(req.Experience) == "" {
		Error(w, http.StatusBadRequest, "experience is required")
		return
	}
	if strings.TrimSpace(req.Style) == "" {
		Error(w, http.StatusBadRequest, "style is required")
		return
	}
	if req.MaxQuestions < 0 {
		Error(w, http.StatusBadRequest, "maxQuestions must be >= 0")
		return
	}

	result, err := h.svc.Start(r.Context(), interview.StartParams{
		Role:         req.Role,
		CustomRole:   req.CustomRole,
		Experience:   req.Experience,
		Style:        req.Style,
		MaxQuestions: req.MaxQuestions,
		ResumeText:   req.ResumeText,
	})
	if err != nil {
		slog.Error("Failed to start interview", "error", err)
		Error(w, completionStatus(err), "failed to start interview")
		return
	}

	JSON(w, http.StatusOK, StartInterviewResponse{
		InterviewID: result.InterviewID,
		Question:    result.Question,
	})
}

// Answer processes one answer submission and returns either the next
// question or the closing message with feedback.
func (h *InterviewHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req AnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.InterviewID) == "" {
		Error(w, http.StatusBadRequest, "interviewId is required")
		return
	}

	result, err := h.svc.Submit(r.Context(), req.InterviewID, req.Answer, req.End)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			Error(w, http.StatusNotFound, "interview not found")
			return
		}
		slog.Error("Failed to process answer", "error", err, "interview_id", req.InterviewID)
		Error(w, completionStatus(err), "failed to process answer")
		return
	}

	JSON(w, http.StatusOK, AnswerResponse{
		Done:             result.Done,
		NextQuestion:     optional(result.NextQuestion),
		FeedbackMarkdown: optional(result.Feedback),
	})
}

// completionStatus maps completion transport failures to 502 and everything
// else to 500.
func completionStatus(err error) int {
	var transportErr *completion.TransportError
	if errors.As(err, &transportErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
