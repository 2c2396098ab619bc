// Package interview drives the turn sequence of a simulated job interview:
// start -> (ask -> answer)* -> end -> feedback.
package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avoronin/interviewd/internal/completion"
	"github.com/avoronin/interviewd/internal/domain"
	"github.com/avoronin/interviewd/internal/store"
	"github.com/google/uuid"
)

const introQuestion = "To begin, can you briefly introduce yourself and walk me through your background " +
	"and the experiences you feel are most relevant to this role?"

// alreadyFinished is the fixed response for submissions against a completed
// session. Idempotent: no state is touched.
const alreadyFinished = "Interview already finished."

const (
	questionTemperature float32 = 0.7
	resumeTemperature   float32 = 0.3
	feedbackTemperature float32 = 0.4
)

// StartParams configures a new interview session.
type StartParams struct {
	Role         string
	CustomRole   string
	Experience   string
	Style        string
	MaxQuestions int // 0 = unbounded
	ResumeText   string
}

// StartResult is returned by Start.
type StartResult struct {
	InterviewID string
	Question    string
}

// SubmitResult is returned by Submit. Feedback is empty until the session
// terminates.
type SubmitResult struct {
	Done         bool
	NextQuestion string
	Feedback     string
}

// Service owns the session state machine.
type Service struct {
	store     store.Store
	completer completion.Completer
}

// NewService creates an interview service backed by the given store and
// completion client.
func NewService(s store.Store, c completion.Completer) *Service {
	return &Service{store: s, completer: c}
}

// Start creates a new session and returns its id together with the fixed
// introductory question. When resume text is supplied it is summarized once,
// up front; the summary is immutable for the rest of the session.
func (s *Service) Start(ctx context.Context, params StartParams) (*StartResult, error) {
	role := resolveRole(params.Role, params.CustomRole)

	resumeSummary := ""
	if strings.TrimSpace(params.ResumeText) != "" {
		system, user := resumeSummaryPrompts(params.ResumeText)
		summary, err := s.completer.Complete(ctx, []completion.Message{
			completion.System(system),
			completion.User(user),
		}, resumeTemperature)
		if err != nil {
			return nil, fmt.Errorf("summarize resume: %w", err)
		}
		resumeSummary = summary
	}

	now := time.Now()
	session := &domain.Session{
		ID:              uuid.NewString(),
		Role:            role,
		Experience:      params.Experience,
		Style:           params.Style,
		MaxQuestions:    params.MaxQuestions,
		CurrentQuestion: introQuestion,
		ResumeSummary:   resumeSummary,
		CreatedAt:       now,
		LastActiveAt:    now,
	}
	s.store.Put(session)

	slog.Info("Interview started",
		"interview_id", session.ID,
		"role", role,
		"experience", params.Experience,
		"style", params.Style,
		"max_questions", params.MaxQuestions,
		"has_resume", resumeSummary != "")

	return &StartResult{InterviewID: session.ID, Question: introQuestion}, nil
}

// Submit processes one answer and either returns the next question or, at
// termination, the closing message plus feedback. The session's own lock is
// held for the full call so concurrent submissions against the same id
// serialize on transcript mutation and the done transition.
//
// Returns store.ErrNotFound for an unknown interview id.
func (s *Service) Submit(ctx context.Context, interviewID, answer string, end bool) (*SubmitResult, error) {
	session, err := s.store.Get(interviewID)
	if err != nil {
		return nil, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Done {
		return &SubmitResult{Done: true, Feedback: alreadyFinished}, nil
	}

	session.Touch(time.Now())

	if answer = strings.TrimSpace(answer); answer != "" && session.CurrentQuestion != "" {
		session.RecordAnswer(answer)
	}

	if end || session.ReachedQuestionCap() {
		feedback := synthesizeFeedback(ctx, s.completer, session)
		closing := closingMessage(session.CandidateName)
		session.Finish()

		slog.Info("Interview finished",
			"interview_id", session.ID,
			"questions_answered", len(session.Transcript),
			"ended_early", end)

		return &SubmitResult{Done: true, NextQuestion: closing, Feedback: feedback}, nil
	}

	// An empty transcript yields an empty last answer, which the heuristic
	// treats as needing a follow-up.
	lastAnswer := ""
	if n := len(session.Transcript); n > 0 {
		lastAnswer = session.Transcript[n-1].Answer
	}
	followup := NeedsFollowup(lastAnswer)

	messages := []completion.Message{
		completion.System(systemPrompt(session.Role, session.Experience, session.Style, session.ResumeSummary)),
		completion.User(nextQuestionPrompt(session.Role, session.ResumeSummary, session.Transcript, followup)),
	}
	nextQuestion, err := s.completer.Complete(ctx, messages, questionTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate next question: %w", err)
	}

	session.CurrentQuestion = nextQuestion
	return &SubmitResult{Done: false, NextQuestion: nextQuestion}, nil
}

func closingMessage(candidateName string) string {
	if candidateName != "" {
		return fmt.Sprintf("Thank you for your time, %s. This concludes the interview.", candidateName)
	}
	return "Thank you for your time. This concludes the interview."
}
