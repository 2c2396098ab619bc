package domain

import (
	"sync"
	"time"
)

// QA represents a single asked-question/given-answer pair in the transcript.
type QA struct {
	Question string
	Answer   string
}

// Session holds the state of one simulated interview.
//
// Mutations after creation must happen with the session lock held (see Lock)
// so that concurrent submissions against the same id cannot race on the
// transcript or the done transition.
type Session struct {
	ID              string
	Role            string
	Experience      string
	Style           string
	MaxQuestions    int // 0 = unbounded
	Transcript      []QA
	CurrentQuestion string
	Done            bool
	ResumeSummary   string
	// CandidateName is referenced by the closing and feedback templates but
	// is never populated by any code path. Kept so the templates degrade
	// gracefully if a name-extraction step is added later.
	CandidateName string
	CreatedAt     time.Time
	LastActiveAt  time.Time

	mu sync.Mutex
}

// Lock acquires the session's mutation lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's mutation lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records activity on the session for idle-expiry accounting.
// Caller holds the session lock.
func (s *Session) Touch(now time.Time) {
	s.LastActiveAt = now
}

// LastActive returns the last activity timestamp. It takes the session lock
// so the TTL sweep can read it while a submission is in flight.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.LastActiveAt
}

// RecordAnswer appends the current question and the given answer to the
// transcript. Caller holds the session lock.
func (s *Session) RecordAnswer(answer string) {
	s.Transcript = append(s.Transcript, QA{
		Question: s.CurrentQuestion,
		Answer:   answer,
	})
}

// ReachedQuestionCap reports whether the transcript has reached the
// configured question cap. A cap of 0 means unbounded.
func (s *Session) ReachedQuestionCap() bool {
	return s.MaxQuestions > 0 && len(s.Transcript) >= s.MaxQuestions
}

// Finish marks the session terminal and clears the pending question.
// Caller holds the session lock.
func (s *Session) Finish() {
	s.Done = true
	s.CurrentQuestion = ""
}
