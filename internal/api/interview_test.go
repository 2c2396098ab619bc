package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/avoronin/interviewd/internal/completion"
	"github.com/avoronin/interviewd/internal/interview"
	"github.com/avoronin/interviewd/internal/store"
	"github.com/go-chi/chi/v5"
)

type fakeCompleter struct {
	mu  sync.Mutex
	err error
}

func (f *fakeCompleter) Complete(context.Context, []completion.Message, float32) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	return "Can you describe a production incident you handled?", nil
}

func newTestRouter(completer completion.Completer) chi.Router {
	svc := interview.NewService(store.NewMemoryStore(), completer)
	r := chi.NewRouter()
	NewHealthHandler().RegisterHealth(r)
	NewInterviewHandler(svc).RegisterRoutes(r)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&fakeCompleter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := decodeBody[map[string]string](t, rr)
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body)
	}
}

func TestStartInterviewValidation(t *testing.T) {
	r := newTestRouter(&fakeCompleter{})

	cases := []struct {
		name string
		body StartInterviewRequest
	}{
		{"missing role", StartInterviewRequest{Experience: "Mid", Style: "Strict"}},
		{"missing experience", StartInterviewRequest{Role: "Backend Engineer", Style: "Strict"}},
		{"missing style", StartInterviewRequest{Role: "Backend Engineer", Experience: "Mid"}},
		{"negative cap", StartInterviewRequest{Role: "Backend Engineer", Experience: "Mid", Style: "Strict", MaxQuestions: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, r, "/start-interview", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rr.Code)
			}
		})
	}
}

func TestStartInterviewMalformedBody(t *testing.T) {
	r := newTestRouter(&fakeCompleter{})

	req := httptest.NewRequest(http.MethodPost, "/start-interview", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestAnswerUnknownInterview(t *testing.T) {
	r := newTestRouter(&fakeCompleter{})

	rr := postJSON(t, r, "/answer", AnswerRequest{InterviewID: "nope", Answer: "hello"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestInterviewEndToEnd(t *testing.T) {
	r := newTestRouter(&fakeCompleter{})

	rr := postJSON(t, r, "/start-interview", StartInterviewRequest{
		Role:         "Backend Engineer",
		Experience:   "Mid",
		Style:        "Strict",
		MaxQuestions: 2,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("start: expected status 200, got %d (%s)", rr.Code, rr.Body.String())
	}
	start := decodeBody[StartInterviewResponse](t, rr)
	if start.InterviewID == "" {
		t.Fatal("expected a fresh interview id")
	}
	if start.Question == "" {
		t.Fatal("expected a non-empty first question")
	}

	answer := "I spent six years building Go services for payments with a focus on reliability and incident response"

	rr = postJSON(t, r, "/answer", AnswerRequest{InterviewID: start.InterviewID, Answer: answer})
	if rr.Code != http.StatusOK {
		t.Fatalf("first answer: expected status 200, got %d", rr.Code)
	}
	first := decodeBody[AnswerResponse](t, rr)
	if first.Done {
		t.Fatal("interview ended after the first answer")
	}
	if first.NextQuestion == nil || *first.NextQuestion == "" {
		t.Fatal("expected a generated next question")
	}
	if first.FeedbackMarkdown != nil {
		t.Error("feedback must be null mid-interview")
	}

	rr = postJSON(t, r, "/answer", AnswerRequest{InterviewID: start.InterviewID, Answer: answer})
	if rr.Code != http.StatusOK {
		t.Fatalf("second answer: expected status 200, got %d", rr.Code)
	}
	final := decodeBody[AnswerResponse](t, rr)
	if !final.Done {
		t.Fatal("interview must end once the question cap is reached")
	}
	if final.NextQuestion == nil || !strings.Contains(*final.NextQuestion, "concludes the interview") {
		t.Errorf("expected a closing message, got %v", final.NextQuestion)
	}
	if final.FeedbackMarkdown == nil || *final.FeedbackMarkdown == "" {
		t.Fatal("expected non-null feedback at termination")
	}

	// Submitting again is idempotent.
	rr = postJSON(t, r, "/answer", AnswerRequest{InterviewID: start.InterviewID, Answer: "one more"})
	if rr.Code != http.StatusOK {
		t.Fatalf("repeat answer: expected status 200, got %d", rr.Code)
	}
	repeat := decodeBody[AnswerResponse](t, rr)
	if !repeat.Done {
		t.Error("done interview must stay done")
	}
	if repeat.FeedbackMarkdown == nil || *repeat.FeedbackMarkdown != "Interview already finished." {
		t.Errorf("expected the fixed already-finished response, got %v", repeat.FeedbackMarkdown)
	}
}

func TestAnswerEndsEarly(t *testing.T) {
	r := newTestRouter(&fakeCompleter{})

	rr := postJSON(t, r, "/start-interview", StartInterviewRequest{
		Role: "Backend Engineer", Experience: "Mid", Style: "Supportive", MaxQuestions: 10,
	})
	start := decodeBody[StartInterviewResponse](t, rr)

	rr = postJSON(t, r, "/answer", AnswerRequest{InterviewID: start.InterviewID, End: true})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	resp := decodeBody[AnswerResponse](t, rr)
	if !resp.Done {
		t.Fatal("end=true must terminate the interview")
	}
	if resp.NextQuestion == nil || !strings.Contains(*resp.NextQuestion, "concludes the interview") {
		t.Errorf("expected a closing message, got %v", resp.NextQuestion)
	}
}

func TestAnswerTransportFailureIsBadGateway(t *testing.T) {
	completer := &fakeCompleter{}
	r := newTestRouter(completer)

	rr := postJSON(t, r, "/start-interview", StartInterviewRequest{
		Role: "Backend Engineer", Experience: "Mid", Style: "Strict", MaxQuestions: 5,
	})
	start := decodeBody[StartInterviewResponse](t, rr)

	completer.mu.Lock()
	completer.err = &completion.TransportError{Err: errors.New("upstream down")}
	completer.mu.Unlock()

	rr = postJSON(t, r, "/answer", AnswerRequest{
		InterviewID: start.InterviewID,
		Answer:      "A long answer about distributed systems experience across several production teams and projects overall",
	})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", rr.Code)
	}
}
