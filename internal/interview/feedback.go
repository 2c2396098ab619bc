package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/avoronin/interviewd/internal/completion"
	"github.com/avoronin/interviewd/internal/domain"
)

// FeedbackFailurePrefix prefixes the degraded feedback text returned when
// the completion call fails. Session termination must still report a closing
// state, so feedback synthesis never returns an error.
const FeedbackFailurePrefix = "Feedback generation failed:"

func feedbackSystemPrompt(s *domain.Session) string {
	return strings.TrimSpace(fmt.Sprintf(`
You are a REAL human interviewer conducting a professional job interview.
Your tone must be natural, concise, human-like, and role-appropriate.

#############################################
###  HARD BANNED PHRASES (DO NOT USE EVER) ###
#############################################

Under NO circumstances should you use ANY sentences like:

- "This will help me understand..."
- "This might help me understand..."
- "This helps us evaluate..."
- "Let's explore that together..."
- "I want to know..."
- "This will give me insight..."
- "This might help..."
- "Let's break it down..."

If you accidentally produce a sentence that resembles ANY of these patterns,
IMMEDIATELY rewrite the line in a clean, human way WITHOUT explaining anything.

#############################################

CANDIDATE DETAILS:
- Name: %s
- Role: %s
- Experience: %s
- Style: %s
- Resume: %s

GREETING:
- Start with a simple greeting using the candidate's name (if available).
- Example: "Hi %s, nice to meet you. Let's begin."

TONE RULES:
Supportive -> warm, encouraging, light fillers (Alright, Got it, Sounds good)
Strict -> crisp, minimal fillers, professional, firm

IMPORTANT:
Only GENERATE POST-INTERVIEW FEEDBACK.
Return plain text with emoji headers exactly as requested below.`,
		s.CandidateName, s.Role, s.Experience, s.Style, s.ResumeSummary, s.CandidateName))
}

func feedbackUserPrompt(s *domain.Session) string {
	resumePart := ""
	if s.ResumeSummary != "" {
		resumePart = fmt.Sprintf(`

Here is a summary of the candidate's resume and key skills:
%s
`, s.ResumeSummary)
	}

	return fmt.Sprintf(`
Here is the full interview transcript (questions and candidate answers):

%s
%s

Now provide feedback in plain text with CLEAR emoji section headers.
Follow exactly this structure and DO NOT add extra sections:

🎯 Overall Summary:
(one short paragraph about how the candidate did in general)

🗣️ Communication Skills (rate out of 10):
(one short paragraph, include a rating like "7/10" and why)

💻 Technical / Role Knowledge (rate out of 10):
(one short paragraph, include a rating and mention strengths/weaknesses)

🧩 Structure & Clarity of Answers (rate out of 10):
(one short paragraph on how well they structure answers, include rating)

📌 Use of Resume / Past Experience:
(one short paragraph about how well they connect their background to the role)

🚀 Top Suggestions to Improve:
Write 3-5 bullet points, each starting with "• ".
Each point should be a specific, practical suggestion.

Remember:
- No markdown (#, *, -) and no numbered lists like "1)".
- Use exactly these emoji section headers.
`, historyText(s.Transcript), resumePart)
}

// synthesizeFeedback requests the structured evaluation from the completion
// endpoint. A transport failure degrades to a readable error string rather
// than propagating, so that ending the interview cannot fail.
func synthesizeFeedback(ctx context.Context, completer completion.Completer, s *domain.Session) string {
	messages := []completion.Message{
		completion.System(feedbackSystemPrompt(s)),
		completion.User(feedbackUserPrompt(s)),
	}

	feedback, err := completer.Complete(ctx, messages, feedbackTemperature)
	if err != nil {
		slog.Error("Feedback generation failed", "interview_id", s.ID, "error", err)
		return fmt.Sprintf("%s %v", FeedbackFailurePrefix, err)
	}
	return feedback
}
