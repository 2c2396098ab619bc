package interview

import (
	"fmt"
	"strings"

	"github.com/avoronin/interviewd/internal/domain"
)

// The prompt templates encode soft behavioral contracts (one question per
// turn, sentence-length caps, no mid-interview feedback). The model is
// instructed, not guaranteed, to obey them; nothing is parsed back out of
// the generated text.

func resolveRole(role, customRole string) string {
	if role == "Custom" && strings.TrimSpace(customRole) != "" {
		return strings.TrimSpace(customRole)
	}
	return role
}

func systemPrompt(role, experience, style, resumeSummary string) string {
	extra := ""
	if resumeSummary != "" {
		extra = fmt.Sprintf(`

Here is a summary of the candidate's resume and key skills:
%s

Use this to ask questions about their projects, responsibilities, tools and achievements.`, resumeSummary)
	}

	return strings.TrimSpace(fmt.Sprintf(`
You are an intelligent but HUMAN-LIKE job interviewer for the role: %s.
The candidate experience level is: %s.

Interviewer style: %s.
- If style is 'Supportive', be friendly, encouraging, and add short positive reactions ("that's great", "nice example") before questions.
- If style is 'Strict', be concise, firm, and professional but not rude.
%s

Question strategy:
- Ask ONE question at a time.
- Keep each turn at most 2-3 sentences.
- Mix questions from three sources:
  1) The candidate's introduction and previous answers,
  2) Their resume and past projects (if available),
  3) Role-specific technical/behavioral questions for %s.
- You can briefly acknowledge their last answer first (1 short sentence), then ask the next question.
- Do NOT give overall feedback during the interview. Feedback is only at the end.`,
		role, experience, style, extra, role))
}

// historyText renders the transcript as readable Q/A history.
func historyText(transcript []domain.QA) string {
	var b strings.Builder
	for i, pair := range transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s", i+1, pair.Question, i+1, pair.Answer)
	}
	return b.String()
}

// nextQuestionPrompt builds the user prompt for the next turn. Three
// branches: right after the self-introduction, follow-up needed, and the
// default mixed-focus question.
func nextQuestionPrompt(role, resumeSummary string, transcript []domain.QA, followup bool) string {
	history := historyText(transcript)

	if len(transcript) == 1 {
		resumePart := resumeSummary
		if resumePart == "" {
			resumePart = "No resume provided."
		}
		return strings.TrimSpace(fmt.Sprintf(`
Here is the candidate's self-introduction and first answer:

%s

Resume summary (if provided):
%s

As a human interviewer:
- Begin with one brief acknowledgement of their introduction (1 short sentence, e.g., "Thanks for sharing that.").
- THEN, if a resume summary is present, ask TWO targeted follow-up questions that explicitly reference items from the resume (project names, certifications, tools, or specific results).
  Example phrasings:
    "Your resume says you worked on <project name> - can you describe your role and the main technical challenge?"
    "I see you used <tool/tech> on that project; which part did you implement and how did you measure success?"
- If NO resume was provided, ask ONE role-relevant follow-up question instead.
Keep each question short (1-2 sentences). Do NOT provide feedback or extra commentary.`,
			history, resumePart))
	}

	if followup {
		return strings.TrimSpace(fmt.Sprintf(`
Here is the interview so far:

%s

The candidate's last answer seems short or uncertain.

As a human interviewer:
- Start with a very brief reaction to their last answer (1 short sentence).
- Then ask ONE follow-up question that digs deeper into the SAME topic.
- If relevant, tie it to their resume or previous answers.
Total 1-2 sentences. No overall feedback.`, history))
	}

	return strings.TrimSpace(fmt.Sprintf(`
Here is the interview so far:

%s

Now, as a human interviewer for %s:
- Start with a very brief acknowledgment of the last answer (1 short sentence).
- Then ask the NEXT interview question.
- Mix focus between:
  1) their resume / past projects (if you have resume summary),
  2) skills needed for %s,
  3) general behavioral questions (teamwork, challenges, learning, etc.).
Ask only ONE question this turn. Total 1-2 sentences. No overall feedback.`,
		history, role, role))
}

// resumeSummaryPrompts builds the one-shot resume summarization request made
// at session start.
func resumeSummaryPrompts(resumeText string) (system, user string) {
	system = "You are an expert career coach. Summarize resumes and extract key skills."
	user = fmt.Sprintf(`Here is the candidate's resume:

%s

Summarize their profile in 4-6 bullet points and list their main skills.`, resumeText)
	return system, user
}
