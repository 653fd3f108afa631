package service

import (
	"fmt"
	"strings"

	"github.com/hiresense/backend/internal/model"
)

// InterviewTopics is the fixed probing order for the AI interview. The
// sequencer only supplies ordering hints and accumulated context; judging when
// a topic is sufficiently covered is left to the question generator.
var InterviewTopics = []string{"Education", "Experience", "Skills", "Technical", "Hobbies/Personality"}

// PromptContext is everything the sequencer needs to assemble the next
// generation prompt.
type PromptContext struct {
	Candidate  *model.CandidateProfile
	Transcript model.Transcript
	LastAnswer string
}

type QuestionSequencer interface {
	BuildPrompt(ctx PromptContext) string
}

type questionSequencer struct{}

func NewQuestionSequencer() QuestionSequencer {
	return &questionSequencer{}
}

// contentRules are appended to every prompt. Grading details (marks, GPA,
// percentages) must never appear in a generated question, regardless of topic.
const contentRules = `3. **Do NOT mention or refer to any grades, marks, percentages, CGPA, GPA, or scores — focus on ideas, experiences, or skills.**
4. **Do not** include follow-up questions, examples, or explanations.
5. **Output only the question text** — nothing else.
6. Keep the tone friendly, professional, and conversational.
7. **Do not** add explanations, comments, examples, or multiple questions.
8. **Do not** use abbreviations or expansions in parentheses.
9. When discussing technologies, focus on types or roles, not specific names.
`

func (s *questionSequencer) BuildPrompt(ctx PromptContext) string {
	if len(ctx.Transcript) == 0 {
		return s.openingPrompt(ctx)
	}
	return s.followUpPrompt(ctx)
}

func (s *questionSequencer) openingPrompt(ctx PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a friendly HR interviewer conducting a structured job interview.\n\n")
	writeCandidateInfo(&b, ctx.Candidate)
	b.WriteString("--- INSTRUCTIONS ---\n")
	fmt.Fprintf(&b, "1. Greet the candidate naturally (e.g., \"Hi, I'm from the recruitment team — nice to meet you, %s!\").\n", ctx.Candidate.FirstName)
	b.WriteString("2. Then ask **exactly ONE question** about their education background — such as what they studied, their college experience, or subjects they enjoyed.\n")
	b.WriteString(contentRules)
	return b.String()
}

func (s *questionSequencer) followUpPrompt(ctx PromptContext) string {
	var b strings.Builder
	b.WriteString("You are a friendly HR interviewer continuing a structured job interview.\n\n")
	writeCandidateInfo(&b, ctx.Candidate)

	if len(ctx.Transcript) > 0 {
		b.WriteString("Conversation so far:\n")
		for _, turn := range ctx.Transcript {
			if turn.Question != "" {
				fmt.Fprintf(&b, "Q%d: %s\n", turn.TurnNo, turn.Question)
			}
			if turn.Answer != "" {
				fmt.Fprintf(&b, "A%d: %s\n", turn.TurnNo, turn.Answer)
			}
		}
		b.WriteString("\n")
	}
	if answer := strings.TrimSpace(ctx.LastAnswer); answer != "" {
		fmt.Fprintf(&b, "The candidate just answered: %q\n\n", answer)
	}

	b.WriteString("--- INSTRUCTIONS ---\n")
	b.WriteString("1. Ask **exactly ONE short question** (1-2 sentences) based on the candidate's previous answer.\n")
	fmt.Fprintf(&b, "2. Follow this sequence: %s. Move to the next topic once the earlier ones are sufficiently covered.\n", strings.Join(InterviewTopics, " → "))
	b.WriteString(contentRules)
	return b.String()
}

func writeCandidateInfo(b *strings.Builder, candidate *model.CandidateProfile) {
	b.WriteString("Candidate Info:\n")
	fmt.Fprintf(b, "Name: %s\n", candidate.FirstName)
	fmt.Fprintf(b, "Education: %s\n", candidate.Education)
	fmt.Fprintf(b, "Experience: %s\n", candidate.Experience)
	fmt.Fprintf(b, "Skills: %s\n\n", candidate.Skills)
}
