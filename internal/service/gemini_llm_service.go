package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/hiresense/backend/config"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiLLMService is the gateway to the generation model: it produces the next
// interview question from a sequencer prompt and scores a finished interview's
// answers.
type GeminiLLMService interface {
	GenerateQuestion(ctx context.Context, prompt string) (string, error)
	ScoreAnswers(ctx context.Context, answers []string) (int, error)
}

type geminiLLMService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewGeminiLLMService(cfg *config.Config) (GeminiLLMService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. GeminiLLMService will be non-functional.")
		return &geminiLLMService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.SetTemperature(0.7)
	return &geminiLLMService{client: model, cfg: cfg}, nil
}

// GenerateQuestion asks the model for the next interview question. The prompt
// instructs the model to return exactly one question with no extra text; the
// reply is trimmed and rejected when empty.
func (s *geminiLLMService) GenerateQuestion(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized")
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during question generation")
		return "", fmt.Errorf("gemini question generation: %w", err)
	}

	question := strings.TrimSpace(collectText(resp))
	if question == "" {
		return "", fmt.Errorf("model did not return a valid question")
	}
	return question, nil
}

// ScoreAnswers rates the candidate's collected interview answers on a 0-100
// scale. Callers fall back to a neutral score when this returns an error.
func (s *geminiLLMService) ScoreAnswers(ctx context.Context, answers []string) (int, error) {
	if s.client == nil {
		return 0, fmt.Errorf("gemini client not initialized")
	}

	var b strings.Builder
	b.WriteString("You are an expert HR evaluator reviewing a candidate's answers from a short screening interview.\n")
	b.WriteString("Rate the overall quality of the answers below on a scale of 0 to 100, considering relevance, depth, and communication.\n\n")
	b.WriteString("Candidate answers:\n")
	for i, answer := range answers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, answer)
	}
	b.WriteString("\nRespond with **only the integer score**, nothing else.\n")

	resp, err := s.client.GenerateContent(ctx, genai.Text(b.String()))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during answer scoring")
		return 0, fmt.Errorf("gemini answer scoring: %w", err)
	}

	raw := strings.TrimSpace(collectText(resp))
	if raw == "" {
		return 0, fmt.Errorf("gemini returned no text content")
	}

	fields := strings.Fields(raw)
	score, err := strconv.Atoi(strings.Trim(fields[0], ".,"))
	if err != nil {
		log.Warn().Str("rawResponse", raw).Msg("Failed to parse score from Gemini response")
		return 0, fmt.Errorf("could not parse score value from %q: %w", raw, err)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	return text
}
