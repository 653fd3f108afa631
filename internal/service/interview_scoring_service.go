package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hiresense/backend/config"
	"github.com/hiresense/backend/internal/apperr"
	"github.com/hiresense/backend/internal/model"
	"github.com/hiresense/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type FinalizeOutput struct {
	SessionID       string
	InterviewStatus string
	Score           *int
}

// InterviewScoringService closes an active session and assigns its terminal
// score. Finalize always succeeds once the session is found: evaluator
// failures are absorbed by the fallback scorer, never surfaced.
type InterviewScoringService interface {
	Finalize(ctx context.Context, candidateID, jobID uint, sessionID string) (*FinalizeOutput, error)
}

type interviewScoringService struct {
	sessionRepo repository.SessionRepository
	llm         GeminiLLMService
	fallback    FallbackScorer
	cfg         *config.Config
}

func NewInterviewScoringService(
	sessionRepo repository.SessionRepository,
	llm GeminiLLMService,
	fallback FallbackScorer,
	cfg *config.Config,
) InterviewScoringService {
	return &interviewScoringService{
		sessionRepo: sessionRepo,
		llm:         llm,
		fallback:    fallback,
		cfg:         cfg,
	}
}

func (s *interviewScoringService) Finalize(ctx context.Context, candidateID, jobID uint, sessionID string) (*FinalizeOutput, error) {
	if candidateID == 0 || jobID == 0 || sessionID == "" {
		return nil, fmt.Errorf("candidateId, jobId and sessionId are required: %w", apperr.ErrInvalidInput)
	}

	session, err := s.sessionRepo.FindMostRecent(candidateID, jobID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("session %s: %w", sessionID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("session lookup: %w", apperr.ErrPersistence)
	}

	switch session.Status {
	case model.SessionStatusEnded:
		// Already finalized: return the stored score unchanged.
		return &FinalizeOutput{
			SessionID:       session.SessionID,
			InterviewStatus: model.SessionStatusEnded,
			Score:           session.Score,
		}, nil

	case model.SessionStatusActive:
		score := s.scoreAnswers(ctx, session.Transcript.NonEmptyAnswers())
		now := time.Now()
		session.Status = model.SessionStatusEnded
		session.EndedAt = &now
		session.Score = &score
		if err := s.sessionRepo.Update(session); err != nil {
			return nil, fmt.Errorf("session finalize: %w", apperr.ErrPersistence)
		}
		return &FinalizeOutput{
			SessionID:       session.SessionID,
			InterviewStatus: model.SessionStatusEnded,
			Score:           session.Score,
		}, nil

	default:
		return nil, fmt.Errorf("interview cannot be ended from status %q: %w", session.Status, apperr.ErrConflict)
	}
}

// scoreAnswers runs the evaluator with a bounded timeout and falls back to the
// neutral band on any failure. Zero answers score zero deterministically.
func (s *interviewScoringService) scoreAnswers(ctx context.Context, answers []string) int {
	if len(answers) == 0 {
		return 0
	}

	evalCtx, cancel := context.WithTimeout(ctx, s.cfg.Assessment.UpstreamTimeout)
	defer cancel()
	score, err := s.llm.ScoreAnswers(evalCtx, answers)
	if err != nil {
		score = s.fallback.Score()
		log.Warn().Err(err).Int("fallbackScore", score).Msg("Answer evaluation failed, using fallback score")
		return score
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
