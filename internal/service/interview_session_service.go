package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hiresense/backend/config"
	"github.com/hiresense/backend/internal/apperr"
	"github.com/hiresense/backend/internal/model"
	"github.com/hiresense/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdvanceInput struct {
	CandidateID uint
	JobID       uint
	SessionID   string
	Answer      string
}

type AdvanceOutput struct {
	SessionID     string
	Question      string
	AudioURL      string
	RemainingTime string
}

// InterviewSessionService owns the session state machine: creation,
// resumption, expiry and turn recording. Finalization lives in the scoring
// service.
type InterviewSessionService interface {
	Advance(ctx context.Context, in AdvanceInput) (*AdvanceOutput, error)
}

type interviewSessionService struct {
	candidateRepo repository.CandidateRepository
	sessionRepo   repository.SessionRepository
	sequencer     QuestionSequencer
	llm           GeminiLLMService
	tts           SpeechSynthesizer
	cfg           *config.Config
}

func NewInterviewSessionService(
	candidateRepo repository.CandidateRepository,
	sessionRepo repository.SessionRepository,
	sequencer QuestionSequencer,
	llm GeminiLLMService,
	tts SpeechSynthesizer,
	cfg *config.Config,
) InterviewSessionService {
	return &interviewSessionService{
		candidateRepo: candidateRepo,
		sessionRepo:   sessionRepo,
		sequencer:     sequencer,
		llm:           llm,
		tts:           tts,
		cfg:           cfg,
	}
}

// Advance runs one interview turn. Without a session id it creates a fresh
// session; with one it resumes the most recent row for the triple, records the
// candidate's answer, and appends the next generated question. The stored row
// is only mutated after a question has been successfully obtained, so a
// generator failure or timeout leaves no partial state behind.
func (s *interviewSessionService) Advance(ctx context.Context, in AdvanceInput) (*AdvanceOutput, error) {
	if in.CandidateID == 0 || in.JobID == 0 {
		return nil, fmt.Errorf("candidateId and jobId are required: %w", apperr.ErrInvalidInput)
	}

	candidate, err := s.candidateRepo.FindByID(in.CandidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %d: %w", in.CandidateID, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("candidate lookup: %w", apperr.ErrPersistence)
	}

	duration := s.cfg.Assessment.SessionDuration
	remaining := duration

	var session *model.AssessmentSession
	if in.SessionID != "" {
		session, err = s.sessionRepo.FindMostRecent(in.CandidateID, in.JobID, in.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("session %s: %w", in.SessionID, apperr.ErrNotFound)
			}
			return nil, fmt.Errorf("session lookup: %w", apperr.ErrPersistence)
		}

		elapsed := session.Elapsed(time.Now())
		if elapsed > duration {
			return nil, fmt.Errorf("session %s: %w", in.SessionID, apperr.ErrExpired)
		}
		remaining = duration - elapsed
	}

	prompt := s.sequencer.BuildPrompt(PromptContext{
		Candidate:  candidate,
		Transcript: transcriptOf(session),
		LastAnswer: in.Answer,
	})

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.Assessment.UpstreamTimeout)
	defer cancel()
	question, err := s.llm.GenerateQuestion(genCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("question generation: %v: %w", err, apperr.ErrUpstream)
	}

	// Audio is best-effort: a synthesis failure never blocks the question.
	audioURL := s.synthesizeAudio(ctx, question, in.CandidateID, in.JobID)

	if session != nil {
		s.recordTurn(session, question, in.Answer)

		// Re-check the clock immediately before commit: a session that ran
		// out while the generator was working is persisted as completed.
		if session.Status == model.SessionStatusActive && session.Elapsed(time.Now()) > duration {
			session.Status = model.SessionStatusCompleted
		}
		if err := s.sessionRepo.Update(session); err != nil {
			return nil, fmt.Errorf("session update: %w", apperr.ErrPersistence)
		}
	} else {
		session = &model.AssessmentSession{
			CandidateID: in.CandidateID,
			JobID:       in.JobID,
			SessionID:   uuid.NewString(),
			Status:      model.SessionStatusActive,
			Transcript:  model.Transcript{{TurnNo: 1, Question: question}},
		}
		if err := s.sessionRepo.Create(session); err != nil {
			return nil, fmt.Errorf("session create: %w", apperr.ErrPersistence)
		}
	}

	return &AdvanceOutput{
		SessionID:     session.SessionID,
		Question:      question,
		AudioURL:      audioURL,
		RemainingTime: formatRemaining(remaining),
	}, nil
}

// recordTurn writes the candidate's answer into the last unanswered turn, then
// appends the new question as a fresh turn. An answer arriving when the last
// turn is already answered is kept as a question-less turn rather than
// overwriting transcript history.
func (s *interviewSessionService) recordTurn(session *model.AssessmentSession, question, answer string) {
	answer = strings.TrimSpace(answer)
	if answer != "" {
		if n := len(session.Transcript); n > 0 && session.Transcript[n-1].Answer == "" {
			session.Transcript[n-1].Answer = answer
		} else {
			session.Transcript = append(session.Transcript, model.Turn{
				TurnNo: len(session.Transcript) + 1,
				Answer: answer,
			})
		}
	}
	session.Transcript = append(session.Transcript, model.Turn{
		TurnNo:   len(session.Transcript) + 1,
		Question: question,
	})
}

func (s *interviewSessionService) synthesizeAudio(ctx context.Context, question string, candidateID, jobID uint) string {
	filename := fmt.Sprintf("question_%d_%d_%s.mp3", candidateID, jobID, uuid.NewString()[:8])
	audioURL, err := s.tts.Synthesize(ctx, question, filename)
	if err != nil {
		log.Warn().Err(err).Uint("candidateID", candidateID).Msg("Speech synthesis failed, returning question without audio")
		return ""
	}
	return audioURL
}

func transcriptOf(session *model.AssessmentSession) model.Transcript {
	if session == nil {
		return nil
	}
	return session.Transcript
}

// formatRemaining renders a duration as MM:SS, clamped at zero.
func formatRemaining(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
