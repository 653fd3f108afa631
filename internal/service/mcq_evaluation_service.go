package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hiresense/backend/config"
	"github.com/hiresense/backend/internal/apperr"
	"github.com/hiresense/backend/internal/model"
	"github.com/hiresense/backend/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// PointsPerCorrectAnswer is the fixed per-question score recorded for a
// matched answer.
const PointsPerCorrectAnswer = 5

const (
	MCQStatusPassed = "PASSED"
	MCQStatusFailed = "FAILED"
)

type MCQEvaluateInput struct {
	JobID        uint
	CandidateID  uint
	AssessmentID uint
	Answers      []SubmittedAnswer
}

type SubmittedAnswer struct {
	QuestionNo     int
	SelectedOption string
}

type MCQEvaluateOutput struct {
	Status string
	Score  int
}

// MCQEvaluationService grades a submitted answer set against the job's
// canonical question set. Evaluation is deterministic and safely re-callable:
// each call recomputes every per-question score and overwrites the stored
// rows.
type MCQEvaluationService interface {
	Evaluate(ctx context.Context, in MCQEvaluateInput) (*MCQEvaluateOutput, error)
}

type mcqEvaluationService struct {
	mcqRepo repository.MCQRepository
	journey JourneyPropagator
	cfg     *config.Config
	db      *gorm.DB
}

func NewMCQEvaluationService(
	mcqRepo repository.MCQRepository,
	journey JourneyPropagator,
	cfg *config.Config,
	db *gorm.DB,
) MCQEvaluationService {
	return &mcqEvaluationService{mcqRepo: mcqRepo, journey: journey, cfg: cfg, db: db}
}

func (s *mcqEvaluationService) Evaluate(ctx context.Context, in MCQEvaluateInput) (*MCQEvaluateOutput, error) {
	if in.JobID == 0 || in.CandidateID == 0 || in.AssessmentID == 0 || len(in.Answers) == 0 {
		return nil, fmt.Errorf("jobId, candidateId, assessmentId and data are required: %w", apperr.ErrInvalidInput)
	}

	questions, err := s.mcqRepo.FindQuestionsByJob(in.JobID)
	if err != nil {
		return nil, fmt.Errorf("mcq lookup: %w", apperr.ErrPersistence)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("no MCQ data found for job %d: %w", in.JobID, apperr.ErrNotFound)
	}

	byNo := make(map[int]model.MCQQuestion, len(questions))
	for _, q := range questions {
		byNo[q.QuestionNo] = q
	}

	// Submissions without a canonical counterpart are ignored, but they still
	// count toward the denominator.
	correct := 0
	rows := make([]model.MCQAnswer, 0, len(in.Answers))
	for _, answer := range in.Answers {
		question, ok := byNo[answer.QuestionNo]
		if !ok {
			log.Warn().Int("questionNo", answer.QuestionNo).Uint("jobID", in.JobID).Msg("Submitted answer for unknown question, skipping")
			continue
		}
		points := 0
		if optionsMatch(question.CorrectOption, answer.SelectedOption) {
			points = PointsPerCorrectAnswer
			correct++
		}
		rows = append(rows, model.MCQAnswer{
			JobID:          in.JobID,
			CandidateID:    in.CandidateID,
			AssessmentID:   in.AssessmentID,
			QuestionNo:     answer.QuestionNo,
			SelectedOption: answer.SelectedOption,
			Score:          points,
		})
	}

	percentage := float64(correct) / float64(len(in.Answers)) * 100
	score := int(percentage)

	status := MCQStatusFailed
	if score > s.cfg.Assessment.MCQPassThreshold {
		status = MCQStatusPassed
	}

	// Answer persistence and journey propagation share one commit boundary:
	// either both land or neither does.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertAnswers(tx, in, rows); err != nil {
			return err
		}
		return s.journey.Notify(tx, in.JobID, in.CandidateID, JourneyEventAssessment, status, &score, &in.AssessmentID)
	})
	if err != nil {
		if errors.Is(err, apperr.ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("mcq evaluation commit: %v: %w", err, apperr.ErrPersistence)
	}

	log.Info().
		Uint("jobID", in.JobID).
		Uint("candidateID", in.CandidateID).
		Int("score", score).
		Str("status", status).
		Msg("MCQ evaluation completed")

	return &MCQEvaluateOutput{Status: status, Score: score}, nil
}

// upsertAnswers keeps exactly one row per question key: the first evaluation
// bulk-inserts, later ones update each question's row in place.
func upsertAnswers(tx *gorm.DB, in MCQEvaluateInput, rows []model.MCQAnswer) error {
	var existing []model.MCQAnswer
	err := tx.
		Where("job_id = ? AND candidate_id = ? AND assessment_id = ?", in.JobID, in.CandidateID, in.AssessmentID).
		Find(&existing).Error
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	}

	byNo := make(map[int]model.MCQAnswer, len(existing))
	for _, row := range existing {
		byNo[row.QuestionNo] = row
	}
	for i := range rows {
		if prev, ok := byNo[rows[i].QuestionNo]; ok {
			prev.SelectedOption = rows[i].SelectedOption
			prev.Score = rows[i].Score
			if err := tx.Save(&prev).Error; err != nil {
				return err
			}
		} else if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func optionsMatch(correct, selected string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), strings.TrimSpace(selected))
}
