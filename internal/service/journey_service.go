package service

import (
	"fmt"

	"github.com/hiresense/backend/internal/apperr"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// JourneyEventAssessment is the event kind reported for assessment outcomes.
const JourneyEventAssessment = "ASSESSMENT"

// JourneyPropagator pushes an assessment outcome into the candidate's hiring
// workflow. The update is an opaque transactional side effect owned by the
// database; passing the ambient tx keeps it inside the caller's commit
// boundary.
type JourneyPropagator interface {
	Notify(tx *gorm.DB, jobID, candidateID uint, journey, status string, score *int, assessmentID *uint) error
}

type journeyService struct {
	db *gorm.DB
}

func NewJourneyService(db *gorm.DB) JourneyPropagator {
	return &journeyService{db: db}
}

func (s *journeyService) Notify(tx *gorm.DB, jobID, candidateID uint, journey, status string, score *int, assessmentID *uint) error {
	if tx == nil {
		tx = s.db
	}
	err := tx.Exec(
		"CALL UpdateProfileJourneyStatus(?, ?, ?, ?, ?, ?)",
		jobID, candidateID, journey, status, score, assessmentID,
	).Error
	if err != nil {
		log.Error().Err(err).Uint("jobID", jobID).Uint("candidateID", candidateID).Msg("Profile journey status update failed")
		return fmt.Errorf("profile journey update: %v: %w", err, apperr.ErrUpstream)
	}
	return nil
}
