package repository

import (
	"github.com/hiresense/backend/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.AssessmentSession) error
	Update(session *model.AssessmentSession) error
	// FindMostRecent resolves the head row for a (candidate, job, session)
	// triple: newest created_at, primary key as tie-break.
	FindMostRecent(candidateID, jobID uint, sessionID string) (*model.AssessmentSession, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.AssessmentSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) Update(session *model.AssessmentSession) error {
	return r.db.Save(session).Error
}

func (r *sessionRepository) FindMostRecent(candidateID, jobID uint, sessionID string) (*model.AssessmentSession, error) {
	var session model.AssessmentSession
	err := r.db.
		Where("candidate_id = ? AND job_id = ? AND session_id = ?", candidateID, jobID, sessionID).
		Order("created_at DESC, id DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}
