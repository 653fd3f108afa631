package repository

import (
	"github.com/hiresense/backend/internal/model"
	"gorm.io/gorm"
)

type JobAssessmentRepository interface {
	FindByJobAndCandidate(jobID, candidateID uint) ([]model.JobAssessment, error)
}

type jobAssessmentRepository struct {
	db *gorm.DB
}

func NewJobAssessmentRepository(db *gorm.DB) JobAssessmentRepository {
	return &jobAssessmentRepository{db: db}
}

func (r *jobAssessmentRepository) FindByJobAndCandidate(jobID, candidateID uint) ([]model.JobAssessment, error) {
	var assessments []model.JobAssessment
	err := r.db.
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Order("assessment_sqnc ASC").
		Find(&assessments).Error
	return assessments, err
}
